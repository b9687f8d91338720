package domain

import (
	"github.com/allisson/blogs/internal/errors"
)

// Identity and session errors.
var (
	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates the session token is malformed, expired, or
	// signed with the wrong key.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrInvalidRole indicates a role outside the closed enumeration.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrInvalidCapability indicates an unusable capability name.
	ErrInvalidCapability = errors.Wrap(errors.ErrInvalidInput, "invalid capability")
)
