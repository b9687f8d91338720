// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/errors"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// User represents a registered account. Role and Permissions together form
// the user's authorization profile: the role carries coarse standing (ADMIN
// bypasses capability checks entirely) while Permissions holds the individual
// capability grants handed out by administrators.
type User struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Password    string
	Role        identityDomain.Role
	Permissions []identityDomain.Capability
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Identity projects the user's authorization profile into the form consumed
// by the permission evaluator and embedded into session tokens.
func (u *User) Identity() *identityDomain.Identity {
	return &identityDomain.Identity{
		ID:          u.ID,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}

// HasPermission reports whether the capability is already granted. Used to
// keep permission assignment idempotent.
func (u *User) HasPermission(capability identityDomain.Capability) bool {
	for _, granted := range u.Permissions {
		if granted == capability {
			return true
		}
	}
	return false
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
