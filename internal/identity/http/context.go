// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// identityKey is a context key type for storing authenticated identities.
type identityKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithIdentity(ctx context.Context, identity *identityDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves an authenticated identity from the context.
// Returns (identity, true) if an identity is present, or (nil, false) if none was set.
// Handlers pass the result straight to the authorization guard, which treats a
// missing identity as an unauthenticated request.
func GetIdentity(ctx context.Context) (*identityDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*identityDomain.Identity)
	return identity, ok
}
