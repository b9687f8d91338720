// Package authz implements the authorization guard: the decision gate every
// mutating operation passes through before touching persistence.
//
// The guard performs no persistence changes itself. On denial it returns a
// sentinel error and the wrapped operation is never invoked; on allow the
// operation result is passed through unchanged, including any failure the
// operation itself raises.
//
// Two independent predicates live here and must not be conflated:
//   - capability checks (Require/Guard) delegate to the permission evaluator,
//     which grants the ADMIN role an unconditional bypass;
//   - ownership checks (RequireOwner/GuardOwner) compare identity IDs directly
//     and grant no role-based bypass at all.
package authz

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/blogs/internal/errors"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// Operation is a unit of work executed only when authorization succeeds.
type Operation[T any] func(ctx context.Context) (T, error)

// RequireAuthenticated returns ErrUnauthorized if no identity is present.
// Used by operations open to any authenticated actor (e.g., adding a comment).
func RequireAuthenticated(identity *identityDomain.Identity) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// Require checks the identity against the listed capabilities, passing if any
// one of them evaluates to allowed. Returns ErrUnauthorized for a missing
// identity and ErrForbidden when no capability is granted.
func Require(identity *identityDomain.Identity, capabilities ...identityDomain.Capability) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	for _, capability := range capabilities {
		if identityDomain.Evaluate(identity, capability) {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// RequireAdmin passes only for identities with the ADMIN role. Capability
// grants do not substitute for the role here: permission assignment is
// role-gated by design.
func RequireAdmin(identity *identityDomain.Identity) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	if identity.Role != identityDomain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireOwner passes only when the identity's ID equals ownerID. There is no
// ADMIN bypass: blog edits get one through the evaluator, comment deletion
// does not, and that asymmetry is intentional.
func RequireOwner(identity *identityDomain.Identity, ownerID uuid.UUID) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	if !identity.Owns(ownerID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// Guard wraps op with a capability check. On denial op is never invoked and
// the zero value of T is returned alongside the sentinel error; on allow the
// result of op is returned unchanged.
func Guard[T any](
	ctx context.Context,
	identity *identityDomain.Identity,
	capability identityDomain.Capability,
	op Operation[T],
) (T, error) {
	return GuardAny(ctx, identity, []identityDomain.Capability{capability}, op)
}

// GuardAny wraps op with a check that passes if any listed capability is
// granted. Used where multiple capability names are honored for one action
// (e.g., EDIT_BLOG and UPDATE_BLOG).
func GuardAny[T any](
	ctx context.Context,
	identity *identityDomain.Identity,
	capabilities []identityDomain.Capability,
	op Operation[T],
) (T, error) {
	if err := Require(identity, capabilities...); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}

// GuardOwner wraps op with an ownership check.
func GuardOwner[T any](
	ctx context.Context,
	identity *identityDomain.Identity,
	ownerID uuid.UUID,
	op Operation[T],
) (T, error) {
	if err := RequireOwner(identity, ownerID); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}
