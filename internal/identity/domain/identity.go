package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Identity represents the authenticated actor for a single request.
// It is derived from a signed token by the session provider, never mutated by
// the core, and discarded at request end.
type Identity struct {
	ID          uuid.UUID    // Unique identifier (UUIDv7)
	Role        Role         // Coarse access tier
	Permissions []Capability // Fine-grained capability grants
}

// Evaluate is the permission rule every mutating action reduces to.
//
// Rules, in order:
//  1. A nil identity (unauthenticated request) is always denied.
//  2. Role ADMIN is always allowed, regardless of the permission set —
//     including an empty one.
//  3. Everyone else is allowed iff the capability is present in their
//     permission set.
//
// Pure and deterministic: no I/O, no side effects, safe under unbounded
// concurrency. Ownership checks (e.g., comment deletion) are a separate
// predicate and deliberately do not go through Evaluate.
func Evaluate(identity *Identity, capability Capability) bool {
	if identity == nil {
		return false
	}
	if identity.Role == RoleAdmin {
		return true
	}
	return slices.Contains(identity.Permissions, capability)
}

// HasCapability reports whether the capability is present in the permission
// set. Unlike Evaluate it does not grant the ADMIN bypass; use it when the
// raw set membership matters (e.g., idempotent assignment).
func (i *Identity) HasCapability(capability Capability) bool {
	if i == nil {
		return false
	}
	return slices.Contains(i.Permissions, capability)
}

// Owns reports whether the identity is the owner referenced by ownerID.
// This is the ownership-based authorization predicate, orthogonal to
// role/permission evaluation.
func (i *Identity) Owns(ownerID uuid.UUID) bool {
	return i != nil && i.ID == ownerID
}
