// Package service provides technical services for identity operations.
//
// This package implements reusable services for password hashing and signed
// session token handling using industry-standard cryptographic practices.
package service

import (
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// PasswordService defines operations for password hashing and validation.
// Implementations must use industry-standard hashing algorithms
// (e.g., bcrypt, argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password using a secure hashing algorithm.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a hashed password.
	// Returns true if the plain password matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService defines operations for session token issuance and verification.
// Tokens carry the caller's identity (id, role, granted capabilities) so
// authorization decisions never require a database round trip.
type TokenService interface {
	// IssueToken creates a signed token for the identity. The token embeds the
	// identity's ID, role and capability grants and expires after the
	// configured lifetime.
	IssueToken(identity *identityDomain.Identity) (token string, err error)

	// VerifyToken validates the token signature and expiry and reconstructs
	// the embedded identity. Returns ErrInvalidToken for malformed, tampered
	// or expired tokens.
	VerifyToken(token string) (*identityDomain.Identity, error)
}
