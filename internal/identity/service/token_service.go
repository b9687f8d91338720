package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/allisson/blogs/internal/errors"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// identityClaims is the JWT claim set carried by session tokens.
type identityClaims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService using HMAC-SHA256 signed JWTs.
type jwtTokenService struct {
	secret     []byte
	expiration time.Duration
}

// IssueToken creates a signed token embedding the identity's ID, role and
// capability grants.
func (s *jwtTokenService) IssueToken(identity *identityDomain.Identity) (string, error) {
	if identity == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "identity is required")
	}

	permissions := make([]string, len(identity.Permissions))
	for i, capability := range identity.Permissions {
		permissions[i] = string(capability)
	}

	now := time.Now()
	claims := identityClaims{
		Role:        string(identity.Role),
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

// VerifyToken validates the signature and expiry and reconstructs the identity.
func (s *jwtTokenService) VerifyToken(token string) (*identityDomain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (any, error) {
		// Reject tokens signed with anything but HMAC; "alg: none" and
		// asymmetric confusion attacks both fail here.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(identityDomain.ErrInvalidToken, err.Error())
	}

	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid {
		return nil, identityDomain.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(identityDomain.ErrInvalidToken, "malformed subject claim")
	}

	role, ok := identityDomain.ParseRole(claims.Role)
	if !ok {
		return nil, apperrors.Wrap(identityDomain.ErrInvalidToken, "unknown role claim")
	}

	permissions := make([]identityDomain.Capability, len(claims.Permissions))
	for i, name := range claims.Permissions {
		permissions[i] = identityDomain.Capability(name)
	}

	return &identityDomain.Identity{
		ID:          id,
		Role:        role,
		Permissions: permissions,
	}, nil
}

// NewTokenService creates a TokenService that signs tokens with HMAC-SHA256.
func NewTokenService(secret string, expiration time.Duration) TokenService {
	return &jwtTokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}
