// Package auth issues and validates the bearer tokens that guard teacher-only routes.
package auth

import (
	"context"
	"time"
)

// RoleTeacher is the role claim required by teacher-only routes.
const RoleTeacher = "teacher"

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// JWTService defines operations for managing JWT bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token for subject carrying role.
	GenerateToken(ctx context.Context, subject, role string) (string, error)

	// ValidateToken validates the token string and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// IsTeacher reports whether the claims carry the teacher role.
func (c *Claims) IsTeacher() bool {
	return c != nil && c.Role == RoleTeacher
}
