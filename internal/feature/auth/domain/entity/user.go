// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the system.
type User struct {
	// ID is generated at signup and never changes.
	ID uuid.UUID

	// Email is lower-cased and sanitized; it identifies at most one user.
	Email string

	// PasswordHash is a bcrypt digest, or a SHA-256 hex digest written while
	// the degraded hashing path was enabled. Never plaintext.
	PasswordHash string

	// EmailVerified is informational only.
	EmailVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
