// Package password hashes and verifies user passwords.
//
// bcrypt is the primary scheme. When bcrypt fails and the fallback is enabled, an
// unsalted SHA-256 hex digest is stored instead. That path is a configuration risk
// meant for non-production environments only; config refuses to enable it in production.
// Verify accepts digests from either scheme so accounts created through the fallback keep working.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todo_backend/internal/shared/apperr"
)

// MaxBytes is the longest password bcrypt can hash without truncation.
const MaxBytes = 72

// ErrPasswordTooLong is returned before hashing when the password exceeds MaxBytes.
var ErrPasswordTooLong = apperr.New(apperr.KindValidation,
	fmt.Sprintf("password exceeds maximum length of %d bytes", MaxBytes))

// Hasher hashes passwords with bcrypt and optionally degrades to SHA-256.
type Hasher struct {
	cost          int
	allowFallback bool
	generate      func(password []byte, cost int) ([]byte, error)
}

// NewHasher creates a Hasher with the given bcrypt cost.
func NewHasher(cost int, allowFallback bool) *Hasher {
	return &Hasher{
		cost:          cost,
		allowFallback: allowFallback,
		generate:      bcrypt.GenerateFromPassword,
	}
}

// Hash returns the digest to store for password.
func (h *Hasher) Hash(password string) (string, error) {
	// checked first so an over-long password is never silently truncated
	if len(password) > MaxBytes {
		return "", ErrPasswordTooLong
	}

	hashed, err := h.generate([]byte(password), h.cost)
	if err == nil {
		return string(hashed), nil
	}
	if !h.allowFallback {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	slog.Warn("bcrypt unavailable, using unsalted SHA-256 fallback", "error", err)
	return sha256Hex(password), nil
}

// Verify reports whether password matches digest, for both bcrypt and fallback digests.
func (h *Hasher) Verify(password, digest string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	if len(digest) != sha256.Size*2 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sha256Hex(password)), []byte(strings.ToLower(digest))) == 1
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
