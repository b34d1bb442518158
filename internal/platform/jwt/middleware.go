// Package jwtmw issues bearer tokens and guards routes that require them.
package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the gin context key holding the authenticated user's uuid.UUID.
const ContextUserID = "userID"

// Verifier validates a bearer token and returns the user it was issued to.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AuthRequired returns a Gin middleware that rejects requests without a valid
// bearer token and stores the token's user ID in the context.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			Unauthorized(c, "missing authentication credentials")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			Unauthorized(c, "missing authentication credentials")
			return
		}

		// 2. Verify signature, algorithm, expiry and subject
		userID, err := v.Verify(tokenStr)
		if err != nil {
			Unauthorized(c, "invalid authentication credentials")
			return
		}

		// 3. Pass control to the next handler
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// Unauthorized aborts with 401 and a Bearer challenge.
func Unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// UserID returns the authenticated user's ID set by AuthRequired.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
