package dto

import (
	"time"

	"todo_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of a user. The password hash is never serialized.
type UserRes struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthRes is returned by /signup and /signin.
type AuthRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// TokenRes is returned by /refresh.
type TokenRes struct {
	Token string `json:"token"`
}

// NewUserRes converts a user entity to its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:            u.ID.String(),
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
