// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
	"todo_backend/internal/platform/db"
)

// pgUniqueViolation is the postgres SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// userGorm is the GORM implementation of usecase.UserRepository.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create persists u and copies the stored timestamps back into it.
// A duplicate email yields usecase.ErrEmailTaken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user must not be nil")
	}
	model := UserModelFromEntity(u)
	if err := db.Conn(ctx, r.db).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}
	*u = *model.ToEntity()
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no user has email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var model UserModel
	if err := db.Conn(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindByID returns usecase.ErrUserNotFound when no user has id.
func (r *userGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var model UserModel
	if err := db.Conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
