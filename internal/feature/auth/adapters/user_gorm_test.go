package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/usecase"
	"todo_backend/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(&UserModel{})
	require.NoError(t, err, "failed to migrate table")

	return gdb
}

func newUser(email string) *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hashed_password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		user := newUser("test@example.com")

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.EmailVerified, "EmailVerified defaults to false")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newUser("duplicate@example.com")))

		err := repo.Create(context.Background(), newUser("duplicate@example.com"))

		assert.ErrorIs(t, err, usecase.ErrEmailTaken, "should return ErrEmailTaken")
	})

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		err := repo.Create(context.Background(), nil)

		assert.Error(t, err, "should return error for nil user")
	})

	t.Run("rolled back with the surrounding transaction", func(t *testing.T) {
		gdb := setupTestDB(t)
		repo := NewUserGorm(gdb)
		tm := db.NewTxManager(gdb)

		err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
			require.NoError(t, repo.Create(ctx, newUser("tx@example.com")))
			return usecase.ErrEmailTaken
		})
		require.ErrorIs(t, err, usecase.ErrEmailTaken)

		_, err = repo.FindByEmail(context.Background(), "tx@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find correct user when multiple users exist", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		users := []*entity.User{newUser("user1@example.com"), newUser("user2@example.com"), newUser("user3@example.com")}
		for _, u := range users {
			require.NoError(t, repo.Create(context.Background(), u), "failed to create test data")
		}

		found, err := repo.FindByEmail(context.Background(), "user2@example.com")

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, users[1].ID, found.ID, "ID does not match")
		assert.Equal(t, "user2@example.com", found.Email, "email does not match")
		assert.Equal(t, "hashed_password", found.PasswordHash, "password hash does not match")
	})

	t.Run("email not found error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		expected := newUser("findbyid@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByID(context.Background(), expected.ID)

		require.NoError(t, err, "failed to find user")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.Equal(t, expected.CreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		found, err := repo.FindByID(context.Background(), uuid.New())

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}
