package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/shared/sanitize"
)

// MaxEmailLength is the longest accepted email, in characters.
const MaxEmailLength = 255

// dummyHash is verified against when the email is unknown so that signin
// takes the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailTaken for a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TxManager runs fn inside a unit of work.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
	tx     TxManager
	now    func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, hasher PasswordHasher, tx TxManager) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// normalizeEmail trims, lower-cases and sanitizes email and checks its length.
func normalizeEmail(email string) (string, error) {
	email = sanitize.Email(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return "", ErrEmailTooLong
	}
	return email, nil
}

// Signup registers a new user and returns it with a fresh token.
// An existing email fails with ErrEmailTaken before the password is looked at.
// The password is hashed before the transaction opens.
func (u *authUsecase) Signup(ctx context.Context, email, password string) (*entity.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := u.ensureEmailFree(ctx, email); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	now := u.now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.ensureEmailFree(ctx, email); err != nil {
			return err
		}
		return u.users.Create(ctx, user)
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// ensureEmailFree returns ErrEmailTaken when a user already has email.
func (u *authUsecase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case errors.Is(err, ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("failed to look up email: %w", err)
	}
}

// Signin authenticates a user by email and password.
// An unknown email and a wrong password both fail with ErrInvalidCredentials.
func (u *authUsecase) Signin(ctx context.Context, email, password string) (*entity.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		// still spend the hashing time
		u.hasher.Verify(password, dummyHash)
		return nil, "", ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}
	ok := u.hasher.Verify(password, passwordHash)

	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Refresh issues a new token for a user that still exists.
func (u *authUsecase) Refresh(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Profile returns the user with userID.
func (u *authUsecase) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
