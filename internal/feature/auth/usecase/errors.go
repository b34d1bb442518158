// Package usecase implements the business logic for the auth feature.
package usecase

import "todo_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	// A token whose user no longer exists is treated as an invalid credential.
	ErrUserNotFound = apperr.New(apperr.KindUnauthorized, "user not found")

	// ErrEmailTaken is returned when signing up with an email that is already registered.
	ErrEmailTaken = apperr.New(apperr.KindConflict, "email already registered")

	// ErrInvalidCredentials is returned by Signin for an unknown email or a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid email or password")

	// ErrEmailRequired is returned when the email is empty after sanitization.
	ErrEmailRequired = apperr.New(apperr.KindValidation, "email is required")

	// ErrEmailTooLong is returned when the normalized email exceeds MaxEmailLength.
	ErrEmailTooLong = apperr.New(apperr.KindValidation, "email must be at most 255 characters")
)
