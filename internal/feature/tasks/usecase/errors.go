// Package usecase implements the business logic for the tasks feature.
package usecase

import (
	"fmt"

	"todo_backend/internal/shared/apperr"
)

// Field limits, in characters, measured after sanitization.
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 10000
	MaxCategoryLength    = 50
	MaxPriorityLength    = 20
)

// Pagination bounds for List.
const (
	MaxOffset    = 10000
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 50
)

var (
	// ErrTaskNotFound is returned for a missing task and for a task owned by someone else.
	ErrTaskNotFound = apperr.New(apperr.KindNotFound, "task not found")

	ErrInvalidTitle       = apperr.New(apperr.KindValidation, "task title cannot be empty")
	ErrTitleTooLong       = apperr.New(apperr.KindValidation, fmt.Sprintf("task title exceeds maximum length of %d characters", MaxTitleLength))
	ErrDescriptionTooLong = apperr.New(apperr.KindValidation, fmt.Sprintf("task description exceeds maximum length of %d characters", MaxDescriptionLength))
	ErrCategoryTooLong    = apperr.New(apperr.KindValidation, fmt.Sprintf("task category exceeds maximum length of %d characters", MaxCategoryLength))
	ErrPriorityTooLong    = apperr.New(apperr.KindValidation, fmt.Sprintf("task priority exceeds maximum length of %d characters", MaxPriorityLength))

	ErrInvalidOffset = apperr.New(apperr.KindValidation, fmt.Sprintf("offset must be between 0 and %d", MaxOffset))
	ErrInvalidLimit  = apperr.New(apperr.KindValidation, fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
)
