// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Default values for optional task fields.
const (
	DefaultCategory = "General"
	DefaultPriority = "Low"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID uuid.UUID

	// UserID is the owner. It never changes after creation and every
	// read or write is filtered by it together with ID.
	UserID uuid.UUID

	Title       string
	Description *string
	Completed   bool
	Category    string
	Priority    string
	DueDate     *time.Time

	CreatedAt time.Time
	// UpdatedAt advances on every successful mutation.
	UpdatedAt time.Time
}
