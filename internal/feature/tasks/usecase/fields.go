package usecase

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/shared/sanitize"
)

// dueDateLayouts are the ISO-8601 forms accepted for due_date. Inputs
// without an offset are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

func cleanTitle(raw string) (string, error) {
	title := sanitize.Text(raw)
	if title == "" {
		return "", ErrInvalidTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// cleanDescription returns nil for a description that is empty after sanitizing.
func cleanDescription(raw string) (*string, error) {
	desc := sanitize.Text(raw)
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	if desc == "" {
		return nil, nil
	}
	return &desc, nil
}

func cleanCategory(raw string) (string, error) {
	return cleanLabel(raw, entity.DefaultCategory, MaxCategoryLength, ErrCategoryTooLong)
}

func cleanPriority(raw string) (string, error) {
	return cleanLabel(raw, entity.DefaultPriority, MaxPriorityLength, ErrPriorityTooLong)
}

func cleanLabel(raw, fallback string, max int, tooLong error) (string, error) {
	v := sanitize.Text(raw)
	if v == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(v) > max {
		return "", tooLong
	}
	return v, nil
}

// parseDueDate parses an ISO-8601 timestamp. ok is false when raw matches
// none of the accepted layouts; callers then leave the due date untouched.
func parseDueDate(raw string) (t time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), true
		}
	}
	slog.Warn("ignoring invalid due_date", "due_date", raw)
	return time.Time{}, false
}
