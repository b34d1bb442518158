package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// ListFilter selects one page of a user's tasks.
type ListFilter struct {
	UserID    uuid.UUID
	Completed *bool
	Offset    int
	Limit     int
}

// TaskRepository abstracts the persistence layer for tasks. Every method is
// scoped by the owner; an ID alone never selects a row.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// List returns one page ordered newest first and the total number of
	// tasks matching the filter regardless of paging.
	List(ctx context.Context, f ListFilter) ([]entity.Task, int64, error)

	// FindByID returns ErrTaskNotFound unless a task with id is owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error)

	Create(ctx context.Context, task *entity.Task) error

	// Update writes every mutable field of task. It returns ErrTaskNotFound
	// when no row matches task.ID and task.UserID.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes the task in a single statement filtered by id and owner.
	// It reports whether a row was removed.
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// TxManager runs fn inside a unit of work.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ListParams are the caller-supplied paging and filter values.
type ListParams struct {
	Completed *bool
	Offset    int
	Limit     int
}

// CreateInput holds the fields of a new task. Nil means not supplied.
type CreateInput struct {
	Title       string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *string
}

// UpdateInput holds the fields to change. Nil fields are left as they are.
// An empty DueDate clears the due date; an unparsable one is ignored.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *string
}

// taskUsecase implements task management for an authenticated user.
type taskUsecase struct {
	tasks TaskRepository
	tx    TxManager
	now   func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase.
func NewTaskUsecase(tasks TaskRepository, tx TxManager) *taskUsecase {
	return &taskUsecase{
		tasks: tasks,
		tx:    tx,
		now:   time.Now,
	}
}

// timestamp returns the current time, strictly after prev when prev is set.
func (u *taskUsecase) timestamp(prev time.Time) time.Time {
	now := u.now().UTC().Truncate(time.Microsecond)
	if !prev.IsZero() && !now.After(prev) {
		now = prev.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}

// List returns a page of the user's tasks, newest first, with the total count.
// Offset and limit outside their bounds are rejected.
func (u *taskUsecase) List(ctx context.Context, userID uuid.UUID, p ListParams) ([]entity.Task, int64, error) {
	if p.Offset < 0 || p.Offset > MaxOffset {
		return nil, 0, ErrInvalidOffset
	}
	if p.Limit < MinLimit || p.Limit > MaxLimit {
		return nil, 0, ErrInvalidLimit
	}

	var (
		tasks []entity.Task
		total int64
	)
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		tasks, total, err = u.tasks.List(ctx, ListFilter{
			UserID:    userID,
			Completed: p.Completed,
			Offset:    p.Offset,
			Limit:     p.Limit,
		})
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Get returns the user's task with id.
func (u *taskUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error) {
	var task *entity.Task
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		task, err = u.tasks.FindByID(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create sanitizes and validates in, then stores a new incomplete task.
func (u *taskUsecase) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*entity.Task, error) {
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		Category: entity.DefaultCategory,
		Priority: entity.DefaultPriority,
	}
	if in.Description != nil {
		if task.Description, err = cleanDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.Category != nil {
		if task.Category, err = cleanCategory(*in.Category); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil {
		if task.Priority, err = cleanPriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	if in.DueDate != nil && *in.DueDate != "" {
		if due, ok := parseDueDate(*in.DueDate); ok {
			task.DueDate = &due
		}
	}

	now := u.timestamp(time.Time{})
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.tasks.Create(ctx, task)
	}); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the supplied fields of in to the user's task with id.
// Validation runs before the task is loaded so a bad field changes nothing.
func (u *taskUsecase) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*entity.Task, error) {
	apply, err := buildPatch(in)
	if err != nil {
		return nil, err
	}

	var task *entity.Task
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if task, err = u.tasks.FindByID(ctx, userID, id); err != nil {
			return err
		}
		apply(task)
		task.UpdatedAt = u.timestamp(task.UpdatedAt)
		return u.tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// buildPatch validates in and returns a function applying it to a task.
func buildPatch(in UpdateInput) (func(*entity.Task), error) {
	var patches []func(*entity.Task)

	if in.Title != nil {
		title, err := cleanTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		patches = append(patches, func(t *entity.Task) { t.Title = title })
	}
	if in.Description != nil {
		desc, err := cleanDescription(*in.Description)
		if err != nil {
			return nil, err
		}
		patches = append(patches, func(t *entity.Task) { t.Description = desc })
	}
	if in.Category != nil {
		category, err := cleanCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		patches = append(patches, func(t *entity.Task) { t.Category = category })
	}
	if in.Priority != nil {
		priority, err := cleanPriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		patches = append(patches, func(t *entity.Task) { t.Priority = priority })
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			patches = append(patches, func(t *entity.Task) { t.DueDate = nil })
		} else if due, ok := parseDueDate(*in.DueDate); ok {
			patches = append(patches, func(t *entity.Task) { t.DueDate = &due })
		}
	}

	return func(t *entity.Task) {
		for _, p := range patches {
			p(t)
		}
	}, nil
}

// Delete removes the user's task with id and reports whether it existed.
func (u *taskUsecase) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var deleted bool
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = u.tasks.Delete(ctx, userID, id)
		return err
	})
	return deleted, err
}

// ToggleCompletion flips the completed flag of the user's task with id.
func (u *taskUsecase) ToggleCompletion(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error) {
	var task *entity.Task
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if task, err = u.tasks.FindByID(ctx, userID, id); err != nil {
			return err
		}
		task.Completed = !task.Completed
		task.UpdatedAt = u.timestamp(task.UpdatedAt)
		return u.tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
