package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/shared/apperr"
)

// mockTaskRepository is a mock implementation of the TaskRepository interface.
type mockTaskRepository struct {
	ListFunc     func(ctx context.Context, f ListFilter) ([]entity.Task, int64, error)
	FindByIDFunc func(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error)
	CreateFunc   func(ctx context.Context, task *entity.Task) error
	UpdateFunc   func(ctx context.Context, task *entity.Task) error
	DeleteFunc   func(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

func (m *mockTaskRepository) List(ctx context.Context, f ListFilter) ([]entity.Task, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, id)
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return false, nil
}

// passthroughTx runs fn directly and counts calls.
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

// memRepo is an owner-scoped in-memory TaskRepository.
func memRepo() (*mockTaskRepository, map[uuid.UUID]entity.Task) {
	store := map[uuid.UUID]entity.Task{}
	repo := &mockTaskRepository{
		FindByIDFunc: func(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error) {
			t, ok := store[id]
			if !ok || t.UserID != userID {
				return nil, ErrTaskNotFound
			}
			return &t, nil
		},
		CreateFunc: func(ctx context.Context, task *entity.Task) error {
			store[task.ID] = *task
			return nil
		},
		UpdateFunc: func(ctx context.Context, task *entity.Task) error {
			if t, ok := store[task.ID]; !ok || t.UserID != task.UserID {
				return ErrTaskNotFound
			}
			store[task.ID] = *task
			return nil
		},
		DeleteFunc: func(ctx context.Context, userID, id uuid.UUID) (bool, error) {
			t, ok := store[id]
			if !ok || t.UserID != userID {
				return false, nil
			}
			delete(store, id)
			return true, nil
		},
	}
	return repo, store
}

// frozenClock always returns the same instant.
func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }

func TestTaskUsecase_List(t *testing.T) {
	userID := uuid.New()

	t.Run("passes the owner and page through", func(t *testing.T) {
		var got ListFilter
		repo := &mockTaskRepository{ListFunc: func(ctx context.Context, f ListFilter) ([]entity.Task, int64, error) {
			got = f
			return []entity.Task{{ID: uuid.New(), UserID: userID}}, 7, nil
		}}
		tx := &passthroughTx{}
		uc := NewTaskUsecase(repo, tx)

		tasks, total, err := uc.List(context.Background(), userID, ListParams{Completed: ptr(true), Offset: 5, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, tasks, 1)
		assert.Equal(t, int64(7), total)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, 5, got.Offset)
		assert.Equal(t, 10, got.Limit)
		require.NotNil(t, got.Completed)
		assert.True(t, *got.Completed)
		assert.Equal(t, 1, tx.calls)
	})

	tests := []struct {
		name    string
		params  ListParams
		wantErr error
	}{
		{"lowest bounds", ListParams{Offset: 0, Limit: 1}, nil},
		{"highest bounds", ListParams{Offset: MaxOffset, Limit: MaxLimit}, nil},
		{"negative offset", ListParams{Offset: -1, Limit: 10}, ErrInvalidOffset},
		{"offset over cap", ListParams{Offset: MaxOffset + 1, Limit: 10}, ErrInvalidOffset},
		{"zero limit", ListParams{Offset: 0, Limit: 0}, ErrInvalidLimit},
		{"limit over cap", ListParams{Offset: 0, Limit: MaxLimit + 1}, ErrInvalidLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewTaskUsecase(&mockTaskRepository{}, &passthroughTx{})

			_, _, err := uc.List(context.Background(), userID, tt.params)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestTaskUsecase_Create(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 6, 1, 8, 30, 0, 123456789, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		repo, store := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})
		uc.now = frozenClock(now)

		task, err := uc.Create(context.Background(), userID, CreateInput{Title: "Buy milk"})

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.False(t, task.Completed)
		assert.Equal(t, "General", task.Category)
		assert.Equal(t, "Low", task.Priority)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, userID, task.UserID)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, now.Truncate(time.Microsecond), task.CreatedAt)
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		assert.Contains(t, store, task.ID)
	})

	t.Run("sanitizes every text field", func(t *testing.T) {
		repo, _ := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})

		task, err := uc.Create(context.Background(), userID, CreateInput{
			Title:       "  <script>alert(1)</script>Buy <b>milk</b> ",
			Description: ptr("<p>two <i>litres</i></p>"),
			Category:    ptr("<em>Home</em>"),
			Priority:    ptr(" High "),
		})

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		require.NotNil(t, task.Description)
		assert.Equal(t, "two litres", *task.Description)
		assert.Equal(t, "Home", task.Category)
		assert.Equal(t, "High", task.Priority)
	})

	t.Run("empty optional labels fall back to defaults", func(t *testing.T) {
		repo, _ := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})

		task, err := uc.Create(context.Background(), userID, CreateInput{
			Title:       "x",
			Description: ptr("   "),
			Category:    ptr(""),
			Priority:    ptr("<br>"),
		})

		require.NoError(t, err)
		assert.Nil(t, task.Description)
		assert.Equal(t, "General", task.Category)
		assert.Equal(t, "Low", task.Priority)
	})

	t.Run("due date", func(t *testing.T) {
		repo, _ := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})

		valid, err := uc.Create(context.Background(), userID, CreateInput{Title: "a", DueDate: ptr("2026-07-01T09:00:00Z")})
		require.NoError(t, err)
		require.NotNil(t, valid.DueDate)
		assert.Equal(t, time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), *valid.DueDate)

		invalid, err := uc.Create(context.Background(), userID, CreateInput{Title: "b", DueDate: ptr("next tuesday")})
		require.NoError(t, err, "an unparsable due date is dropped, not rejected")
		assert.Nil(t, invalid.DueDate)
	})

	validation := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"empty title", CreateInput{Title: ""}, ErrInvalidTitle},
		{"blank title", CreateInput{Title: "   "}, ErrInvalidTitle},
		{"markup-only title", CreateInput{Title: "<b></b>"}, ErrInvalidTitle},
		{"title too long", CreateInput{Title: strings.Repeat("t", MaxTitleLength+1)}, ErrTitleTooLong},
		{"description too long", CreateInput{Title: "ok", Description: ptr(strings.Repeat("d", MaxDescriptionLength+1))}, ErrDescriptionTooLong},
		{"category too long", CreateInput{Title: "ok", Category: ptr(strings.Repeat("c", MaxCategoryLength+1))}, ErrCategoryTooLong},
		{"priority too long", CreateInput{Title: "ok", Priority: ptr(strings.Repeat("p", MaxPriorityLength+1))}, ErrPriorityTooLong},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTaskRepository{CreateFunc: func(context.Context, *entity.Task) error {
				t.Error("Create must not be called")
				return nil
			}}
			uc := NewTaskUsecase(repo, &passthroughTx{})

			_, err := uc.Create(context.Background(), userID, tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	t.Run("title at the limit counts characters not bytes", func(t *testing.T) {
		repo, _ := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})

		_, err := uc.Create(context.Background(), userID, CreateInput{Title: strings.Repeat("é", MaxTitleLength)})

		assert.NoError(t, err)
	})

	t.Run("repository failure", func(t *testing.T) {
		dbErr := errors.New("insert failed")
		uc := NewTaskUsecase(&mockTaskRepository{CreateFunc: func(context.Context, *entity.Task) error { return dbErr }}, &passthroughTx{})

		_, err := uc.Create(context.Background(), userID, CreateInput{Title: "x"})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestTaskUsecase_Get(t *testing.T) {
	repo, _ := memRepo()
	uc := NewTaskUsecase(repo, &passthroughTx{})
	owner, other := uuid.New(), uuid.New()

	task, err := uc.Create(context.Background(), owner, CreateInput{Title: "mine"})
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = uc.Get(context.Background(), other, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound, "another user's task looks missing")

	_, err = uc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskUsecase_Update(t *testing.T) {
	owner := uuid.New()
	created := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*taskUsecase, *entity.Task) {
		t.Helper()
		repo, _ := memRepo()
		uc := NewTaskUsecase(repo, &passthroughTx{})
		uc.now = frozenClock(created)
		due := created.Add(24 * time.Hour)
		task, err := uc.Create(context.Background(), owner, CreateInput{
			Title:       "original",
			Description: ptr("desc"),
			Category:    ptr("Work"),
			Priority:    ptr("High"),
			DueDate:     ptr(due.Format(time.RFC3339)),
		})
		require.NoError(t, err)
		uc.now = frozenClock(created.Add(time.Hour))
		return uc, task
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		uc, task := setup(t)

		got, err := uc.Update(context.Background(), owner, task.ID, UpdateInput{Title: ptr(" <b>renamed</b> ")})

		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, "desc", *got.Description)
		assert.Equal(t, "Work", got.Category)
		assert.Equal(t, "High", got.Priority)
		assert.NotNil(t, got.DueDate)
		assert.Equal(t, created.Add(time.Hour), got.UpdatedAt)
		assert.Equal(t, created, got.CreatedAt)
	})

	t.Run("empty title is a validation error", func(t *testing.T) {
		uc, task := setup(t)

		_, err := uc.Update(context.Background(), owner, task.ID, UpdateInput{Title: ptr("")})

		assert.ErrorIs(t, err, ErrInvalidTitle)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		unchanged, err := uc.Get(context.Background(), owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", unchanged.Title)
		assert.Equal(t, created, unchanged.UpdatedAt)
	})

	t.Run("empty values clear or reset", func(t *testing.T) {
		uc, task := setup(t)

		got, err := uc.Update(context.Background(), owner, task.ID, UpdateInput{
			Description: ptr(""),
			Category:    ptr(""),
			Priority:    ptr(""),
			DueDate:     ptr(""),
		})

		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Equal(t, "General", got.Category)
		assert.Equal(t, "Low", got.Priority)
		assert.Nil(t, got.DueDate)
	})

	t.Run("unparsable due date keeps the old one", func(t *testing.T) {
		uc, task := setup(t)

		got, err := uc.Update(context.Background(), owner, task.ID, UpdateInput{DueDate: ptr("31/12/2026")})

		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, *task.DueDate, *got.DueDate)
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		uc, task := setup(t)

		_, err := uc.Update(context.Background(), uuid.New(), task.ID, UpdateInput{Title: ptr("stolen")})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskUsecase_Delete(t *testing.T) {
	repo, _ := memRepo()
	uc := NewTaskUsecase(repo, &passthroughTx{})
	owner := uuid.New()
	task, err := uc.Create(context.Background(), owner, CreateInput{Title: "bye"})
	require.NoError(t, err)

	deleted, err := uc.Delete(context.Background(), uuid.New(), task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = uc.Delete(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = uc.Get(context.Background(), owner, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskUsecase_ToggleCompletion(t *testing.T) {
	repo, _ := memRepo()
	uc := NewTaskUsecase(repo, &passthroughTx{})
	// a clock that never moves still yields increasing updated_at
	uc.now = frozenClock(time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	owner := uuid.New()

	task, err := uc.Create(context.Background(), owner, CreateInput{Title: "flip"})
	require.NoError(t, err)

	first, err := uc.ToggleCompletion(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.True(t, first.UpdatedAt.After(task.UpdatedAt))

	second, err := uc.ToggleCompletion(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed, "toggling twice restores the original value")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	_, err = uc.ToggleCompletion(context.Background(), uuid.New(), task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-07-01T09:00:00Z", time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), true},
		{"2026-07-01T09:00:00.5Z", time.Date(2026, 7, 1, 9, 0, 0, 500000000, time.UTC), true},
		{"2026-07-01T09:00:00+02:00", time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC), true},
		{"2026-07-01T09:00:00", time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), true},
		{"2026-07-01T09:00", time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), true},
		{"2026-07-01 09:00:00", time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), true},
		{"2026-07-01", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"07/01/2026", time.Time{}, false},
		{"2026-13-01", time.Time{}, false},
		{"tomorrow", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDueDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
