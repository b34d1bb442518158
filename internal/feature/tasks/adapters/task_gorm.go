// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/db"
)

// taskGorm is the GORM implementation of usecase.TaskRepository.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new instance of taskGorm.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func (r *taskGorm) owned(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return db.Conn(ctx, r.db).Model(&TaskModel{}).Where("user_id = ?", userID)
}

// List returns the page newest first; id breaks ties so pages never overlap.
func (r *taskGorm) List(ctx context.Context, f usecase.ListFilter) ([]entity.Task, int64, error) {
	q := r.owned(ctx, f.UserID)
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []TaskModel
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]entity.Task, len(models))
	for i := range models {
		tasks[i] = models[i].ToEntity()
	}
	return tasks, total, nil
}

// FindByID returns usecase.ErrTaskNotFound when the task is missing or owned by another user.
func (r *taskGorm) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error) {
	var model TaskModel
	if err := r.owned(ctx, userID).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	t := model.ToEntity()
	return &t, nil
}

// Create inserts task.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	return db.Conn(ctx, r.db).Create(TaskModelFromEntity(task)).Error
}

// Update writes the mutable fields of task, filtered by id and owner.
func (r *taskGorm) Update(ctx context.Context, task *entity.Task) error {
	res := r.owned(ctx, task.UserID).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"completed":   task.Completed,
			"category":    task.Category,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with a single statement conditioned on id and owner.
func (r *taskGorm) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := db.Conn(ctx, r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&TaskModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
