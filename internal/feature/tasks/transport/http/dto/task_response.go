package dto

import (
	"time"

	"todo_backend/internal/feature/tasks/domain/entity"
)

// TaskRes is the JSON form of a task.
type TaskRes struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListRes is the body of GET /tasks. Count is the total matching the
// filter, independent of paging.
type TaskListRes struct {
	Tasks []TaskRes `json:"tasks"`
	Count int64     `json:"count"`
}

// NewTaskRes converts a task entity to its response form.
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Category:    t.Category,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskListRes converts a page of tasks and the total count.
func NewTaskListRes(tasks []entity.Task, count int64) TaskListRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskRes(&tasks[i]))
	}
	return TaskListRes{Tasks: out, Count: count}
}
