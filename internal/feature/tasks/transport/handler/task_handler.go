// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo_backend/internal/feature/tasks/domain/entity"
	"todo_backend/internal/feature/tasks/transport/http/dto"
	"todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/http/httperr"
	jwtmw "todo_backend/internal/platform/jwt"
)

// TaskUsecase defines the task operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TaskUsecase interface {
	List(ctx context.Context, userID uuid.UUID, p usecase.ListParams) ([]entity.Task, int64, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error)
	Create(ctx context.Context, userID uuid.UUID, in usecase.CreateInput) (*entity.Task, error)
	Update(ctx context.Context, userID, id uuid.UUID, in usecase.UpdateInput) (*entity.Task, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ToggleCompletion(ctx context.Context, userID, id uuid.UUID) (*entity.Task, error)
}

// TaskHandler handles HTTP requests for the authenticated user's tasks.
// Every route requires AuthRequired upstream.
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// caller returns the authenticated user, aborting with 401 when absent.
func caller(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		jwtmw.Unauthorized(c, "missing authentication credentials")
	}
	return userID, ok
}

// taskID parses the :id path parameter. A malformed ID cannot name any task,
// so it is reported as not found.
func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, usecase.ErrTaskNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /tasks?completed=&offset=&limit=.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}
	completed, err := q.CompletedFilter()
	if err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	tasks, total, err := h.uc.List(c.Request.Context(), userID, usecase.ListParams{
		Completed: completed,
		Offset:    q.Offset,
		Limit:     q.Limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks, total))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	task, err := h.uc.Create(c.Request.Context(), userID, usecase.CreateInput{
		Title:       *req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		slog.Warn("create task failed", "error", err, "user_id", userID)
		httperr.Respond(c, err)
		return
	}

	slog.Info("task created", "task_id", task.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewTaskRes(task))
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.uc.Get(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Update handles PUT /tasks/:id with a partial body.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	task, err := h.uc.Update(c.Request.Context(), userID, id, usecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		slog.Warn("update task failed", "error", err, "task_id", id, "user_id", userID)
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	deleted, err := h.uc.Delete(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !deleted {
		httperr.Respond(c, usecase.ErrTaskNotFound)
		return
	}

	slog.Info("task deleted", "task_id", id, "user_id", userID)
	c.Status(http.StatusNoContent)
}

// ToggleCompletion handles PATCH /tasks/:id/complete. Any request body is ignored.
func (h *TaskHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.uc.ToggleCompletion(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}
