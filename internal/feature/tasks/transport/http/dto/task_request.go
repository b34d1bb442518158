// Package dto defines data transfer objects for the tasks HTTP API.
package dto

import (
	"fmt"
	"strconv"
)

// ListTasksQuery is the query string of GET /tasks.
// Completed stays a string so that "?completed=" means no filter.
type ListTasksQuery struct {
	Completed *string `form:"completed"`
	Offset    int     `form:"offset,default=0"`
	Limit     int     `form:"limit,default=50"`
}

// CompletedFilter returns nil when completed is absent or empty.
func (q ListTasksQuery) CompletedFilter() (*bool, error) {
	if q.Completed == nil || *q.Completed == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(*q.Completed)
	if err != nil {
		return nil, fmt.Errorf("completed must be true or false, got %q", *q.Completed)
	}
	return &v, nil
}

// CreateTaskReq is the body of POST /tasks. Title rules are enforced after
// sanitization, so the tag only requires the field to be present.
type CreateTaskReq struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskReq is the body of PUT /tasks/:id. Omitted or null fields are left unchanged.
type UpdateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}
