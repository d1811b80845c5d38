package dto

import "time"

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category" binding:"required"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest uses one pointer per mutable field; an omitted
// field stays untouched. ClearDueDate removes the due date, which a
// nil DueDate alone cannot express.
type UpdateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority"`
	Completed    *bool      `json:"completed"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
}

type MigrateTasksRequest struct {
	UserID string `json:"userId" binding:"required"`
}
