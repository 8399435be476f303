package model

import "time"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents a to-do item owned by a user.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`   // pending, in-progress or completed
	Priority    string    `json:"priority"` // low, medium or high
	Category    string    `json:"category"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AdminTask is a task row joined with its owner for admin listings.
type AdminTask struct {
	Task
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// CreateTaskRequest is used for creating a new task. Status and priority
// default to "pending" / "medium" when omitted.
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string    `json:"category" binding:"required"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in-progress completed"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Category    *string    `json:"category,omitempty"`
}

// TaskFilter contains the visibility constraint plus optional filter
// parameters for task queries. Nil fields are not applied.
type TaskFilter struct {
	OwnerID   *int64
	OwnerIn   []int64 // nil = unconstrained, non-nil = inclusion set
	Status    *string
	Priority  *string
	Category  *string
	DueAfter  *time.Time
	DueBefore *time.Time
	Search    *string
}

// TaskSummary aggregates task records into per-status counts.
type TaskSummary struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
}

// StatusCount is a grouped count of tasks per distinct status value.
type StatusCount struct {
	Status string
	Count  int64
}
