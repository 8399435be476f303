package service

import (
	"context"
	"fmt"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
	"productivity_tracker/internal/repository"
)

// TaskService defines operations for tasks
type TaskService interface {
	Create(ctx context.Context, ident query.Identity, req model.CreateTaskRequest) (*model.Task, error)
	List(ctx context.Context, ident query.Identity, filter model.TaskFilter, page query.Pagination, sort query.Sort) ([]model.Task, int64, error)
	Get(ctx context.Context, ident query.Identity, id int64) (*model.Task, error)
	Update(ctx context.Context, ident query.Identity, id int64, req model.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, ident query.Identity, id int64) error
	Summary(ctx context.Context, ident query.Identity) (model.TaskSummary, error)
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, ident query.Identity, req model.CreateTaskRequest) (*model.Task, error) {
	status := req.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	task := &model.Task{
		UserID:      ident.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
		Category:    req.Category,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task in repo: %w", err)
	}
	return task, nil
}

// List returns the caller's own tasks matching the filter plus the total
// count over the same predicate.
func (s *taskService) List(ctx context.Context, ident query.Identity, filter model.TaskFilter, page query.Pagination, sort query.Sort) ([]model.Task, int64, error) {
	query.SelfScope(ident).ApplyToTasks(&filter)

	tasks, err := s.repo.Find(ctx, filter, sort, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, total, nil
}

// Get fetches a single task. Existence is checked before ownership.
func (s *taskService) Get(ctx context.Context, ident query.Identity, id int64) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if !query.CanView(ident, task.UserID) {
		return nil, ErrForbidden
	}
	return task, nil
}

// Update applies a partial update. Only the owner may update, admins
// included.
func (s *taskService) Update(ctx context.Context, ident query.Identity, id int64, req model.UpdateTaskRequest) (*model.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task for update: %w", err)
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}
	if !query.CanModify(ident, existing.UserID) {
		return nil, ErrForbidden
	}

	// Apply updates; nil fields leave the existing value untouched
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil { // handles setting to ""
		existing.Description = req.Description
	}
	if req.DueDate != nil {
		existing.DueDate = *req.DueDate
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update task in repo: %w", err)
	}
	return existing, nil
}

// Delete removes a task. Only the owner may delete, admins included.
func (s *taskService) Delete(ctx context.Context, ident query.Identity, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task for deletion: %w", err)
	}
	if existing == nil {
		return ErrTaskNotFound
	}
	if !query.CanModify(ident, existing.UserID) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task in repo: %w", err)
	}
	return nil
}

// Summary computes the caller's per-status task counts.
func (s *taskService) Summary(ctx context.Context, ident query.Identity) (model.TaskSummary, error) {
	var filter model.TaskFilter
	query.SelfScope(ident).ApplyToTasks(&filter)

	summary, err := s.repo.StatusSummary(ctx, filter)
	if err != nil {
		return model.TaskSummary{}, fmt.Errorf("failed to get task summary: %w", err)
	}
	return summary, nil
}
