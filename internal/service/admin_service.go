package service

import (
	"context"
	"fmt"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
	"productivity_tracker/internal/repository"
)

// AdminSummary combines cross-user aggregates with user counts.
type AdminSummary struct {
	TotalUsers      int64   `json:"totalUsers"`
	AdminUsers      int64   `json:"adminUsers"`
	RegularUsers    int64   `json:"regularUsers"`
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpense    float64 `json:"totalExpense"`
	NetBalance      float64 `json:"netBalance"`
	TotalTasks      int64   `json:"totalTasks"`
	CompletedTasks  int64   `json:"completedTasks"`
	PendingTasks    int64   `json:"pendingTasks"`
	InProgressTasks int64   `json:"inProgressTasks"`
}

// AdminService provides the cross-user admin views.
type AdminService interface {
	Summary(ctx context.Context) (AdminSummary, error)
	Users(ctx context.Context) ([]model.UserWithStats, error)
	Expenses(ctx context.Context, ident query.Identity, filter model.ExpenseFilter, owner *int64, regularOnly bool, page query.Pagination, sort query.Sort) ([]model.AdminExpense, int64, error)
	Tasks(ctx context.Context, ident query.Identity, filter model.TaskFilter, owner *int64, regularOnly bool, page query.Pagination, sort query.Sort) ([]model.AdminTask, int64, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	expenseRepo repository.ExpenseRepository
	taskRepo    repository.TaskRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, expenseRepo repository.ExpenseRepository, taskRepo repository.TaskRepository) AdminService {
	return &adminService{userRepo: userRepo, expenseRepo: expenseRepo, taskRepo: taskRepo}
}

// Summary computes the global dashboard: user counts plus unscoped expense
// and task aggregates.
func (s *adminService) Summary(ctx context.Context) (AdminSummary, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return AdminSummary{}, fmt.Errorf("failed to count users: %w", err)
	}
	adminUsers, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return AdminSummary{}, fmt.Errorf("failed to count admin users: %w", err)
	}

	financial, err := s.expenseRepo.Summary(ctx, model.ExpenseFilter{})
	if err != nil {
		return AdminSummary{}, fmt.Errorf("failed to get global financial summary: %w", err)
	}
	tasks, err := s.taskRepo.StatusSummary(ctx, model.TaskFilter{})
	if err != nil {
		return AdminSummary{}, fmt.Errorf("failed to get global task summary: %w", err)
	}

	return AdminSummary{
		TotalUsers:      totalUsers,
		AdminUsers:      adminUsers,
		RegularUsers:    totalUsers - adminUsers,
		TotalIncome:     financial.TotalIncome,
		TotalExpense:    financial.TotalExpense,
		NetBalance:      financial.NetBalance,
		TotalTasks:      tasks.Total,
		CompletedTasks:  tasks.Completed,
		PendingTasks:    tasks.Pending,
		InProgressTasks: tasks.InProgress,
	}, nil
}

// Users lists every account with its expense/task counts.
func (s *adminService) Users(ctx context.Context) ([]model.UserWithStats, error) {
	users, err := s.userRepo.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.UserWithStats{}
	}
	return users, nil
}

// resolveScope builds the owner constraint for an admin listing. The
// regular-users-only restriction is a two-step query: resolve the id set
// first, then use it as an inclusion filter. An explicit owner wins over
// the inclusion set.
func (s *adminService) resolveScope(ctx context.Context, ident query.Identity, owner *int64, regularOnly bool) (query.OwnerScope, error) {
	var regularIDs []int64
	if regularOnly && owner == nil {
		ids, err := s.userRepo.FindIDsByRole(ctx, model.RoleUser)
		if err != nil {
			return query.OwnerScope{}, fmt.Errorf("failed to resolve regular user ids: %w", err)
		}
		regularIDs = ids
	}
	return query.ListScope(ident, owner, regularIDs), nil
}

// Expenses lists expenses across users with owner details.
func (s *adminService) Expenses(ctx context.Context, ident query.Identity, filter model.ExpenseFilter, owner *int64, regularOnly bool, page query.Pagination, sort query.Sort) ([]model.AdminExpense, int64, error) {
	scope, err := s.resolveScope(ctx, ident, owner, regularOnly)
	if err != nil {
		return nil, 0, err
	}
	scope.ApplyToExpenses(&filter)

	expenses, err := s.expenseRepo.FindWithOwners(ctx, filter, sort, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses for admin: %w", err)
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses for admin: %w", err)
	}
	if expenses == nil {
		expenses = []model.AdminExpense{}
	}
	return expenses, total, nil
}

// Tasks lists tasks across users with owner details.
func (s *adminService) Tasks(ctx context.Context, ident query.Identity, filter model.TaskFilter, owner *int64, regularOnly bool, page query.Pagination, sort query.Sort) ([]model.AdminTask, int64, error) {
	scope, err := s.resolveScope(ctx, ident, owner, regularOnly)
	if err != nil {
		return nil, 0, err
	}
	scope.ApplyToTasks(&filter)

	tasks, err := s.taskRepo.FindWithOwners(ctx, filter, sort, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks for admin: %w", err)
	}
	total, err := s.taskRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks for admin: %w", err)
	}
	if tasks == nil {
		tasks = []model.AdminTask{}
	}
	return tasks, total, nil
}
