package service

import (
	"context"
	"fmt"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
	"productivity_tracker/internal/repository"
)

const (
	recentExpenseCount = 2
	recentTaskCount    = 1
)

// DashboardSummary combines the caller's financial and task aggregates.
type DashboardSummary struct {
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpense   float64 `json:"totalExpense"`
	NetBalance     float64 `json:"netBalance"`
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	PendingTasks   int64   `json:"pendingTasks"`
}

// RecentActivity is the caller's latest expenses and most recently due task.
type RecentActivity struct {
	Expenses []model.Expense `json:"expenses"`
	Tasks    []model.Task    `json:"tasks"`
}

// DashboardService provides the self-scoped dashboard aggregates. These are
// always scoped to the caller, admins included.
type DashboardService interface {
	Summary(ctx context.Context, ident query.Identity) (DashboardSummary, error)
	ExpensesByCategory(ctx context.Context, ident query.Identity) ([]model.CategorySlice, error)
	TasksByStatus(ctx context.Context, ident query.Identity) ([]model.StatusSlice, error)
	RecentActivity(ctx context.Context, ident query.Identity) (RecentActivity, error)
}

type dashboardService struct {
	expenseRepo repository.ExpenseRepository
	taskRepo    repository.TaskRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(expenseRepo repository.ExpenseRepository, taskRepo repository.TaskRepository) DashboardService {
	return &dashboardService{expenseRepo: expenseRepo, taskRepo: taskRepo}
}

func (s *dashboardService) Summary(ctx context.Context, ident query.Identity) (DashboardSummary, error) {
	var expenseFilter model.ExpenseFilter
	query.SelfScope(ident).ApplyToExpenses(&expenseFilter)
	financial, err := s.expenseRepo.Summary(ctx, expenseFilter)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("failed to get financial summary: %w", err)
	}

	var taskFilter model.TaskFilter
	query.SelfScope(ident).ApplyToTasks(&taskFilter)
	tasks, err := s.taskRepo.StatusSummary(ctx, taskFilter)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("failed to get task summary: %w", err)
	}

	return DashboardSummary{
		TotalIncome:    financial.TotalIncome,
		TotalExpense:   financial.TotalExpense,
		NetBalance:     financial.NetBalance,
		TotalTasks:     tasks.Total,
		CompletedTasks: tasks.Completed,
		PendingTasks:   tasks.Pending,
	}, nil
}

// ExpensesByCategory returns the caller's per-category amount totals tagged
// with chart colors. An empty result is an empty slice, never nil.
func (s *dashboardService) ExpensesByCategory(ctx context.Context, ident query.Identity) ([]model.CategorySlice, error) {
	var filter model.ExpenseFilter
	query.SelfScope(ident).ApplyToExpenses(&filter)

	totals, err := s.expenseRepo.TotalsByCategory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	slices := make([]model.CategorySlice, 0, len(totals))
	for _, t := range totals {
		slices = append(slices, model.CategorySlice{
			Name:  t.Category,
			Value: t.Total,
			Color: model.CategoryColor(t.Category),
		})
	}
	return slices, nil
}

// TasksByStatus returns the caller's per-status counts tagged with labels
// and chart colors.
func (s *dashboardService) TasksByStatus(ctx context.Context, ident query.Identity) ([]model.StatusSlice, error) {
	var filter model.TaskFilter
	query.SelfScope(ident).ApplyToTasks(&filter)

	counts, err := s.taskRepo.CountsByStatus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	slices := make([]model.StatusSlice, 0, len(counts))
	for _, c := range counts {
		slices = append(slices, model.StatusSlice{
			Name:  model.StatusLabel(c.Status),
			Value: c.Count,
			Color: model.StatusColor(c.Status),
		})
	}
	return slices, nil
}

// RecentActivity returns the caller's two most recent expenses by date and
// the most recently due task.
func (s *dashboardService) RecentActivity(ctx context.Context, ident query.Identity) (RecentActivity, error) {
	expenses, err := s.expenseRepo.FindRecent(ctx, ident.UserID, recentExpenseCount)
	if err != nil {
		return RecentActivity{}, fmt.Errorf("failed to get recent expenses: %w", err)
	}
	tasks, err := s.taskRepo.FindRecent(ctx, ident.UserID, recentTaskCount)
	if err != nil {
		return RecentActivity{}, fmt.Errorf("failed to get recent tasks: %w", err)
	}

	if expenses == nil {
		expenses = []model.Expense{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return RecentActivity{Expenses: expenses, Tasks: tasks}, nil
}
