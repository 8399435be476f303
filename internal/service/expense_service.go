package service

import (
	"context"
	"errors"
	"fmt"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
	"productivity_tracker/internal/repository"
)

var (
	ErrExpenseNotFound = errors.New("Expense not found")
	ErrTaskNotFound    = errors.New("Task not found")
	ErrForbidden       = errors.New("Not authorized")
)

// ExpenseService defines operations for expenses
type ExpenseService interface {
	Create(ctx context.Context, ident query.Identity, req model.CreateExpenseRequest) (*model.Expense, error)
	List(ctx context.Context, ident query.Identity, filter model.ExpenseFilter, page query.Pagination, sort query.Sort) ([]model.Expense, int64, error)
	Get(ctx context.Context, ident query.Identity, id int64) (*model.Expense, error)
	Update(ctx context.Context, ident query.Identity, id int64, req model.UpdateExpenseRequest) (*model.Expense, error)
	Delete(ctx context.Context, ident query.Identity, id int64) error
	Summary(ctx context.Context, ident query.Identity) (model.FinancialSummary, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, ident query.Identity, req model.CreateExpenseRequest) (*model.Expense, error) {
	expense := &model.Expense{
		UserID:        ident.UserID,
		Title:         req.Title,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Description:   req.Description,
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense in repo: %w", err)
	}
	return expense, nil
}

// List returns the caller's own expenses matching the filter plus the total
// count over the same predicate. Cross-user listing goes through the admin
// service.
func (s *expenseService) List(ctx context.Context, ident query.Identity, filter model.ExpenseFilter, page query.Pagination, sort query.Sort) ([]model.Expense, int64, error) {
	query.SelfScope(ident).ApplyToExpenses(&filter)

	expenses, err := s.repo.Find(ctx, filter, sort, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return expenses, total, nil
}

// Get fetches a single expense. Existence is checked before ownership so a
// missing record is always a 404, never a 403.
func (s *expenseService) Get(ctx context.Context, ident query.Identity, id int64) (*model.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if !query.CanView(ident, expense.UserID) {
		return nil, ErrForbidden
	}
	return expense, nil
}

// Update applies a partial update. Only the owner may update, admins
// included.
func (s *expenseService) Update(ctx context.Context, ident query.Identity, id int64, req model.UpdateExpenseRequest) (*model.Expense, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for update: %w", err)
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if !query.CanModify(ident, existing.UserID) {
		return nil, ErrForbidden
	}

	// Apply updates; nil fields leave the existing value untouched
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.PaymentMethod != nil {
		existing.PaymentMethod = *req.PaymentMethod
	}
	if req.Date != nil {
		existing.Date = *req.Date
	}
	if req.Description != nil { // handles setting to ""
		existing.Description = req.Description
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update expense in repo: %w", err)
	}
	return existing, nil
}

// Delete removes an expense. Only the owner may delete, admins included.
func (s *expenseService) Delete(ctx context.Context, ident query.Identity, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find expense for deletion: %w", err)
	}
	if existing == nil {
		return ErrExpenseNotFound
	}
	if !query.CanModify(ident, existing.UserID) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense in repo: %w", err)
	}
	return nil
}

// Summary computes the caller's income/expense totals.
func (s *expenseService) Summary(ctx context.Context, ident query.Identity) (model.FinancialSummary, error) {
	var filter model.ExpenseFilter
	query.SelfScope(ident).ApplyToExpenses(&filter)

	summary, err := s.repo.Summary(ctx, filter)
	if err != nil {
		return model.FinancialSummary{}, fmt.Errorf("failed to get expense summary: %w", err)
	}
	return summary, nil
}
