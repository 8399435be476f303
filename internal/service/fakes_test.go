package service

import (
	"context"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
)

// Function-field fakes for the repository interfaces. Unset fields return
// zero values so each test only wires what it asserts on.

type fakeExpenseRepo struct {
	createFn           func(ctx context.Context, e *model.Expense) error
	findByIDFn         func(ctx context.Context, id int64) (*model.Expense, error)
	findFn             func(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.Expense, error)
	findWithOwnersFn   func(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.AdminExpense, error)
	countFn            func(ctx context.Context, f model.ExpenseFilter) (int64, error)
	updateFn           func(ctx context.Context, e *model.Expense) error
	deleteFn           func(ctx context.Context, id int64) error
	summaryFn          func(ctx context.Context, f model.ExpenseFilter) (model.FinancialSummary, error)
	totalsByCategoryFn func(ctx context.Context, f model.ExpenseFilter) ([]model.CategoryTotal, error)
	findRecentFn       func(ctx context.Context, ownerID int64, limit int) ([]model.Expense, error)
}

func (r *fakeExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	if r.createFn != nil {
		return r.createFn(ctx, e)
	}
	return nil
}

func (r *fakeExpenseRepo) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *fakeExpenseRepo) Find(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.Expense, error) {
	if r.findFn != nil {
		return r.findFn(ctx, f, sort, limit, offset)
	}
	return nil, nil
}

func (r *fakeExpenseRepo) FindWithOwners(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.AdminExpense, error) {
	if r.findWithOwnersFn != nil {
		return r.findWithOwnersFn(ctx, f, sort, limit, offset)
	}
	return nil, nil
}

func (r *fakeExpenseRepo) Count(ctx context.Context, f model.ExpenseFilter) (int64, error) {
	if r.countFn != nil {
		return r.countFn(ctx, f)
	}
	return 0, nil
}

func (r *fakeExpenseRepo) Update(ctx context.Context, e *model.Expense) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, e)
	}
	return nil
}

func (r *fakeExpenseRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

func (r *fakeExpenseRepo) Summary(ctx context.Context, f model.ExpenseFilter) (model.FinancialSummary, error) {
	if r.summaryFn != nil {
		return r.summaryFn(ctx, f)
	}
	return model.FinancialSummary{}, nil
}

func (r *fakeExpenseRepo) TotalsByCategory(ctx context.Context, f model.ExpenseFilter) ([]model.CategoryTotal, error) {
	if r.totalsByCategoryFn != nil {
		return r.totalsByCategoryFn(ctx, f)
	}
	return nil, nil
}

func (r *fakeExpenseRepo) FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Expense, error) {
	if r.findRecentFn != nil {
		return r.findRecentFn(ctx, ownerID, limit)
	}
	return nil, nil
}

type fakeTaskRepo struct {
	createFn         func(ctx context.Context, t *model.Task) error
	findByIDFn       func(ctx context.Context, id int64) (*model.Task, error)
	findFn           func(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.Task, error)
	findWithOwnersFn func(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.AdminTask, error)
	countFn          func(ctx context.Context, f model.TaskFilter) (int64, error)
	updateFn         func(ctx context.Context, t *model.Task) error
	deleteFn         func(ctx context.Context, id int64) error
	statusSummaryFn  func(ctx context.Context, f model.TaskFilter) (model.TaskSummary, error)
	countsByStatusFn func(ctx context.Context, f model.TaskFilter) ([]model.StatusCount, error)
	findRecentFn     func(ctx context.Context, ownerID int64, limit int) ([]model.Task, error)
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *model.Task) error {
	if r.createFn != nil {
		return r.createFn(ctx, t)
	}
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *fakeTaskRepo) Find(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.Task, error) {
	if r.findFn != nil {
		return r.findFn(ctx, f, sort, limit, offset)
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindWithOwners(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.AdminTask, error) {
	if r.findWithOwnersFn != nil {
		return r.findWithOwnersFn(ctx, f, sort, limit, offset)
	}
	return nil, nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, f model.TaskFilter) (int64, error) {
	if r.countFn != nil {
		return r.countFn(ctx, f)
	}
	return 0, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *model.Task) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, t)
	}
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

func (r *fakeTaskRepo) StatusSummary(ctx context.Context, f model.TaskFilter) (model.TaskSummary, error) {
	if r.statusSummaryFn != nil {
		return r.statusSummaryFn(ctx, f)
	}
	return model.TaskSummary{}, nil
}

func (r *fakeTaskRepo) CountsByStatus(ctx context.Context, f model.TaskFilter) ([]model.StatusCount, error) {
	if r.countsByStatusFn != nil {
		return r.countsByStatusFn(ctx, f)
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Task, error) {
	if r.findRecentFn != nil {
		return r.findRecentFn(ctx, ownerID, limit)
	}
	return nil, nil
}

type fakeUserRepo struct {
	createFn        func(ctx context.Context, u *model.User) error
	findByEmailFn   func(ctx context.Context, email string) (*model.User, error)
	findByIDFn      func(ctx context.Context, id int64) (*model.User, error)
	findIDsByRoleFn func(ctx context.Context, role string) ([]int64, error)
	countAllFn      func(ctx context.Context) (int64, error)
	countByRoleFn   func(ctx context.Context, role string) (int64, error)
	listWithStatsFn func(ctx context.Context) ([]model.UserWithStats, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, u)
	}
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.findByEmailFn != nil {
		return r.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *fakeUserRepo) FindIDsByRole(ctx context.Context, role string) ([]int64, error) {
	if r.findIDsByRoleFn != nil {
		return r.findIDsByRoleFn(ctx, role)
	}
	return nil, nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	if r.countAllFn != nil {
		return r.countAllFn(ctx)
	}
	return 0, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	if r.countByRoleFn != nil {
		return r.countByRoleFn(ctx, role)
	}
	return 0, nil
}

func (r *fakeUserRepo) ListWithStats(ctx context.Context) ([]model.UserWithStats, error) {
	if r.listWithStatsFn != nil {
		return r.listWithStatsFn(ctx)
	}
	return nil, nil
}
