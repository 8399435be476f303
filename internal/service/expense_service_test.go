package service

import (
	"context"
	"testing"
	"time"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

var (
	userIdent  = query.Identity{UserID: 7, Role: model.RoleUser}
	adminIdent = query.Identity{UserID: 1, Role: model.RoleAdmin}
)

func TestExpenseService_Create_OwnerFromIdentity(t *testing.T) {
	var created *model.Expense
	repo := &fakeExpenseRepo{
		createFn: func(_ context.Context, e *model.Expense) error {
			e.ID = 11
			created = e
			return nil
		},
	}
	svc := NewExpenseService(repo)

	expense, err := svc.Create(context.Background(), userIdent, model.CreateExpenseRequest{
		Title: "Lunch", Amount: 12.5, Type: "expense", Category: "Food", PaymentMethod: "card", Date: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), expense.ID)
	assert.Equal(t, int64(7), created.UserID)
}

func TestExpenseService_List_AlwaysSelfScoped(t *testing.T) {
	var gotFilter model.ExpenseFilter
	repo := &fakeExpenseRepo{
		findFn: func(_ context.Context, f model.ExpenseFilter, _ query.Sort, _, _ int) ([]model.Expense, error) {
			gotFilter = f
			return nil, nil
		},
		countFn: func(_ context.Context, f model.ExpenseFilter) (int64, error) {
			assert.Equal(t, gotFilter, f)
			return 0, nil
		},
	}
	svc := NewExpenseService(repo)

	other := int64(99)
	filter := model.ExpenseFilter{OwnerID: &other}

	// Admins are self-scoped here too; cross-user listing is an admin route
	expenses, total, err := svc.List(context.Background(), adminIdent, filter, query.Pagination{Page: 1, Limit: 10}, query.Sort{})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.OwnerID)
	assert.Equal(t, int64(1), *gotFilter.OwnerID)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, expenses)
	assert.Len(t, expenses, 0)
}

func TestExpenseService_Get_NotFoundBeforeForbidden(t *testing.T) {
	repo := &fakeExpenseRepo{}
	svc := NewExpenseService(repo)

	// Missing record is a not-found even when the caller could never own it
	_, err := svc.Get(context.Background(), userIdent, 99)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseService_Get_OwnershipChecks(t *testing.T) {
	repo := &fakeExpenseRepo{
		findByIDFn: func(_ context.Context, id int64) (*model.Expense, error) {
			return &model.Expense{ID: id, UserID: 2}, nil
		},
	}
	svc := NewExpenseService(repo)

	_, err := svc.Get(context.Background(), userIdent, 5)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may read any record
	expense, err := svc.Get(context.Background(), adminIdent, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), expense.UserID)
}

func TestExpenseService_Update_PartialMerge(t *testing.T) {
	existing := &model.Expense{
		ID: 5, UserID: 7, Title: "Lunch", Amount: 12.5, Type: "expense",
		Category: "Food", PaymentMethod: "card", Description: strPtr("old"),
	}
	var updated *model.Expense
	repo := &fakeExpenseRepo{
		findByIDFn: func(_ context.Context, _ int64) (*model.Expense, error) { return existing, nil },
		updateFn: func(_ context.Context, e *model.Expense) error {
			updated = e
			return nil
		},
	}
	svc := NewExpenseService(repo)

	_, err := svc.Update(context.Background(), userIdent, 5, model.UpdateExpenseRequest{
		Amount:      floatPtr(20),
		Description: strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Amount)
	assert.Equal(t, "", *updated.Description)
	// Unset fields keep their stored values
	assert.Equal(t, "Lunch", updated.Title)
	assert.Equal(t, "Food", updated.Category)
}

func TestExpenseService_Update_AdminCannotModifyOthers(t *testing.T) {
	repo := &fakeExpenseRepo{
		findByIDFn: func(_ context.Context, id int64) (*model.Expense, error) {
			return &model.Expense{ID: id, UserID: 2}, nil
		},
	}
	svc := NewExpenseService(repo)

	_, err := svc.Update(context.Background(), adminIdent, 5, model.UpdateExpenseRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), adminIdent, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExpenseService_Delete_NotFound(t *testing.T) {
	svc := NewExpenseService(&fakeExpenseRepo{})

	err := svc.Delete(context.Background(), userIdent, 99)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestExpenseService_Summary_SelfScoped(t *testing.T) {
	repo := &fakeExpenseRepo{
		summaryFn: func(_ context.Context, f model.ExpenseFilter) (model.FinancialSummary, error) {
			require.NotNil(t, f.OwnerID)
			assert.Equal(t, int64(7), *f.OwnerID)
			return model.FinancialSummary{TotalIncome: 100, TotalExpense: 40, NetBalance: 60}, nil
		},
	}
	svc := NewExpenseService(repo)

	s, err := svc.Summary(context.Background(), userIdent)

	require.NoError(t, err)
	assert.Equal(t, 60.0, s.NetBalance)
}
