package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseRepo(t *testing.T) (pgxmock.PgxPoolIface, ExpenseRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewExpenseRepository(mock)
}

func strPtr(s string) *string       { return &s }
func int64Ptr(n int64) *int64       { return &n }
func floatPtr(f float64) *float64   { return &f }
func timePtr(t time.Time) *time.Time { return &t }

var expenseColumns = []string{"id", "user_id", "title", "amount", "type", "category", "payment_method", "date", "description", "created_at", "updated_at"}

func TestExpenseRepository_Count_ComposesConditions(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := model.ExpenseFilter{
		OwnerID:   int64Ptr(7),
		Type:      strPtr("expense"),
		Category:  strPtr("Food"),
		StartDate: timePtr(start),
		MinAmount: floatPtr(5),
		Search:    strPtr("coffee"),
	}

	expected := "SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND type = $2 AND category = $3 AND date >= $4 AND amount >= $5 AND (title ILIKE $6 OR description ILIKE $6)"
	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WithArgs(int64(7), "expense", "Food", start, 5.0, "%coffee%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.Count(context.Background(), f)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Count_NoFilter(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM expenses") + "$").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	total, err := repo.Count(context.Background(), model.ExpenseFilter{})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Find_OrdersAndPaginates(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	f := model.ExpenseFilter{OwnerID: int64Ptr(7)}
	now := time.Now()

	expected := regexp.QuoteMeta("FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3")
	mock.ExpectQuery(expected).
		WithArgs(int64(7), 10, 20).
		WillReturnRows(pgxmock.NewRows(expenseColumns).
			AddRow(int64(1), int64(7), "Lunch", 12.5, "expense", "Food", "card", now, nil, now, now).
			AddRow(int64(2), int64(7), "Salary", 5000.0, "income", "Salary", "transfer", now, strPtr("monthly"), now, now))

	expenses, err := repo.Find(context.Background(), f, query.Sort{Field: "date", Order: query.OrderDesc}, 10, 20)

	assert.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Lunch", expenses[0].Title)
	assert.Nil(t, expenses[0].Description)
	assert.Equal(t, "monthly", *expenses[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Find_OwnerInclusionSet(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	f := model.ExpenseFilter{OwnerIn: []int64{2, 3}}

	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses WHERE user_id = ANY($1)")).
		WithArgs([]int64{2, 3}).
		WillReturnRows(pgxmock.NewRows(expenseColumns))

	expenses, err := repo.Find(context.Background(), f, query.Sort{Field: "amount", Order: query.OrderAsc}, 10, 0)

	assert.NoError(t, err)
	assert.Empty(t, expenses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Summary_EmptySetIsZero(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"total_income", "total_expense"}).AddRow(0.0, 0.0))

	s, err := repo.Summary(context.Background(), model.ExpenseFilter{OwnerID: int64Ptr(7)})

	assert.NoError(t, err)
	assert.Equal(t, model.FinancialSummary{TotalIncome: 0, TotalExpense: 0, NetBalance: 0}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Summary_NetBalance(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"total_income", "total_expense"}).AddRow(5000.0, 150.0))

	s, err := repo.Summary(context.Background(), model.ExpenseFilter{OwnerID: int64Ptr(7)})

	assert.NoError(t, err)
	assert.Equal(t, 5000.0, s.TotalIncome)
	assert.Equal(t, 150.0, s.TotalExpense)
	assert.Equal(t, 4850.0, s.NetBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_TotalsByCategory(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category, COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 GROUP BY category")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"category", "sum"}).
			AddRow("Food", 120.0).
			AddRow("Bills", 340.5))

	totals, err := repo.TotalsByCategory(context.Background(), model.ExpenseFilter{OwnerID: int64Ptr(7)})

	assert.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, model.CategoryTotal{Category: "Food", Total: 120.0}, totals[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Create(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	e := &model.Expense{
		UserID:        7,
		Title:         "Lunch",
		Amount:        12.5,
		Type:          "expense",
		Category:      "Food",
		PaymentMethod: "card",
		Date:          date,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs(int64(7), "Lunch", 12.5, "expense", "Food", "card", date, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	err := repo.Create(context.Background(), e)

	assert.NoError(t, err)
	assert.Equal(t, int64(11), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newExpenseRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
