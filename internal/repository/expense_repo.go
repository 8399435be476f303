package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"

	"github.com/jackc/pgx/v5"
)

// ExpenseRepository defines operations for expense data
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id int64) (*model.Expense, error)
	Find(ctx context.Context, filter model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.Expense, error)
	FindWithOwners(ctx context.Context, filter model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.AdminExpense, error)
	Count(ctx context.Context, filter model.ExpenseFilter) (int64, error)
	Update(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, filter model.ExpenseFilter) (model.FinancialSummary, error)
	TotalsByCategory(ctx context.Context, filter model.ExpenseFilter) ([]model.CategoryTotal, error)
	FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Expense, error)
}

type expenseRepository struct {
	db DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

var expenseSortColumns = map[string]string{
	"date":   "date",
	"amount": "amount",
}

// expenseConditions translates the filter into SQL conditions with
// positional args. prefix qualifies column names for joined queries.
func expenseConditions(f model.ExpenseFilter, prefix string) ([]string, []any) {
	var conditions []string
	var args []any

	add := func(format string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.OwnerID != nil {
		add(prefix+"user_id = $%d", *f.OwnerID)
	}
	if f.OwnerIn != nil {
		add(prefix+"user_id = ANY($%d)", f.OwnerIn)
	}
	if f.Type != nil && *f.Type != "" {
		add(prefix+"type = $%d", *f.Type)
	}
	if f.Category != nil && *f.Category != "" {
		add(prefix+"category = $%d", *f.Category)
	}
	if f.PaymentMethod != nil && *f.PaymentMethod != "" {
		add(prefix+"payment_method = $%d", *f.PaymentMethod)
	}
	if f.StartDate != nil {
		add(prefix+"date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add(prefix+"date <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		add(prefix+"amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add(prefix+"amount <= $%d", *f.MaxAmount)
	}
	if f.Search != nil && *f.Search != "" {
		args = append(args, "%"+*f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(%stitle ILIKE $%d OR %sdescription ILIKE $%d)", prefix, n, prefix, n))
	}
	return conditions, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func orderDirection(order string) string {
	if order == query.OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// Create inserts a new expense into the database
func (r *expenseRepository) Create(ctx context.Context, e *model.Expense) error {
	sql := `INSERT INTO expenses (user_id, title, amount, type, category, payment_method, date, description, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, e.UserID, e.Title, e.Amount, e.Type, e.Category, e.PaymentMethod, e.Date, e.Description).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindByID retrieves an expense by its ID
func (r *expenseRepository) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	e := &model.Expense{}
	sql := `SELECT id, user_id, title, amount, type, category, payment_method, date, description, created_at, updated_at
            FROM expenses WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Type, &e.Category, &e.PaymentMethod,
		&e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return e, nil
}

// Find retrieves expenses matching the filter, sorted and paginated.
func (r *expenseRepository) Find(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.Expense, error) {
	conditions, args := expenseConditions(f, "")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, user_id, title, amount, type, category, payment_method, date, description, created_at, updated_at
                               FROM expenses`)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, created_at DESC", expenseSortColumns[sort.Field], orderDirection(sort.Order)))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Type, &e.Category, &e.PaymentMethod,
			&e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// FindWithOwners retrieves expenses joined with owner name/email for admin
// listings.
func (r *expenseRepository) FindWithOwners(ctx context.Context, f model.ExpenseFilter, sort query.Sort, limit, offset int) ([]model.AdminExpense, error) {
	conditions, args := expenseConditions(f, "e.")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT e.id, e.user_id, e.title, e.amount, e.type, e.category, e.payment_method, e.date, e.description, e.created_at, e.updated_at, u.name, u.email
                               FROM expenses e JOIN users u ON e.user_id = u.id`)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY e.%s %s, e.created_at DESC", expenseSortColumns[sort.Field], orderDirection(sort.Order)))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses with owners: %w", err)
	}
	defer rows.Close()

	var expenses []model.AdminExpense
	for rows.Next() {
		var e model.AdminExpense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Type, &e.Category, &e.PaymentMethod,
			&e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.UserName, &e.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin expense rows: %w", err)
	}
	return expenses, nil
}

// Count returns the number of expenses matching the filter.
func (r *expenseRepository) Count(ctx context.Context, f model.ExpenseFilter) (int64, error) {
	conditions, args := expenseConditions(f, "")
	sql := "SELECT COUNT(*) FROM expenses" + whereClause(conditions)

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return total, nil
}

// Update writes the full expense row. Callers merge partial updates into
// the loaded record first, so unspecified fields keep their value.
func (r *expenseRepository) Update(ctx context.Context, e *model.Expense) error {
	sql := `UPDATE expenses
            SET title = $1, amount = $2, type = $3, category = $4, payment_method = $5, date = $6, description = $7, updated_at = NOW()
            WHERE id = $8 AND user_id = $9 RETURNING updated_at` // ensure user_id matches for ownership
	err := r.db.QueryRow(ctx, sql, e.Title, e.Amount, e.Type, e.Category, e.PaymentMethod, e.Date, e.Description, e.ID, e.UserID).
		Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("expense not found or not owned by user for update")
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// Delete removes an expense from the database
func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM expenses WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found for deletion")
	}
	return nil
}

// Summary computes income/expense totals over the filtered set. An empty
// set yields zeros, never an error.
func (r *expenseRepository) Summary(ctx context.Context, f model.ExpenseFilter) (model.FinancialSummary, error) {
	conditions, args := expenseConditions(f, "")
	sql := fmt.Sprintf(`
        SELECT
            COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) as total_income,
            COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) as total_expense
        FROM expenses%s`, whereClause(conditions))

	var s model.FinancialSummary
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.TotalIncome, &s.TotalExpense); err != nil {
		return model.FinancialSummary{}, fmt.Errorf("failed to get financial summary: %w", err)
	}
	s.NetBalance = s.TotalIncome - s.TotalExpense
	return s, nil
}

// TotalsByCategory computes the per-category amount sums over the filtered
// set.
func (r *expenseRepository) TotalsByCategory(ctx context.Context, f model.ExpenseFilter) ([]model.CategoryTotal, error) {
	conditions, args := expenseConditions(f, "")
	sql := fmt.Sprintf(`SELECT category, COALESCE(SUM(amount), 0) FROM expenses%s GROUP BY category`, whereClause(conditions))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals by category: %w", err)
	}
	defer rows.Close()

	var totals []model.CategoryTotal
	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

// FindRecent retrieves the owner's most recent expenses by date.
func (r *expenseRepository) FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Expense, error) {
	f := model.ExpenseFilter{OwnerID: &ownerID}
	return r.Find(ctx, f, query.Sort{Field: "date", Order: query.OrderDesc}, limit, 0)
}
