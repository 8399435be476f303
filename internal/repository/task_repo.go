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

// TaskRepository defines operations for task data
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	Find(ctx context.Context, filter model.TaskFilter, sort query.Sort, limit, offset int) ([]model.Task, error)
	FindWithOwners(ctx context.Context, filter model.TaskFilter, sort query.Sort, limit, offset int) ([]model.AdminTask, error)
	Count(ctx context.Context, filter model.TaskFilter) (int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64) error
	StatusSummary(ctx context.Context, filter model.TaskFilter) (model.TaskSummary, error)
	CountsByStatus(ctx context.Context, filter model.TaskFilter) ([]model.StatusCount, error)
	FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Task, error)
}

type taskRepository struct {
	db DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

var taskSortColumns = map[string]string{
	"dueDate":  "due_date",
	"priority": "priority",
}

func taskConditions(f model.TaskFilter, prefix string) ([]string, []any) {
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
	if f.Status != nil && *f.Status != "" {
		add(prefix+"status = $%d", *f.Status)
	}
	if f.Priority != nil && *f.Priority != "" {
		add(prefix+"priority = $%d", *f.Priority)
	}
	if f.Category != nil && *f.Category != "" {
		add(prefix+"category = $%d", *f.Category)
	}
	if f.DueAfter != nil {
		add(prefix+"due_date >= $%d", *f.DueAfter)
	}
	if f.DueBefore != nil {
		add(prefix+"due_date <= $%d", *f.DueBefore)
	}
	if f.Search != nil && *f.Search != "" {
		args = append(args, "%"+*f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(%stitle ILIKE $%d OR %sdescription ILIKE $%d)", prefix, n, prefix, n))
	}
	return conditions, args
}

// Create inserts a new task into the database
func (r *taskRepository) Create(ctx context.Context, t *model.Task) error {
	sql := `INSERT INTO tasks (user_id, title, description, due_date, status, priority, category, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW()) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, t.UserID, t.Title, t.Description, t.DueDate, t.Status, t.Priority, t.Category).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID
func (r *taskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	t := &model.Task{}
	sql := `SELECT id, user_id, title, description, due_date, status, priority, category, created_at, updated_at
            FROM tasks WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.Priority,
		&t.Category, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return t, nil
}

// Find retrieves tasks matching the filter, sorted and paginated.
func (r *taskRepository) Find(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.Task, error) {
	conditions, args := taskConditions(f, "")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, user_id, title, description, due_date, status, priority, category, created_at, updated_at
                               FROM tasks`)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, created_at DESC", taskSortColumns[sort.Field], orderDirection(sort.Order)))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.Priority,
			&t.Category, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// FindWithOwners retrieves tasks joined with owner name/email for admin
// listings.
func (r *taskRepository) FindWithOwners(ctx context.Context, f model.TaskFilter, sort query.Sort, limit, offset int) ([]model.AdminTask, error) {
	conditions, args := taskConditions(f, "t.")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT t.id, t.user_id, t.title, t.description, t.due_date, t.status, t.priority, t.category, t.created_at, t.updated_at, u.name, u.email
                               FROM tasks t JOIN users u ON t.user_id = u.id`)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.%s %s, t.created_at DESC", taskSortColumns[sort.Field], orderDirection(sort.Order)))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks with owners: %w", err)
	}
	defer rows.Close()

	var tasks []model.AdminTask
	for rows.Next() {
		var t model.AdminTask
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.Priority,
			&t.Category, &t.CreatedAt, &t.UpdatedAt, &t.UserName, &t.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan admin task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin task rows: %w", err)
	}
	return tasks, nil
}

// Count returns the number of tasks matching the filter.
func (r *taskRepository) Count(ctx context.Context, f model.TaskFilter) (int64, error) {
	conditions, args := taskConditions(f, "")
	sql := "SELECT COUNT(*) FROM tasks" + whereClause(conditions)

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return total, nil
}

// Update writes the full task row. Callers merge partial updates into the
// loaded record first, so unspecified fields keep their value.
func (r *taskRepository) Update(ctx context.Context, t *model.Task) error {
	sql := `UPDATE tasks
            SET title = $1, description = $2, due_date = $3, status = $4, priority = $5, category = $6, updated_at = NOW()
            WHERE id = $7 AND user_id = $8 RETURNING updated_at` // ensure user_id matches for ownership
	err := r.db.QueryRow(ctx, sql, t.Title, t.Description, t.DueDate, t.Status, t.Priority, t.Category, t.ID, t.UserID).
		Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("task not found or not owned by user for update")
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task from the database
func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM tasks WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("task not found for deletion")
	}
	return nil
}

// StatusSummary computes the total and per-status counts over the filtered
// set. An empty set yields zeros, never an error.
func (r *taskRepository) StatusSummary(ctx context.Context, f model.TaskFilter) (model.TaskSummary, error) {
	conditions, args := taskConditions(f, "")
	sql := fmt.Sprintf(`
        SELECT
            COUNT(*) as total,
            COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) as completed,
            COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) as pending,
            COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0) as in_progress
        FROM tasks%s`, whereClause(conditions))

	var s model.TaskSummary
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.Total, &s.Completed, &s.Pending, &s.InProgress); err != nil {
		return model.TaskSummary{}, fmt.Errorf("failed to get task status summary: %w", err)
	}
	return s, nil
}

// CountsByStatus computes the per-status counts over the filtered set.
func (r *taskRepository) CountsByStatus(ctx context.Context, f model.TaskFilter) ([]model.StatusCount, error) {
	conditions, args := taskConditions(f, "")
	sql := fmt.Sprintf(`SELECT status, COUNT(*) FROM tasks%s GROUP BY status`, whereClause(conditions))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get counts by status: %w", err)
	}
	defer rows.Close()

	var counts []model.StatusCount
	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}
	return counts, nil
}

// FindRecent retrieves the owner's most recently due tasks.
func (r *taskRepository) FindRecent(ctx context.Context, ownerID int64, limit int) ([]model.Task, error) {
	f := model.TaskFilter{OwnerID: &ownerID}
	return r.Find(ctx, f, query.Sort{Field: "dueDate", Order: query.OrderDesc}, limit, 0)
}
