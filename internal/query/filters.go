package query

import (
	"net/url"
	"strconv"
	"time"

	"productivity_tracker/internal/model"
)

// ExpenseSortSpec is the sortable surface of expense listings.
var ExpenseSortSpec = SortSpec{
	Allowed:      []string{"date", "amount"},
	DefaultField: "date",
	DefaultOrder: OrderDesc,
}

// TaskSortSpec is the sortable surface of the user task listing. Admin task
// listings use AdminTaskSortSpec, which defaults to descending order.
var TaskSortSpec = SortSpec{
	Allowed:      []string{"dueDate", "priority"},
	DefaultField: "dueDate",
	DefaultOrder: OrderAsc,
}

var AdminTaskSortSpec = SortSpec{
	Allowed:      []string{"dueDate", "priority"},
	DefaultField: "dueDate",
	DefaultOrder: OrderDesc,
}

// parseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(raw, param string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, validationErrorf("invalid date for %q, use YYYY-MM-DD or RFC3339", param)
	}
	return t, nil
}

func parseAmount(raw, param string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validationErrorf("invalid number for %q", param)
	}
	return v, nil
}

// ParseExpenseFilter builds the expense filter from raw query values.
// Equality filters are applied only when present and non-empty; range
// bounds are inclusive and independent.
func ParseExpenseFilter(values url.Values) (model.ExpenseFilter, error) {
	var f model.ExpenseFilter

	if v := values.Get("type"); v != "" {
		if v != model.ExpenseTypeIncome && v != model.ExpenseTypeExpense {
			return f, validationErrorf("invalid type %q", v)
		}
		f.Type = &v
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("paymentMethod"); v != "" {
		f.PaymentMethod = &v
	}
	if v := values.Get("startDate"); v != "" {
		t, err := parseDate(v, "startDate")
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if v := values.Get("endDate"); v != "" {
		t, err := parseDate(v, "endDate")
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	if v := values.Get("minAmount"); v != "" {
		n, err := parseAmount(v, "minAmount")
		if err != nil {
			return f, err
		}
		f.MinAmount = &n
	}
	if v := values.Get("maxAmount"); v != "" {
		n, err := parseAmount(v, "maxAmount")
		if err != nil {
			return f, err
		}
		f.MaxAmount = &n
	}
	if v := values.Get("q"); v != "" {
		f.Search = &v
	}
	return f, nil
}

// ParseTaskFilter builds the task filter from raw query values.
func ParseTaskFilter(values url.Values) (model.TaskFilter, error) {
	var f model.TaskFilter

	if v := values.Get("status"); v != "" {
		switch v {
		case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted:
			f.Status = &v
		default:
			return f, validationErrorf("invalid status %q", v)
		}
	}
	if v := values.Get("priority"); v != "" {
		switch v {
		case model.TaskPriorityLow, model.TaskPriorityMedium, model.TaskPriorityHigh:
			f.Priority = &v
		default:
			return f, validationErrorf("invalid priority %q", v)
		}
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("startDue"); v != "" {
		t, err := parseDate(v, "startDue")
		if err != nil {
			return f, err
		}
		f.DueAfter = &t
	}
	if v := values.Get("endDue"); v != "" {
		t, err := parseDate(v, "endDue")
		if err != nil {
			return f, err
		}
		f.DueBefore = &t
	}
	if v := values.Get("q"); v != "" {
		f.Search = &v
	}
	return f, nil
}

// ParseAdminOwner reads the optional userId parameter of admin listings.
func ParseAdminOwner(values url.Values) (*int64, error) {
	raw := values.Get("userId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validationErrorf("invalid userId %q", raw)
	}
	return &id, nil
}

// RegularUsersOnly reports whether an admin listing is restricted to
// records owned by non-admin users.
func RegularUsersOnly(values url.Values) bool {
	return values.Get("regularUsersOnly") == "true"
}
