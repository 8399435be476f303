// Package query turns loosely-typed request parameters into validated,
// typed filter criteria, pagination and sort specs, and narrows them to
// what the calling identity is allowed to see.
package query

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ValidationError marks a request parameter the caller got wrong; handlers
// map it to a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Pagination is a normalized page/limit pair. Both are guaranteed >= 1.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a result set of the given size.
func (p Pagination) TotalPages(total int64) int64 {
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

// Sort is a whitelisted sort field plus direction.
type Sort struct {
	Field string
	Order string
}

// SortSpec describes the sortable surface of an entity: the allowed fields,
// the fallback field for unknown values, and the endpoint's default order.
type SortSpec struct {
	Allowed      []string
	DefaultField string
	DefaultOrder string
}

// ParsePagination reads page/limit from raw query values. Missing values
// default to page 1, limit 10. Non-numeric or sub-1 values are rejected
// rather than silently coerced.
func ParsePagination(values url.Values) (Pagination, error) {
	p := Pagination{Page: defaultPage, Limit: defaultLimit}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pagination{}, validationErrorf("invalid page value %q", raw)
		}
		if n < 1 {
			return Pagination{}, validationErrorf("page must be >= 1")
		}
		p.Page = n
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Pagination{}, validationErrorf("invalid limit value %q", raw)
		}
		if n < 1 {
			return Pagination{}, validationErrorf("limit must be >= 1")
		}
		p.Limit = n
	}
	return p, nil
}

// ParseSort reads sort/order from raw query values against a spec. A sort
// value outside the whitelist falls back to the spec's default field; an
// order other than asc/desc falls back to the spec's default order.
func ParseSort(values url.Values, spec SortSpec) Sort {
	s := Sort{Field: spec.DefaultField, Order: spec.DefaultOrder}

	if raw := values.Get("sort"); raw != "" {
		for _, allowed := range spec.Allowed {
			if raw == allowed {
				s.Field = raw
				break
			}
		}
	}
	switch values.Get("order") {
	case OrderAsc:
		s.Order = OrderAsc
	case OrderDesc:
		s.Order = OrderDesc
	}
	return s
}
