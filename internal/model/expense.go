package model

import "time"

const (
	ExpenseTypeIncome  = "income"
	ExpenseTypeExpense = "expense"
)

// Expense represents a single income or expense record owned by a user.
type Expense struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"` // "income" or "expense"
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
	Date          time.Time `json:"date"`
	Description   *string   `json:"description,omitempty"` // Pointer for optional field
	UserID        int64     `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AdminExpense is an expense row joined with its owner for admin listings.
type AdminExpense struct {
	Expense
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// CreateExpenseRequest is used for creating a new expense
type CreateExpenseRequest struct {
	Title         string    `json:"title" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Type          string    `json:"type" binding:"required,oneof=income expense"`
	Category      string    `json:"category" binding:"required"`
	PaymentMethod string    `json:"paymentMethod" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Description   *string   `json:"description"`
}

type UpdateExpenseRequest struct {
	Title         *string    `json:"title,omitempty"`
	Amount        *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"` // Pointers to allow partial updates
	Type          *string    `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	Category      *string    `json:"category,omitempty"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Description   *string    `json:"description,omitempty"`
}

// ExpenseFilter contains the visibility constraint plus optional filter
// parameters for expense queries. Nil fields are not applied.
type ExpenseFilter struct {
	OwnerID       *int64
	OwnerIn       []int64 // nil = unconstrained, non-nil = inclusion set
	Type          *string
	Category      *string
	PaymentMethod *string
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *float64
	MaxAmount     *float64
	Search        *string
}

// FinancialSummary aggregates expense records into income/expense totals.
type FinancialSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`
}

// CategoryTotal is a grouped sum of amount per distinct category value.
type CategoryTotal struct {
	Category string
	Total    float64
}
