package handler

import (
	"errors"
	"log"
	"net/http"

	"productivity_tracker/internal/model"
	"productivity_tracker/internal/query"
	"productivity_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense related requests
type ExpenseHandler struct {
	service service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(s service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: s}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	var req model.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided."})
		return
	}

	expense, err := h.service.Create(c.Request.Context(), ident, req)
	if err != nil {
		log.Printf("Error creating expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	values := c.Request.URL.Query()
	page, err := query.ParsePagination(values)
	if err != nil {
		badRequest(c, err)
		return
	}
	filter, err := query.ParseExpenseFilter(values)
	if err != nil {
		badRequest(c, err)
		return
	}
	sort := query.ParseSort(values, query.ExpenseSortSpec)

	expenses, total, err := h.service.List(c.Request.Context(), ident, filter, page, sort)
	if err != nil {
		log.Printf("Error listing expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expenses":   expenses,
		"page":       page.Page,
		"totalPages": page.TotalPages(total),
		"total":      total,
	})
}

func (h *ExpenseHandler) GetExpenseSummary(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting expense summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "expense")
	if !ok {
		return
	}

	expense, err := h.service.Get(c.Request.Context(), ident, id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error getting expense by ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "expense")
	if !ok {
		return
	}

	var req model.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	expense, err := h.service.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error updating expense: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "expense")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), ident, id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error deleting expense: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// RegisterExpenseRoutes registers expense routes
func (h *ExpenseHandler) RegisterExpenseRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	expenseRoutes := rg.Group("/expenses")
	expenseRoutes.Use(authMW)
	{
		expenseRoutes.POST("", h.CreateExpense)
		expenseRoutes.GET("", h.ListExpenses)
		expenseRoutes.GET("/summary", h.GetExpenseSummary)
		expenseRoutes.GET("/:id", h.GetExpenseByID)
		expenseRoutes.PUT("/:id", h.UpdateExpense)
		expenseRoutes.DELETE("/:id", h.DeleteExpense)
	}
}
