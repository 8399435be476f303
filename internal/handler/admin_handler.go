package handler

import (
	"log"
	"net/http"

	"productivity_tracker/internal/query"
	"productivity_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the cross-user admin views
type AdminHandler struct {
	service service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		log.Printf("Error getting admin summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.service.Users(c.Request.Context())
	if err != nil {
		log.Printf("Error listing users for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetAllExpenses(c *gin.Context) {
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
	owner, err := query.ParseAdminOwner(values)
	if err != nil {
		badRequest(c, err)
		return
	}
	sort := query.ParseSort(values, query.ExpenseSortSpec)

	expenses, total, err := h.service.Expenses(c.Request.Context(), ident, filter, owner, query.RegularUsersOnly(values), page, sort)
	if err != nil {
		log.Printf("Error listing expenses for admin: %v", err)
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

func (h *AdminHandler) GetAllTasks(c *gin.Context) {
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
	filter, err := query.ParseTaskFilter(values)
	if err != nil {
		badRequest(c, err)
		return
	}
	owner, err := query.ParseAdminOwner(values)
	if err != nil {
		badRequest(c, err)
		return
	}
	sort := query.ParseSort(values, query.AdminTaskSortSpec)

	tasks, total, err := h.service.Tasks(c.Request.Context(), ident, filter, owner, query.RegularUsersOnly(values), page, sort)
	if err != nil {
		log.Printf("Error listing tasks for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"page":       page.Page,
		"totalPages": page.TotalPages(total),
		"total":      total,
	})
}

// RegisterAdminRoutes registers admin routes
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/summary", h.GetSummary)
		adminRoutes.GET("/users", h.GetUsers)
		adminRoutes.GET("/expenses", h.GetAllExpenses)
		adminRoutes.GET("/tasks", h.GetAllTasks)
	}
}
