package handler

import (
	"log"
	"net/http"

	"productivity_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the self-scoped dashboard requests
type DashboardHandler struct {
	service service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting dashboard summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetExpensesByCategory(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	data, err := h.service.ExpensesByCategory(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting expenses by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *DashboardHandler) GetTasksByStatus(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	data, err := h.service.TasksByStatus(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting tasks by status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *DashboardHandler) GetRecentActivity(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	activity, err := h.service.RecentActivity(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting recent activity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, activity)
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	dashboardRoutes := rg.Group("/dashboard")
	dashboardRoutes.Use(authMW)
	{
		dashboardRoutes.GET("/summary", h.GetSummary)
		dashboardRoutes.GET("/expenses-by-category", h.GetExpensesByCategory)
		dashboardRoutes.GET("/tasks-by-status", h.GetTasksByStatus)
		dashboardRoutes.GET("/recent-activity", h.GetRecentActivity)
	}
}
