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

// TaskHandler handles task related requests
type TaskHandler struct {
	service service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{service: s}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title, dueDate, and category are required."})
		return
	}

	task, err := h.service.Create(c.Request.Context(), ident, req)
	if err != nil {
		log.Printf("Error creating task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
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
	sort := query.ParseSort(values, query.TaskSortSpec)

	tasks, total, err := h.service.List(c.Request.Context(), ident, filter, page, sort)
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
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

func (h *TaskHandler) GetTaskSummary(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), ident)
	if err != nil {
		log.Printf("Error getting task summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     summary.Total,
		"completed": summary.Completed,
		"pending":   summary.Pending,
	})
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), ident, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error getting task by ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	task, err := h.service.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error updating task: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	ident, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "task")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), ident, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else {
			log.Printf("Error deleting task: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// RegisterTaskRoutes registers task routes
func (h *TaskHandler) RegisterTaskRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	taskRoutes := rg.Group("/tasks")
	taskRoutes.Use(authMW)
	{
		taskRoutes.POST("", h.CreateTask)
		taskRoutes.GET("", h.ListTasks)
		taskRoutes.GET("/summary", h.GetTaskSummary)
		taskRoutes.GET("/:id", h.GetTaskByID)
		taskRoutes.PUT("/:id", h.UpdateTask)
		taskRoutes.DELETE("/:id", h.DeleteTask)
	}
}
