package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hanamura/taskdesk/internal/dto"
	apierrors "github.com/hanamura/taskdesk/internal/errors"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/services"
	"github.com/hanamura/taskdesk/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the current user's tasks, filtered by query parameters.
// Results are ordered by due date ascending with undated tasks last.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.ListTasksInput{
		Search: c.Query("q"),
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if status != models.TaskStatusOpen && status != models.TaskStatusDone {
			apierrors.ValidationFailed(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		input.Category = &raw
	}
	if raw := c.Query("priority"); raw != "" {
		input.Priority = &raw
	}
	if raw := c.Query("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.ValidationFailed(c, "Invalid due_before timestamp")
			return
		}
		input.DueBefore = &t
	}
	if raw := c.Query("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.ValidationFailed(c, "Invalid due_after timestamp")
			return
		}
		input.DueAfter = &t
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(userID, input)
	if err != nil {
		apierrors.ConnectionFailed(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns one of the user's tasks by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.ValidationFailed(c, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Name     string     `json:"name" binding:"required"`
		DueDate  *time.Time `json:"due_date"`
		Priority string     `json:"priority"`
		Category string     `json:"category"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:   userID,
		Name:     req.Name,
		DueDate:  req.DueDate,
		Priority: req.Priority,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskNameRequired) {
			apierrors.ValidationFailed(c, err.Error())
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to one of the user's tasks
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.ValidationFailed(c, "Invalid task id")
		return
	}

	type UpdateTaskRequest struct {
		Name         *string            `json:"name"`
		DueDate      *time.Time         `json:"due_date"`
		ClearDueDate bool               `json:"clear_due_date"`
		Priority     *string            `json:"priority"`
		Category     *string            `json:"category"`
		Status       *models.TaskStatus `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	if req.Status != nil && *req.Status != models.TaskStatusOpen && *req.Status != models.TaskStatusDone {
		apierrors.ValidationFailed(c, "Status must be open or done")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, userID, services.UpdateTaskInput{
		Name:         req.Name,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Priority:     req.Priority,
		Category:     req.Category,
		Status:       req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskNameRequired):
			apierrors.ValidationFailed(c, err.Error())
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft-deletes one of the user's tasks; repeat deletes are no-ops
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.ValidationFailed(c, "Invalid task id")
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStats returns open/done/overdue task counts
func (h *TaskHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.taskService.GetStats(userID)
	if err != nil {
		apierrors.ConnectionFailed(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportTasks streams the user's tasks as a CSV attachment
func (h *TaskHandler) ExportTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tasks.csv"`)

	if err := h.taskService.ExportTasks(c.Writer, userID); err != nil {
		apierrors.ConnectionFailed(c, "Failed to export tasks")
		return
	}
}

// ImportTasks creates tasks from a CSV request body
func (h *TaskHandler) ImportTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	imported, err := h.taskService.ImportTasks(c.Request.Body, userID)
	if err != nil {
		apierrors.ValidationFailed(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
