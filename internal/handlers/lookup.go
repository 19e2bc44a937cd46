package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanamura/taskdesk/internal/dto"
	apierrors "github.com/hanamura/taskdesk/internal/errors"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/services"
)

// LookupHandler serves the per-user category and priority lists.
type LookupHandler struct {
	taskService *services.TaskService
}

func NewLookupHandler(taskService *services.TaskService) *LookupHandler {
	return &LookupHandler{taskService: taskService}
}

// ListCategories returns the user's categories
func (h *LookupHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	categories, err := h.taskService.ListCategories(userID)
	if err != nil {
		apierrors.ConnectionFailed(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryDTOs(categories)})
}

// CreateCategory adds a category for the user
func (h *LookupHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCategoryRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	category, err := h.taskService.AddCategory(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryExists):
			apierrors.ConstraintViolation(c, "Category already exists")
		case errors.Is(err, services.ErrCategoryNameRequired):
			apierrors.ValidationFailed(c, err.Error())
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryDTO{ID: category.ID, Name: category.Name})
}

// ListPriorities returns the user's priorities
func (h *LookupHandler) ListPriorities(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	priorities, err := h.taskService.ListPriorities(userID)
	if err != nil {
		apierrors.ConnectionFailed(c, "Failed to fetch priorities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"priorities": dto.ToPriorityDTOs(priorities)})
}

// CreatePriority adds a priority for the user
func (h *LookupHandler) CreatePriority(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreatePriorityRequest struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	var req CreatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	priority, err := h.taskService.AddPriority(userID, req.Name, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPriorityExists):
			apierrors.ConstraintViolation(c, "Priority already exists")
		case errors.Is(err, services.ErrPriorityNameRequired):
			apierrors.ValidationFailed(c, err.Error())
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PriorityDTO{ID: priority.ID, Name: priority.Name, Color: priority.Color})
}
