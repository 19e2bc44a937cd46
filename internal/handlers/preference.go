package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/hanamura/taskdesk/internal/errors"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/services"
)

type PreferenceHandler struct {
	prefService *services.PreferenceService
}

func NewPreferenceHandler(prefService *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

// GetPreferences returns the user's preferences with defaults filled in
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	prefs, err := h.prefService.GetAll(userID)
	if err != nil {
		apierrors.ConnectionFailed(c, "Failed to fetch preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// PutPreference creates or overwrites one preference for the user
func (h *PreferenceHandler) PutPreference(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type PutPreferenceRequest struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value"`
	}

	var req PutPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	if err := h.prefService.Upsert(userID, req.Key, req.Value); err != nil {
		if errors.Is(err, services.ErrPreferenceKeyRequired) {
			apierrors.ValidationFailed(c, err.Error())
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
}
