package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/dto"
	apierrors "github.com/hanamura/taskdesk/internal/errors"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/services"
	"github.com/hanamura/taskdesk/internal/tracker"
)

type AuthHandler struct {
	authService *services.AuthService
	trackers    *tracker.Manager
}

func NewAuthHandler(authService *services.AuthService, trackers *tracker.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		trackers:    trackers,
	}
}

// Signup registers a new user account
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email"`
		Name     string `json:"name"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.ConstraintViolation(c, "Username already exists")
		case errors.Is(err, services.ErrInvalidUsername),
			errors.Is(err, services.ErrInvalidPassword),
			errors.Is(err, services.ErrInvalidEmail):
			apierrors.ValidationFailed(c, err.Error())
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates the user, opens a session, and starts the user's
// due-task tracker.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid username or password")
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to create session")
		return
	}

	h.trackers.Start(user.ID)

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout ends the session and stops the tracker.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if userID, ok := session.Get(constants.ContextKeyUserID).(uint64); ok {
		h.authService.Logout(userID)
	}
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	h.trackers.Stop()

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetCurrentUser returns the authenticated user's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile changes the user's name, username, and email
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Name     string `json:"name"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.ConstraintViolation(c, "Username already exists")
		case errors.Is(err, services.ErrInvalidUsername), errors.Is(err, services.ErrInvalidEmail):
			apierrors.ValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ChangePassword replaces the user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "")
		return
	}

	err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			apierrors.ValidationFailed(c, "Current password is incorrect")
		case errors.Is(err, services.ErrInvalidPassword):
			apierrors.ValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		default:
			apierrors.ConnectionFailed(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
