package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Input validation
	ErrCodeValidation = "VALIDATION_ERROR"

	// Resources. Ownership mismatches surface as NOT_FOUND so callers
	// cannot probe for other users' records.
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"

	// Store availability
	ErrCodeConnection    = "CONNECTION_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the standardized error payload returned by every handler.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// ValidationFailed sends a 400 response
func ValidationFailed(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeValidation, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// ConstraintViolation sends a 409 response naming the violated constraint
func ConstraintViolation(c *gin.Context, message string) {
	if message == "" {
		message = "Constraint violation"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConstraintViolation, message))
}

// ConnectionFailed sends a 503 response. Interactive callers see the
// failure immediately; only the tracker retries, on its own schedule.
func ConnectionFailed(c *gin.Context, message string) {
	if message == "" {
		message = "Data store unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeConnection, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
