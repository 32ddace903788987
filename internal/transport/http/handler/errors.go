package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidBody        = "Request body must be a JSON object"
	errMissingField       = "This field is required."
	errInvalidEmail       = "Enter a valid email address."
	errWeakPassword       = "Password does not meet the requirements."
	errDuplicateEmail     = "User with this email already exists."
	errInvalidCredentials = "Unable to log in with provided credentials."
	errNameTooLong        = "Ensure this field has no more than 255 characters."
	errInvalidDate        = "Date has wrong format. Use YYYY-MM-DD."
	errInvalidDateRange   = "due_date_from must not be after due_date_to."
	errTaskNotFound       = "Task not found"
	errUnauthorized       = "Unauthorized"
)

type violationResponse struct {
	Code    domain.Violation `json:"code"`
	Message string           `json:"message"`
}

// respondError maps a usecase error onto a status code and body. Anything
// unrecognised is logged and reported as a 500 without detail.
func respondError(ctx *gin.Context, logger *slog.Logger, op string, err error) {
	var missing *domain.MissingFieldError
	var weak *domain.WeakPasswordError

	switch {
	case errors.As(err, &missing):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errMissingField, "field": missing.Field})
	case errors.As(err, &weak):
		violations := make([]violationResponse, len(weak.Violations))
		for i, v := range weak.Violations {
			violations[i] = violationResponse{Code: v, Message: v.Message()}
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errWeakPassword, "field": "password", "violations": violations})
	case errors.Is(err, domain.ErrInvalidEmail):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidEmail, "field": "email"})
	case errors.Is(err, domain.ErrDuplicateEmail):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmail, "field": "email"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
	case errors.Is(err, domain.ErrNameTooLong):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errNameTooLong, "field": "name"})
	case errors.Is(err, domain.ErrInvalidDateRange):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDateRange})
	case errors.Is(err, domain.ErrTaskNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
	case errors.Is(err, domain.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
	default:
		logger.ErrorContext(ctx.Request.Context(), op, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
