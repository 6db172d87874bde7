package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors to client-facing statuses and messages.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var missingErr *apperrors.MissingFieldsError
	var dateErr *apperrors.DateParseError
	var parseErr *apperrors.ParseError

	switch {
	case errors.As(err, &appErr):
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Only CSV and JSON files are allowed."})
	case errors.Is(err, apperrors.ErrNoData):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No data found in uploaded file."})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: missingErr.Error()})
	case errors.As(err, &dateErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: dateErr.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to parse uploaded file."})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
