package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marioapg/cipher-test/internal/apperrors"
	"github.com/marioapg/cipher-test/internal/dto"
	"github.com/marioapg/cipher-test/internal/middleware"
)

const (
	msgValidationFailed = "The given data was invalid."
	msgDuplicatePrice   = "A price for this currency already exists for the product."
	msgInternal         = "Internal server error"
)

// respondError writes the status and body matching err. notFoundMsg is used when err
// wraps apperrors.ErrNotFound.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:  msgValidationFailed,
			Errors: vErr.Fields,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(notFoundMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate price rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgDuplicatePrice})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgInternal})
	}
}

// parseIDParam reads a positive integer path parameter, answering 400 when it is not one.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + ": " + raw})
		return 0, false
	}
	return id, true
}
