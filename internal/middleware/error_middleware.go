package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

type errorMapping struct {
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first kind err wraps wins.
var errorMappings = []struct {
	kind error
	errorMapping
}{
	{apperrors.ErrValidationFailed, errorMapping{http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"}},
	{apperrors.ErrConflict, errorMapping{http.StatusBadRequest, dto.ErrorCodeConflict, "Resource already exists"}},
	{apperrors.ErrResourceNotFound, errorMapping{http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"}},
	{apperrors.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid email or password"}},
	{apperrors.ErrTokenExpired, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized, msgInvalidToken}},
	{apperrors.ErrTokenInvalid, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized, msgInvalidToken}},
	{apperrors.ErrUnauthorized, errorMapping{http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Not authorized"}},
	{apperrors.ErrPermissionDenied, errorMapping{http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"}},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Errors of unknown kind become a 500 whose cause is only logged.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.kind) {
			continue
		}
		resp := dto.ErrorResponse{Message: m.message, Code: m.code}
		if msg, ok := apperrors.PublicMessage(err); ok {
			resp.Message = msg
		}
		resp.Details = fieldErrors(err)
		c.AbortWithStatusJSON(m.status, resp)
		return
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "Internal server error",
		Code:    dto.ErrorCodeInternalServer,
	})
}

// fieldErrors turns CustomError details into a stable, field-sorted list.
func fieldErrors(err error) []dto.FieldError {
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || len(custom.Details) == 0 {
		return nil
	}
	out := make([]dto.FieldError, 0, len(custom.Details))
	for field, msg := range custom.Details {
		out = append(out, dto.FieldError{Field: field, Message: fmt.Sprint(msg)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
