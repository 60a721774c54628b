package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/helpers"
)

// parseIDParam reads a positive numeric path parameter. On failure it answers
// 400 "Invalid <entity> ID".
func parseIDParam(ctx *gin.Context, param, entity string) (int64, bool) {
	id, ok := helpers.ParseID(ctx.Param(param))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid " + entity + " ID",
			Code:    dto.ErrorCodeValidationFailed,
		})
		return 0, false
	}
	return id, true
}
