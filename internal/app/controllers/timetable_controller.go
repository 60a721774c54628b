package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// TimetableController handles timetables
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

// CreateTimetable creates an empty timetable
// @Summary Create a timetable
// @Tags timetables
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateTimetableRequest true "Timetable data"
// @Success 201 {object} dto.TimetableResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables [post]
func (c *TimetableController) CreateTimetable(ctx *gin.Context) {
	var req dto.CreateTimetableRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	timetable, err := c.timetableService.CreateTimetable(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, timetable)
}

// GetTimetableByID retrieves a timetable with its sessions
// @Summary Get a timetable
// @Tags timetables
// @Produce json
// @Security CookieAuth
// @Param id path int true "Timetable ID"
// @Success 200 {object} dto.TimetableResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid timetable ID"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Router /timetables/{id} [get]
func (c *TimetableController) GetTimetableByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "timetable")
	if !ok {
		return
	}

	timetable, err := c.timetableService.GetTimetableByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timetable)
}

// GetAllTimetables lists timetables
// @Summary List timetables
// @Tags timetables
// @Produce json
// @Security CookieAuth
// @Success 200 {array} dto.TimetableResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables [get]
func (c *TimetableController) GetAllTimetables(ctx *gin.Context) {
	timetables, err := c.timetableService.GetAllTimetables(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timetables)
}

// GetMyTimetables lists timetables teaching the caller's courses
// @Summary Timetables for my enrolled courses
// @Tags timetables
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.MyTimetablesResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables/my-timetables [get]
func (c *TimetableController) GetMyTimetables(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Message: "Not authorized, no token",
			Code:    dto.ErrorCodeUnauthorized,
		})
		return
	}

	resp, err := c.timetableService.GetMyTimetables(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ExportTimetable downloads a timetable as CSV
// @Summary Export a timetable as CSV
// @Tags timetables
// @Produce text/csv
// @Security CookieAuth
// @Param id path int true "Timetable ID"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Router /timetables/{id}/export [get]
func (c *TimetableController) ExportTimetable(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "timetable")
	if !ok {
		return
	}

	// Buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := c.timetableService.ExportTimetableCSV(ctx.Request.Context(), id, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="timetable-%d.csv"`, id))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// UpdateTimetable changes part of a timetable
// @Summary Update a timetable
// @Tags timetables
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Timetable ID"
// @Param request body dto.UpdateTimetableRequest true "Fields to change"
// @Success 200 {object} dto.TimetableResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables/{id} [put]
func (c *TimetableController) UpdateTimetable(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "timetable")
	if !ok {
		return
	}

	var req dto.UpdateTimetableRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	timetable, err := c.timetableService.UpdateTimetable(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timetable)
}

// DeleteTimetable deletes a timetable
// @Summary Delete a timetable
// @Tags timetables
// @Produce json
// @Security CookieAuth
// @Param id path int true "Timetable ID"
// @Success 200 {string} string "Timetable has been deleted..."
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables/{id} [delete]
func (c *TimetableController) DeleteTimetable(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "timetable")
	if !ok {
		return
	}

	if err := c.timetableService.DeleteTimetable(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "Timetable has been deleted...")
}
