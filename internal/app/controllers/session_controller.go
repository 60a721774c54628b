package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// SessionController handles sessions and their attachment to owners
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// AttachToTimetable creates a session inside a timetable
// @Summary Add a session to a timetable
// @Description The session's faculty is always the timetable's faculty.
// @Tags timetables
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Timetable ID"
// @Param request body dto.AttachSessionRequest true "Session data"
// @Success 201 {object} models.Session
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /timetables/{id}/sessions [post]
func (c *SessionController) AttachToTimetable(ctx *gin.Context) {
	timetableID, ok := parseIDParam(ctx, "id", "timetable")
	if !ok {
		return
	}

	var req dto.AttachSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.AttachToTimetable(ctx.Request.Context(), timetableID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// AttachToCourse creates a session inside a course
// @Summary Add a session to a course
// @Description The session's faculty is always the course's faculty. Also served at POST /sessions/{id}.
// @Tags courses
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Param request body dto.AttachSessionRequest true "Session data"
// @Success 201 {object} models.Session
// @Failure 400 {object} dto.ErrorResponse "Invalid data or course without faculty"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{id}/sessions [post]
func (c *SessionController) AttachToCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	var req dto.AttachSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.AttachToCourse(ctx.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// GetSessionByID retrieves a session
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Security CookieAuth
// @Param id path int true "Session ID"
// @Success 200 {object} models.Session
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (c *SessionController) GetSessionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "session")
	if !ok {
		return
	}

	session, err := c.sessionService.GetSessionByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// GetAllSessions lists sessions
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Security CookieAuth
// @Success 200 {array} models.Session
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sessions [get]
func (c *SessionController) GetAllSessions(ctx *gin.Context) {
	sessions, err := c.sessionService.GetAllSessions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// UpdateSession changes part of a session
// @Summary Update a session
// @Description Owner session lists are not touched.
// @Tags sessions
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} models.Session
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /sessions/{id} [put]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "session")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.sessionService.UpdateSession(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// DeleteSession deletes a session
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Security CookieAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.MessageResponse "Session deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "session")
	if !ok {
		return
	}

	if err := c.sessionService.DeleteSession(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Session deleted"})
}
