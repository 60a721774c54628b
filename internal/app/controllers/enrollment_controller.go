package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// EnrollmentController handles course enrollment
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Enroll enrolls the caller in a course
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.EnrollResponse
// @Failure 400 {object} dto.ErrorResponse "Already enrolled in this course"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnrollResponse{Message: "Enrolled successfully", Enrollment: enrollment})
}

// GetCourseSessions lists a course's sessions for an enrolled caller
// @Summary Sessions of an enrolled course
// @Tags enrollments
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.SessionListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Please enroll to view the sessions"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/sessions [get]
func (c *EnrollmentController) GetCourseSessions(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	sessions, err := c.enrollmentService.GetEnrolledCourseSessions(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionListResponse{Sessions: sessions})
}

// GetCourseEnrollments lists a course's enrollments
// @Summary List course enrollments
// @Tags enrollments
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.EnrollmentListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{id}/enrollments [get]
func (c *EnrollmentController) GetCourseEnrollments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetCourseEnrollments(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnrollmentListResponse{Enrollments: enrollments})
}

// UpdateEnrollment reassigns an enrollment to another user
// @Summary Update an enrollment
// @Description Enrollment sets on users and courses are not re-synced.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "New user"
// @Success 200 {object} dto.EnrollResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /courses/{id}/enrollments/{enrollmentId} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}
	enrollmentID, ok := parseIDParam(ctx, "enrollmentId", "enrollment")
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollment(ctx.Request.Context(), courseID, enrollmentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EnrollResponse{Message: "Enrollment updated successfully", Enrollment: enrollment})
}

// DeleteEnrollment removes an enrollment
// @Summary Delete an enrollment
// @Tags enrollments
// @Produce json
// @Security CookieAuth
// @Param id path int true "Course ID"
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/{id}/enrollments/{enrollmentId} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	if _, ok := parseIDParam(ctx, "id", "course"); !ok {
		return
	}
	enrollmentID, ok := parseIDParam(ctx, "enrollmentId", "enrollment")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx.Request.Context(), enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Enrollment deleted successfully"})
}
