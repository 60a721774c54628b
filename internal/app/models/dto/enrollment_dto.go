package dto

import "github.com/yigit/unischedule/internal/app/models"

// UpdateEnrollmentRequest reassigns an enrollment to another user.
type UpdateEnrollmentRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1" example:"2"`
}

// EnrolledUser is the public projection of a user inside an enrollment listing.
type EnrolledUser struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.RoleType `json:"role"`
}

// EnrollmentDetail is an enrollment with its user expanded. User is nil when
// the referenced user no longer exists.
type EnrollmentDetail struct {
	ID       int64         `json:"id"`
	CourseID int64         `json:"courseId"`
	User     *EnrolledUser `json:"user"`
}

// EnrollResponse is returned by a successful enroll or enrollment update.
type EnrollResponse struct {
	Message    string             `json:"message" example:"Enrolled successfully"`
	Enrollment *models.Enrollment `json:"enrollment"`
}

// EnrollmentListResponse lists a course's enrollments.
type EnrollmentListResponse struct {
	Enrollments []*EnrollmentDetail `json:"enrollments"`
}

// SessionListResponse lists the sessions of a course.
type SessionListResponse struct {
	Sessions []*models.Session `json:"sessions"`
}
