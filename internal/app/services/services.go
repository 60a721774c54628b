package services

import (
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/auth"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// Services is a container for every service the controllers depend on
type Services struct {
	Auth           *AuthService
	Faculties      FacultyService
	Courses        CourseService
	Sessions       SessionService
	Bookings       BookingService
	Timetables     TimetableService
	Enrollments    EnrollmentService
	Reconciliation *ReconciliationService
}

// NewServices wires every service onto repos.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		Auth:           NewAuthService(repos.Users, jwtService, logger.WithComponent("auth")),
		Faculties:      NewFacultyService(repos.Faculties),
		Courses:        NewCourseService(repos.Courses, repos.Faculties),
		Sessions:       NewSessionService(repos.Sessions, repos.Tx),
		Bookings:       NewBookingService(repos.Bookings),
		Timetables:     NewTimetableService(repos),
		Enrollments:    NewEnrollmentService(repos),
		Reconciliation: NewReconciliationService(repos.Tx),
	}
}
