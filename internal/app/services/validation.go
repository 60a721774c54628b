package services

import (
	"fmt"
	"strings"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	return nil
}

func validateBookingSlot(slot models.BookingSlot) error {
	for _, f := range []struct{ name, value string }{
		{"room", slot.Room},
		{"day", slot.Day},
		{"startTime", slot.StartTime},
		{"endTime", slot.EndTime},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func validateFaculty(f *models.Faculty) error {
	if err := requireText("name", f.Name); err != nil {
		return err
	}
	return requireText("departments", f.Departments)
}

func validateCourse(c *models.Course) error {
	if err := requireText("name", c.Name); err != nil {
		return err
	}
	if err := requireText("code", c.Code); err != nil {
		return err
	}
	if err := requireText("description", c.Description); err != nil {
		return err
	}
	if c.Credits < 0 {
		return apperrors.NewValidationError("credits cannot be negative")
	}
	return nil
}

func validateTimetable(t *models.Timetable) error {
	if err := requireText("name", t.Name); err != nil {
		return err
	}
	if t.FacultyID <= 0 {
		return apperrors.NewValidationError("facultyId is required")
	}
	if t.AcademicYear <= 0 {
		return apperrors.NewValidationError("academicYear must be positive")
	}
	if t.Semester <= 0 {
		return apperrors.NewValidationError("semester must be positive")
	}
	return nil
}

func validateSession(s *models.Session) error {
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	if s.CourseID <= 0 {
		return apperrors.NewValidationError("courseId is required")
	}
	if s.BookingID <= 0 {
		return apperrors.NewValidationError("bookingId is required")
	}
	if s.FacultyID <= 0 {
		return apperrors.NewValidationError("session faculty is required")
	}
	return nil
}
