package models

import "time"

// Session is a scheduled class instance tied to a course, a booking and a faculty.
type Session struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Lecture 01"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Coordinator *string   `json:"coordinator,omitempty" db:"coordinator"`
	BookingID   int64     `json:"bookingId" db:"booking_id"`
	FacultyID   int64     `json:"facultyId" db:"faculty_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
