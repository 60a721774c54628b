package models

import "time"

// Timetable is a named, ordered collection of sessions for a faculty and term.
type Timetable struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Y3S1 Weekday"`
	FacultyID    int64     `json:"facultyId" db:"faculty_id"`
	Department   *string   `json:"department,omitempty" db:"department"`
	AcademicYear int       `json:"academicYear" db:"academic_year" example:"3"`
	Semester     int       `json:"semester" db:"semester" example:"1"`
	Mode         *string   `json:"mode,omitempty" db:"mode" example:"weekday"`
	Sessions     []int64   `json:"sessions" db:"sessions"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
