package models

import "time"

// Course is offered by an optional faculty. Enrollments holds user ids with
// set semantics; Sessions holds session ids in attachment order.
type Course struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Distributed Systems"`
	Code        string    `json:"code" db:"code" example:"SE3040"`
	Description string    `json:"description" db:"description"`
	Credits     int       `json:"credits" db:"credits" example:"4"`
	FacultyID   *int64    `json:"facultyId,omitempty" db:"faculty_id"`
	Enrollments []int64   `json:"enrollments" db:"enrollments"`
	Sessions    []int64   `json:"sessions" db:"sessions"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
