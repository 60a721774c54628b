package models

import "time"

// Faculty groups courses, timetables and sessions by reference.
type Faculty struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Faculty of Computing"`
	Departments string    `json:"departments" db:"departments" example:"Software Engineering, Data Science"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
