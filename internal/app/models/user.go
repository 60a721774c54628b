package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Ada Lovelace"`
	Email       string    `json:"email" db:"email" example:"ada@uni.edu"`
	Password    string    `json:"-" db:"password"`
	Role        RoleType  `json:"role" db:"role" example:"student"`
	Enrollments []int64   `json:"enrollments" db:"enrollments"` // course ids, set semantics
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
