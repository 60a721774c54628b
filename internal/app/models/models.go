package models

// RoleType is the role string carried by a user and its token.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleFaculty RoleType = "faculty"
	RoleStudent RoleType = "student"
)

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}
