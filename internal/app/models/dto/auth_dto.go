package dto

import "github.com/yigit/unischedule/internal/app/models"

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ada Lovelace"`
	Email    string `json:"email" binding:"required,email" example:"ada@uni.edu"`
	Password string `json:"password" binding:"required,min=8" example:"correct-horse"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@uni.edu"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role models.RoleType `json:"role" binding:"required,oneof=admin faculty student" example:"faculty"`
}

// AuthResponse is returned after register and login. The token is also set
// as the jwt cookie.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
