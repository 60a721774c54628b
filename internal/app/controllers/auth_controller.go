// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

// AuthController handles user accounts and the session cookie
type AuthController struct {
	authService  *services.AuthService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, secureCookie bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(auth.CookieName, token, maxAge, "/", "", c.secureCookie, true)
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student account and sets the jwt cookie.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or user already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Debug().Msg("Invalid registration request payload")
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, resp.Token, c.authService.TokenTTL())
	ctx.JSON(http.StatusCreated, resp)
}

// Login handles user login
// @Summary Log in
// @Description Checks the credentials and sets the jwt cookie.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, resp.Token, c.authService.TokenTTL())
	ctx.JSON(http.StatusOK, resp)
}

// Logout clears the jwt cookie
// @Summary Log out
// @Tags users
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /users/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// GetProfile returns the authenticated user
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {object} models.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	user, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateRole changes a user's role
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not authorized as an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/role [put]
func (c *AuthController) UpdateRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.UpdateRole(ctx.Request.Context(), id, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}
