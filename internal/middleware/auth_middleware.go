package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/auth"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// Context keys set by Protect.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

const (
	msgNoToken      = "Not authorized, no token"
	msgInvalidToken = "Not authorized, invalid token"
)

// TokenAuthenticator resolves a raw token to the user it was issued for.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator TokenAuthenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// tokenFromRequest reads the jwt cookie, falling back to a bearer header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie
	}
	if token, ok := auth.ExtractBearerToken(c.GetHeader("Authorization")); ok {
		return token
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Message: message,
		Code:    dto.ErrorCodeUnauthorized,
	})
}

// Protect rejects requests without a valid token and stores the current
// user in the context. The role comes from storage, not from the token.
func (m *AuthMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abortUnauthorized(c, msgNoToken)
			return
		}

		user, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Token rejected")
			abortUnauthorized(c, msgInvalidToken)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// RequireRoles lets the request through only when the current user holds one
// of roles. Otherwise it answers 403 with message. Protect must run first.
func (m *AuthMiddleware) RequireRoles(message string, roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRoleKey)
		if !ok {
			abortUnauthorized(c, msgNoToken)
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
			Message: message,
			Code:    dto.ErrorCodeForbidden,
		})
	}
}

// Admin allows admins only.
func (m *AuthMiddleware) Admin() gin.HandlerFunc {
	return m.RequireRoles("Not authorized as an admin", models.RoleAdmin)
}

// AdminOrFaculty allows admins and faculty members.
func (m *AuthMiddleware) AdminOrFaculty() gin.HandlerFunc {
	return m.RequireRoles("Not authorized as an admin or faculty", models.RoleAdmin, models.RoleFaculty)
}

// AnyRole allows every known role.
func (m *AuthMiddleware) AnyRole() gin.HandlerFunc {
	return m.RequireRoles("Not authorized as an admin, faculty, or student",
		models.RoleAdmin, models.RoleFaculty, models.RoleStudent)
}

// Student allows students only.
func (m *AuthMiddleware) Student() gin.HandlerFunc {
	return m.RequireRoles("Not authorized as a student", models.RoleStudent)
}

// CurrentUser returns the user stored by Protect.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentUserID returns the id of the user stored by Protect.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
