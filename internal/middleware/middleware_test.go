package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func protectedRouter(guard func(m *AuthMiddleware) gin.HandlerFunc) *gin.Engine {
	m := NewAuthMiddleware(stubAuthenticator{
		"admin":   {ID: 1, Role: models.RoleAdmin},
		"faculty": {ID: 2, Role: models.RoleFaculty},
		"student": {ID: 3, Role: models.RoleStudent},
	})
	r := gin.New()
	r.GET("/x", m.Protect(), guard(m), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func TestProtectTokenSources(t *testing.T) {
	r := protectedRouter((*AuthMiddleware).AnyRole)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token", decodeError(t, w).Message)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, invalid token", decodeError(t, w).Message)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "student"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer faculty")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name    string
		guard   func(m *AuthMiddleware) gin.HandlerFunc
		allowed []string
		message string
	}{
		{"admin", (*AuthMiddleware).Admin, []string{"admin"}, "Not authorized as an admin"},
		{"admin or faculty", (*AuthMiddleware).AdminOrFaculty, []string{"admin", "faculty"}, "Not authorized as an admin or faculty"},
		{"student", (*AuthMiddleware).Student, []string{"student"}, "Not authorized as a student"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(tt.guard)
			for _, token := range []string{"admin", "faculty", "student"} {
				req := httptest.NewRequest(http.MethodGet, "/x", nil)
				req.Header.Set("Authorization", "Bearer "+token)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if contains(tt.allowed, token) {
					assert.Equal(t, http.StatusOK, w.Code, token)
					continue
				}
				assert.Equal(t, http.StatusForbidden, w.Code, token)
				assert.Equal(t, tt.message, decodeError(t, w).Message)
			}
		})
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.NewConflictError("This room is already booked"), http.StatusBadRequest, "This room is already booked"},
		{apperrors.NewValidationError("name is required"), http.StatusBadRequest, "name is required"},
		{apperrors.NewResourceNotFoundError("Booking not found"), http.StatusNotFound, "Booking not found"},
		{apperrors.NewForbiddenError("Please enroll to view the sessions"), http.StatusForbidden, "Please enroll to view the sessions"},
		{fmt.Errorf("wrapped: %w", apperrors.NewUnauthorizedError("Invalid email or password")), http.StatusUnauthorized, "Invalid email or password"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.Equal(t, tt.message, decodeError(t, w).Message)
	}
}

func TestBindJSONReportsFieldNames(t *testing.T) {
	r := gin.New()
	r.POST("/bookings", func(c *gin.Context) {
		var req dto.CreateBookingRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"room":"R1","day":"Mon","endTime":"10:00"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "startTime is required", resp.Message)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "startTime", resp.Details[0].Field)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed JSON body", decodeError(t, w).Message)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), Recovery())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
