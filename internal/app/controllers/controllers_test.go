package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/repositories/memory"
	"github.com/yigit/unischedule/internal/bootstrap"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

const (
	adminEmail    = "admin@uni.edu"
	adminPassword = "admin-password"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "unischedule-test"
	cfg.Seed.AdminName = "Admin"
	cfg.Seed.AdminEmail = adminEmail
	cfg.Seed.AdminPassword = adminPassword

	deps, err := bootstrap.BuildDependencies(cfg, memory.NewRepositories(), zerolog.Nop())
	require.NoError(t, err)

	return &testAPI{t: t, router: bootstrap.SetupRouter(cfg, deps, zerolog.Nop())}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/users/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode(a.t, w)["token"].(string)
}

// register creates a student and returns its id and token.
func (a *testAPI) register(name, email string) (int64, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/users/register", "", gin.H{"name": name, "email": email, "password": "password123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(a.t, w)
	user := body["user"].(map[string]any)
	return int64(user["id"].(float64)), body["token"].(string)
}

func (a *testAPI) create(path, token string, body any) map[string]any {
	a.t.Helper()
	w := a.do(http.MethodPost, path, token, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(a.t, w)
}

func idOf(m map[string]any) int64 {
	return int64(m["id"].(float64))
}

func TestBookingConflictScenario(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	slot := gin.H{"room": "R1", "day": "Mon", "startTime": "09:00", "endTime": "10:00"}
	first := api.create("/api/bookings", admin, slot)

	w := api.do(http.MethodPost, "/api/bookings", admin, slot)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This room is already booked", decode(t, w)["message"])

	w = api.do(http.MethodPut, fmt.Sprintf("/api/bookings/%d", idOf(first)), admin, gin.H{"endTime": "10:30"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "R1", updated["room"])
	assert.Equal(t, "Mon", updated["day"])
	assert.Equal(t, "09:00", updated["startTime"])
	assert.Equal(t, "10:30", updated["endTime"])

	// The freed 09:00-10:00 tuple can be booked again
	api.create("/api/bookings", admin, slot)
}

func TestBookingRequestValidation(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	w := api.do(http.MethodPost, "/api/bookings", admin, gin.H{"room": "R1", "day": "Mon", "endTime": "10:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startTime is required", decode(t, w)["message"])

	w = api.do(http.MethodGet, "/api/bookings/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid booking ID", decode(t, w)["message"])

	w = api.do(http.MethodGet, "/api/bookings/99", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Booking not found", decode(t, w)["message"])
}

func TestEnrollmentScenario(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	u1ID, u1 := api.register("Student One", "one@uni.edu")
	_, u2 := api.register("Student Two", "two@uni.edu")

	faculty := api.create("/api/faculties", admin, gin.H{"name": "Computing", "departments": "SE"})
	course := api.create("/api/courses", admin, gin.H{
		"name": "Distributed Systems", "code": "SE3040", "description": "DS", "credits": 4, "facultyId": idOf(faculty),
	})
	booking := api.create("/api/bookings", admin, gin.H{"room": "R1", "day": "Mon", "startTime": "09:00", "endTime": "10:00"})
	session := api.create(fmt.Sprintf("/api/courses/%d/sessions", idOf(course)), admin, gin.H{
		"name": "Lecture", "bookingId": idOf(booking), "coordinator": "Dr. Silva",
	})
	assert.Equal(t, float64(idOf(faculty)), session["facultyId"])

	w := api.do(http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", idOf(course)), u1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	enrolled := decode(t, w)
	assert.Equal(t, "Enrolled successfully", enrolled["message"])
	assert.Equal(t, float64(u1ID), enrolled["enrollment"].(map[string]any)["userId"])

	w = api.do(http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", idOf(course)), u1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already enrolled in this course", decode(t, w)["message"])

	w = api.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/sessions", idOf(course)), u1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sessions := decode(t, w)["sessions"].([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Lecture", sessions[0].(map[string]any)["name"])

	w = api.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/sessions", idOf(course)), u2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Please enroll to view the sessions", decode(t, w)["message"])

	w = api.do(http.MethodGet, fmt.Sprintf("/api/courses/%d", idOf(course)), u2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{float64(u1ID)}, decode(t, w)["enrollments"])

	w = api.do(http.MethodGet, "/api/users/profile", u1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{float64(idOf(course))}, decode(t, w)["enrollments"])

	// Staff only
	w = api.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/enrollments", idOf(course)), u1, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized as an admin or faculty", decode(t, w)["message"])

	w = api.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/enrollments", idOf(course)), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["enrollments"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "one@uni.edu", list[0].(map[string]any)["user"].(map[string]any)["email"])
}

func TestDeleteConfirmations(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	booking := api.create("/api/bookings", admin, gin.H{"room": "R1", "day": "Mon", "startTime": "09:00", "endTime": "10:00"})

	for _, tc := range []struct {
		path string
		want string
	}{
		{fmt.Sprintf("/api/bookings/%d", idOf(booking)), "Booking has been deleted..."},
		{"/api/bookings/404", "Booking has been deleted..."},
		{"/api/courses/404", "Course has been deleted..."},
		{"/api/faculties/404", "Faculty has been deleted..."},
		{"/api/timetables/404", "Timetable has been deleted..."},
	} {
		w := api.do(http.MethodDelete, tc.path, admin, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.path)
		var msg string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg), tc.path)
		assert.Equal(t, tc.want, msg)
	}

	w := api.do(http.MethodDelete, "/api/sessions/404", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", decode(t, w)["message"])
}

func TestTimetableAttachAndExport(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	faculty := api.create("/api/faculties", admin, gin.H{"name": "Computing", "departments": "SE"})
	course := api.create("/api/courses", admin, gin.H{
		"name": "Databases", "code": "SE2010", "description": "DB", "credits": 3, "facultyId": idOf(faculty),
	})
	booking := api.create("/api/bookings", admin, gin.H{"room": "B201", "day": "Tue", "startTime": "13:00", "endTime": "15:00"})
	timetable := api.create("/api/timetables", admin, gin.H{
		"name": "Y2S1", "facultyId": idOf(faculty), "academicYear": 2, "semester": 1,
	})

	path := fmt.Sprintf("/api/timetables/%d", idOf(timetable))
	api.create(path+"/sessions", admin, gin.H{
		"name": "Lab", "courseId": idOf(course), "bookingId": idOf(booking), "coordinator": "Dr. Perera",
	})

	w := api.do(http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode(t, w)["sessions"].([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Lab", sessions[0].(map[string]any)["name"])

	w = api.do(http.MethodGet, path+"/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "session,course_code,coordinator,room,day,start_time,end_time", lines[0])
	assert.Equal(t, "Lab,SE2010,Dr. Perera,B201,Tue,13:00,15:00", lines[1])

	w = api.do(http.MethodPost, "/api/timetables/404/sessions", admin, gin.H{"name": "Lab", "bookingId": idOf(booking)})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Timetable not found", decode(t, w)["message"])
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token", decode(t, w)["message"])

	w = api.do(http.MethodGet, "/api/bookings", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, invalid token", decode(t, w)["message"])

	w = api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": adminEmail, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])

	api.register("Student", "student@uni.edu")
	w = api.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Again", "email": "student@uni.edu", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["message"])

	// Cookie issued by login authenticates follow-up requests
	w = api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "student@uni.edu", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)
	assert.Equal(t, "student@uni.edu", profile["email"])
	assert.Equal(t, "student", profile["role"])
	assert.NotContains(t, profile, "password")

	// Students cannot write bookings
	req = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"room":"R1","day":"Mon","startTime":"09:00","endTime":"10:00"}`))
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/api/users/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decode(t, w)["message"])
}

func TestPromoteToFaculty(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	id, student := api.register("Lecturer", "lecturer@uni.edu")

	w := api.do(http.MethodPut, fmt.Sprintf("/api/users/%d/role", id), student, gin.H{"role": "faculty"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized as an admin", decode(t, w)["message"])

	w = api.do(http.MethodPut, fmt.Sprintf("/api/users/%d/role", id), admin, gin.H{"role": "faculty"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "faculty", decode(t, w)["role"])

	// The role is read from storage on every request, so the old token now passes
	w = api.do(http.MethodPost, "/api/bookings", student, gin.H{"room": "L1", "day": "Fri", "startTime": "08:00", "endTime": "09:00"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestOperationalRoutes(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is ready", w.Body.String())

	w = api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unischedule_http_requests_total")
}
