package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/app/repositories/memory"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	ctx   context.Context
	repos *repositories.Repositories
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unischedule-test",
	})
	return &fixture{ctx: context.Background(), repos: repos, svc: NewServices(repos, jwtService)}
}

func (f *fixture) faculty(t *testing.T) *models.Faculty {
	t.Helper()
	faculty, err := f.svc.Faculties.CreateFaculty(f.ctx, &dto.CreateFacultyRequest{
		Name:        "Faculty of Computing",
		Departments: "Software Engineering",
	})
	require.NoError(t, err)
	return faculty
}

func (f *fixture) course(t *testing.T, code string, facultyID *int64) *models.Course {
	t.Helper()
	course, err := f.svc.Courses.CreateCourse(f.ctx, &dto.CreateCourseRequest{
		Name:        "Course " + code,
		Code:        code,
		Description: "desc",
		Credits:     ptr(4),
		FacultyID:   facultyID,
	})
	require.NoError(t, err)
	return course
}

func (f *fixture) booking(t *testing.T, room string) *models.Booking {
	t.Helper()
	booking, err := f.svc.Bookings.CreateBooking(f.ctx, &dto.CreateBookingRequest{
		Room: room, Day: "Mon", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	return booking
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Student", Email: email, Password: "x", Role: models.RoleStudent}
	require.NoError(t, f.repos.Users.CreateUser(f.ctx, user))
	return user
}

func requireKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	msg, ok := apperrors.PublicMessage(err)
	require.True(t, ok, "error should carry a public message: %v", err)
	require.Equal(t, message, msg)
}
