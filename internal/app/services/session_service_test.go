package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestAttachToTimetableCopiesFaculty(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "SE1", nil)
	booking := f.booking(t, "R1")
	timetable, err := f.svc.Timetables.CreateTimetable(f.ctx, &dto.CreateTimetableRequest{
		Name: "Y1S1", FacultyID: faculty.ID, AcademicYear: ptr(1), Semester: ptr(1),
	})
	require.NoError(t, err)

	session, err := f.svc.Sessions.AttachToTimetable(f.ctx, timetable.ID, &dto.AttachSessionRequest{
		Name: "Lecture", CourseID: course.ID, BookingID: booking.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, faculty.ID, session.FacultyID)

	got, err := f.svc.Timetables.GetTimetableByID(f.ctx, timetable.ID)
	require.NoError(t, err)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, session.ID, got.Sessions[0].ID)
	assert.Equal(t, []int64{session.ID}, got.Timetable.Sessions)
}

func TestAttachToMissingOwner(t *testing.T) {
	f := newFixture(t)
	req := &dto.AttachSessionRequest{Name: "Lecture", CourseID: 1, BookingID: 1}

	_, err := f.svc.Sessions.AttachToTimetable(f.ctx, 404, req)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Timetable not found")

	_, err = f.svc.Sessions.AttachToCourse(f.ctx, 404, req)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Course not found")

	all, err := f.svc.Sessions.GetAllSessions(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAttachToCourse(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "SE1", &faculty.ID)
	booking := f.booking(t, "R1")

	first, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L1", BookingID: booking.ID})
	require.NoError(t, err)
	second, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L2", BookingID: booking.ID})
	require.NoError(t, err)

	assert.Equal(t, faculty.ID, first.FacultyID)
	assert.Equal(t, course.ID, first.CourseID)

	stored, err := f.svc.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID, second.ID}, stored.Sessions)
}

func TestAttachToCourseWithoutFacultyRollsBack(t *testing.T) {
	f := newFixture(t)
	course := f.course(t, "SE1", nil)
	booking := f.booking(t, "R1")

	_, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L1", BookingID: booking.ID})
	requireKind(t, err, apperrors.ErrValidationFailed, "session faculty is required")

	all, err := f.svc.Sessions.GetAllSessions(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	stored, err := f.svc.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Sessions)
}

func TestUpdateAndDeleteSession(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "SE1", &faculty.ID)
	booking := f.booking(t, "R1")
	session, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L1", BookingID: booking.ID})
	require.NoError(t, err)

	updated, err := f.svc.Sessions.UpdateSession(f.ctx, session.ID, &dto.UpdateSessionRequest{Coordinator: ptr("Dr. Silva")})
	require.NoError(t, err)
	assert.Equal(t, "L1", updated.Name)
	require.NotNil(t, updated.Coordinator)
	assert.Equal(t, "Dr. Silva", *updated.Coordinator)

	_, err = f.svc.Sessions.UpdateSession(f.ctx, 999, &dto.UpdateSessionRequest{Name: ptr("x")})
	requireKind(t, err, apperrors.ErrResourceNotFound, "Session not found")

	require.NoError(t, f.svc.Sessions.DeleteSession(f.ctx, session.ID))
	err = f.svc.Sessions.DeleteSession(f.ctx, session.ID)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Session not found")

	// The owner keeps the dangling id until reconciliation.
	stored, err := f.svc.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{session.ID}, stored.Sessions)
}
