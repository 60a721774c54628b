package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestMyTimetables(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	taken := f.course(t, "SE1", &faculty.ID)
	other := f.course(t, "SE2", &faculty.ID)
	booking := f.booking(t, "R1")
	timetable, err := f.svc.Timetables.CreateTimetable(f.ctx, &dto.CreateTimetableRequest{
		Name: "Y1S1", FacultyID: faculty.ID, AcademicYear: ptr(1), Semester: ptr(1),
	})
	require.NoError(t, err)
	_, err = f.svc.Timetables.CreateTimetable(f.ctx, &dto.CreateTimetableRequest{
		Name: "Y2S1", FacultyID: faculty.ID, AcademicYear: ptr(2), Semester: ptr(1),
	})
	require.NoError(t, err)

	_, err = f.svc.Sessions.AttachToTimetable(f.ctx, timetable.ID, &dto.AttachSessionRequest{
		Name: "L1", CourseID: taken.ID, BookingID: booking.ID,
	})
	require.NoError(t, err)
	_, err = f.svc.Sessions.AttachToTimetable(f.ctx, timetable.ID, &dto.AttachSessionRequest{
		Name: "L2", CourseID: other.ID, BookingID: booking.ID,
	})
	require.NoError(t, err)

	student := f.user(t, "s@uni.edu")
	_, err = f.svc.Enrollments.Enroll(f.ctx, student.ID, taken.ID)
	require.NoError(t, err)

	resp, err := f.svc.Timetables.GetMyTimetables(f.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, resp.Timetables, 1)
	assert.Equal(t, taken.Name, resp.Timetables[0].Course)
	assert.Equal(t, timetable.ID, resp.Timetables[0].Timetable.ID)
	assert.Len(t, resp.Timetables[0].Timetable.Sessions, 2)

	lonely := f.user(t, "l@uni.edu")
	resp, err = f.svc.Timetables.GetMyTimetables(f.ctx, lonely.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Timetables)
}

func TestExportTimetableCSV(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "SE1", &faculty.ID)
	booking := f.booking(t, "R1")
	timetable, err := f.svc.Timetables.CreateTimetable(f.ctx, &dto.CreateTimetableRequest{
		Name: "Y1S1", FacultyID: faculty.ID, AcademicYear: ptr(1), Semester: ptr(1),
	})
	require.NoError(t, err)
	_, err = f.svc.Sessions.AttachToTimetable(f.ctx, timetable.ID, &dto.AttachSessionRequest{
		Name: "Lecture", CourseID: course.ID, BookingID: booking.ID, Coordinator: ptr("Dr. Silva"),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Timetables.ExportTimetableCSV(f.ctx, timetable.ID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "session,course_code,coordinator,room,day,start_time,end_time", lines[0])
	assert.Equal(t, "Lecture,SE1,Dr. Silva,R1,Mon,09:00,10:00", lines[1])

	err = f.svc.Timetables.ExportTimetableCSV(f.ctx, 999, &buf)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Timetable not found")
}
