package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestFacultyCRUD(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)

	updated, err := f.svc.Faculties.UpdateFaculty(f.ctx, faculty.ID, &dto.UpdateFacultyRequest{Name: ptr("Faculty of Engineering")})
	require.NoError(t, err)
	assert.Equal(t, "Faculty of Engineering", updated.Name)
	assert.Equal(t, "Software Engineering", updated.Departments)

	_, err = f.svc.Faculties.UpdateFaculty(f.ctx, 999, &dto.UpdateFacultyRequest{Name: ptr("x")})
	requireKind(t, err, apperrors.ErrResourceNotFound, "Faculty not found")

	require.NoError(t, f.svc.Faculties.DeleteFaculty(f.ctx, faculty.ID))
	require.NoError(t, f.svc.Faculties.DeleteFaculty(f.ctx, faculty.ID))
}

func TestCourseCodeIsUnique(t *testing.T) {
	f := newFixture(t)
	f.course(t, "SE1", nil)

	_, err := f.svc.Courses.CreateCourse(f.ctx, &dto.CreateCourseRequest{
		Name: "Other", Code: "SE1", Description: "d", Credits: ptr(3),
	})
	requireKind(t, err, apperrors.ErrConflict, "Course code already exists")

	other := f.course(t, "SE2", nil)
	_, err = f.svc.Courses.UpdateCourse(f.ctx, other.ID, &dto.UpdateCourseRequest{Code: ptr("SE1")})
	requireKind(t, err, apperrors.ErrConflict, "Course code already exists")
}

func TestCourseRejectsUnknownFaculty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Courses.CreateCourse(f.ctx, &dto.CreateCourseRequest{
		Name: "C", Code: "C1", Description: "d", Credits: ptr(3), FacultyID: ptr(int64(42)),
	})
	requireKind(t, err, apperrors.ErrValidationFailed, "Faculty not found")
}

func TestUpdateCourseKeepsDerivedLists(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "SE1", &faculty.ID)
	student := f.user(t, "s@uni.edu")
	_, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)

	updated, err := f.svc.Courses.UpdateCourse(f.ctx, course.ID, &dto.UpdateCourseRequest{Credits: ptr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Credits)

	stored, err := f.svc.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{student.ID}, stored.Enrollments)
}

func TestTimetableCRUD(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)

	created, err := f.svc.Timetables.CreateTimetable(f.ctx, &dto.CreateTimetableRequest{
		Name: "Y1S1", FacultyID: faculty.ID, AcademicYear: ptr(1), Semester: ptr(1),
	})
	require.NoError(t, err)
	assert.Empty(t, created.Sessions)

	updated, err := f.svc.Timetables.UpdateTimetable(f.ctx, created.ID, &dto.UpdateTimetableRequest{Mode: ptr("weekend")})
	require.NoError(t, err)
	require.NotNil(t, updated.Mode)
	assert.Equal(t, "weekend", *updated.Mode)
	assert.Equal(t, "Y1S1", updated.Name)

	_, err = f.svc.Timetables.GetTimetableByID(f.ctx, 999)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Timetable not found")

	require.NoError(t, f.svc.Timetables.DeleteTimetable(f.ctx, created.ID))
	require.NoError(t, f.svc.Timetables.DeleteTimetable(f.ctx, created.ID))
}
