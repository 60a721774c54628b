package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestEnrollTwiceKeepsSetsUnique(t *testing.T) {
	f := newFixture(t)
	course := f.course(t, "SE1", nil)
	student := f.user(t, "u1@uni.edu")

	enrollment, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	_, err = f.svc.Enrollments.Enroll(f.ctx, student.ID, course.ID)
	requireKind(t, err, apperrors.ErrConflict, "Already enrolled in this course")

	storedCourse, err := f.repos.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{student.ID}, storedCourse.Enrollments)

	storedUser, err := f.repos.Users.GetUserByID(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{course.ID}, storedUser.Enrollments)
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, "u1@uni.edu")

	_, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, 404)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Course not found")

	storedUser, err := f.repos.Users.GetUserByID(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, storedUser.Enrollments)
}

func TestEnrolledCourseSessionsScenario(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "C1", &faculty.ID)
	booking := f.booking(t, "R1")
	session, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L1", BookingID: booking.ID})
	require.NoError(t, err)
	u1 := f.user(t, "u1@uni.edu")
	u2 := f.user(t, "u2@uni.edu")

	_, err = f.svc.Enrollments.Enroll(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)

	sessions, err := f.svc.Enrollments.GetEnrolledCourseSessions(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)

	_, err = f.svc.Enrollments.GetEnrolledCourseSessions(f.ctx, u2.ID, course.ID)
	requireKind(t, err, apperrors.ErrPermissionDenied, "Please enroll to view the sessions")

	_, err = f.svc.Enrollments.GetEnrolledCourseSessions(f.ctx, u1.ID, 404)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Course not found")
}

func TestCourseEnrollmentsExpandUsers(t *testing.T) {
	f := newFixture(t)
	course := f.course(t, "C1", nil)
	u1 := f.user(t, "u1@uni.edu")
	_, err := f.svc.Enrollments.Enroll(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)

	details, err := f.svc.Enrollments.GetCourseEnrollments(f.ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].User)
	assert.Equal(t, "u1@uni.edu", details[0].User.Email)
}

func TestUpdateEnrollmentDoesNotResync(t *testing.T) {
	f := newFixture(t)
	course := f.course(t, "C1", nil)
	u1 := f.user(t, "u1@uni.edu")
	u2 := f.user(t, "u2@uni.edu")
	enrollment, err := f.svc.Enrollments.Enroll(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)

	updated, err := f.svc.Enrollments.UpdateEnrollment(f.ctx, course.ID, enrollment.ID, &dto.UpdateEnrollmentRequest{UserID: u2.ID})
	require.NoError(t, err)
	assert.Equal(t, u2.ID, updated.UserID)

	storedCourse, err := f.repos.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{u1.ID}, storedCourse.Enrollments)

	_, err = f.svc.Enrollments.UpdateEnrollment(f.ctx, course.ID, 999, &dto.UpdateEnrollmentRequest{UserID: u2.ID})
	requireKind(t, err, apperrors.ErrResourceNotFound, "Enrollment not found")
}

func TestDeleteEnrollmentWithoutPrecheck(t *testing.T) {
	f := newFixture(t)
	course := f.course(t, "C1", nil)
	u1 := f.user(t, "u1@uni.edu")
	enrollment, err := f.svc.Enrollments.Enroll(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Enrollments.DeleteEnrollment(f.ctx, enrollment.ID))
	require.NoError(t, f.svc.Enrollments.DeleteEnrollment(f.ctx, enrollment.ID))

	details, err := f.svc.Enrollments.GetCourseEnrollments(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, details)
}
