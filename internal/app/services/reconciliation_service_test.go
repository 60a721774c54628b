package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
)

func TestReconciliationRepairsDocumentedDrift(t *testing.T) {
	f := newFixture(t)
	faculty := f.faculty(t)
	course := f.course(t, "C1", &faculty.ID)
	booking := f.booking(t, "R1")
	u1 := f.user(t, "u1@uni.edu")
	u2 := f.user(t, "u2@uni.edu")

	enrollment, err := f.svc.Enrollments.Enroll(f.ctx, u1.ID, course.ID)
	require.NoError(t, err)
	_, err = f.svc.Enrollments.UpdateEnrollment(f.ctx, course.ID, enrollment.ID, &dto.UpdateEnrollmentRequest{UserID: u2.ID})
	require.NoError(t, err)

	session, err := f.svc.Sessions.AttachToCourse(f.ctx, course.ID, &dto.AttachSessionRequest{Name: "L1", BookingID: booking.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.Sessions.DeleteSession(f.ctx, session.ID))

	report, err := f.svc.Reconciliation.Run(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Enrollments.Courses)
	assert.Equal(t, int64(2), report.Enrollments.Users)
	assert.Equal(t, int64(1), report.Sessions.Courses)

	stored, err := f.repos.Courses.GetCourseByID(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{u2.ID}, stored.Enrollments)
	assert.Empty(t, stored.Sessions)

	again, err := f.svc.Reconciliation.Run(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Enrollments.Courses)
	assert.Zero(t, again.Sessions.Courses)
}
