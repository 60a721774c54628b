package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
)

var (
	_ repositories.FacultyRepository     = (*facultyRepo)(nil)
	_ repositories.CourseRepository      = (*courseRepo)(nil)
	_ repositories.SessionRepository     = (*sessionRepo)(nil)
	_ repositories.BookingRepository     = (*bookingRepo)(nil)
	_ repositories.TimetableRepository   = (*timetableRepo)(nil)
	_ repositories.EnrollmentRepository  = (*enrollmentRepo)(nil)
	_ repositories.UserRepository        = (*userRepo)(nil)
	_ repositories.MaintenanceRepository = (*maintenanceRepo)(nil)
	_ repositories.TxManager             = (*Store)(nil)
)

func TestBookingSlotUniqueness(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	first := &models.Booking{Room: "R1", Day: "Mon", StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, repos.Bookings.CreateBooking(ctx, first))

	dup := &models.Booking{Room: "R1", Day: "Mon", StartTime: "09:00", EndTime: "10:00"}
	assert.ErrorIs(t, repos.Bookings.CreateBooking(ctx, dup), repositories.ErrDuplicate)

	taken, err := repos.Bookings.SlotTaken(ctx, first.Slot(), first.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a booking never conflicts with itself")
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	course := &models.Course{Name: "Networks", Code: "NET1"}
	require.NoError(t, repos.Courses.CreateCourse(ctx, course))
	require.NoError(t, repos.Courses.AppendSession(ctx, course.ID, 9))

	got, err := repos.Courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	got.Sessions[0] = 1000

	again, err := repos.Courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, again.Sessions)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repos := store.Repositories()

	course := &models.Course{Name: "Networks", Code: "NET1"}
	require.NoError(t, repos.Courses.CreateCourse(ctx, course))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(ctx context.Context, tx repositories.TxRepositories) error {
		require.NoError(t, tx.Courses.AddEnrollment(ctx, course.ID, 5))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.Courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Enrollments)

	require.NoError(t, store.WithTx(ctx, func(ctx context.Context, tx repositories.TxRepositories) error {
		return tx.Courses.AddEnrollment(ctx, course.ID, 5)
	}))
	got, err = repos.Courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, got.Enrollments)
}

func TestReconcileRepairsDrift(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	user := &models.User{Name: "Ada", Email: "ada@uni.edu", Role: models.RoleStudent}
	require.NoError(t, repos.Users.CreateUser(ctx, user))
	course := &models.Course{Name: "Networks", Code: "NET1"}
	require.NoError(t, repos.Courses.CreateCourse(ctx, course))
	require.NoError(t, repos.Enrollments.CreateEnrollment(ctx, &models.Enrollment{UserID: user.ID, CourseID: course.ID}))
	require.NoError(t, repos.Courses.AppendSession(ctx, course.ID, 404))

	stats, err := repos.Maintenance.RebuildEnrollmentIndexes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Courses)
	assert.Equal(t, int64(1), stats.Users)

	pruned, err := repos.Maintenance.PruneDanglingSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned.Courses)

	got, err := repos.Courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{user.ID}, got.Enrollments)
	assert.Empty(t, got.Sessions)

	u, err := repos.Users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{course.ID}, u.Enrollments)
}

func TestUserEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	require.NoError(t, repos.Users.CreateUser(ctx, &models.User{Name: "Ada", Email: "Ada@Uni.edu"}))
	assert.ErrorIs(t, repos.Users.CreateUser(ctx, &models.User{Name: "Ada", Email: "ada@uni.edu"}), repositories.ErrDuplicate)

	u, err := repos.Users.GetUserByEmail(ctx, "ADA@UNI.EDU")
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", u.Email)
}
