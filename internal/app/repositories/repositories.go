package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// Shared repository errors. Services translate them into user-facing messages.
var (
	ErrNotFound  = fmt.Errorf("record %w", apperrors.ErrResourceNotFound)
	ErrDuplicate = fmt.Errorf("record %w", apperrors.ErrConflict)
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so every Postgres
// repository runs unchanged inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FacultyRepository persists faculties.
type FacultyRepository interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) error
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id int64) error
}

// CourseRepository persists courses and their back-reference arrays.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCoursesByIDs(ctx context.Context, ids []int64) ([]*models.Course, error)
	// UpdateCourse writes scalar fields only; enrollments and sessions are
	// maintained through AddEnrollment and AppendSession.
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	AppendSession(ctx context.Context, courseID, sessionID int64) error
	AddEnrollment(ctx context.Context, courseID, userID int64) error
}

// SessionRepository persists sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id int64) (*models.Session, error)
	GetAllSessions(ctx context.Context) ([]*models.Session, error)
	// GetSessionsByIDs returns the sessions that still exist, in ids order.
	GetSessionsByIDs(ctx context.Context, ids []int64) ([]*models.Session, error)
	GetSessionsByCourse(ctx context.Context, courseID int64) ([]*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, id int64) error
}

// BookingRepository persists bookings and answers slot conflict queries.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsByIDs(ctx context.Context, ids []int64) ([]*models.Booking, error)
	GetAllBookings(ctx context.Context) ([]*models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id int64) error
	// SlotTaken reports whether a booking other than excludeID holds slot.
	// excludeID 0 excludes nothing.
	SlotTaken(ctx context.Context, slot models.BookingSlot, excludeID int64) (bool, error)
}

// TimetableRepository persists timetables.
type TimetableRepository interface {
	CreateTimetable(ctx context.Context, timetable *models.Timetable) error
	GetTimetableByID(ctx context.Context, id int64) (*models.Timetable, error)
	GetAllTimetables(ctx context.Context) ([]*models.Timetable, error)
	// GetTimetablesWithAnySession returns timetables whose sessions overlap sessionIDs.
	GetTimetablesWithAnySession(ctx context.Context, sessionIDs []int64) ([]*models.Timetable, error)
	UpdateTimetable(ctx context.Context, timetable *models.Timetable) error
	DeleteTimetable(ctx context.Context, id int64) error
	AppendSession(ctx context.Context, timetableID, sessionID int64) error
}

// EnrollmentRepository persists enrollment records.
type EnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
	FindEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	DeleteEnrollment(ctx context.Context, id int64) error
}

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role models.RoleType) error
	AddEnrollment(ctx context.Context, userID, courseID int64) error
}

// ReconcileStats reports how many rows a reconciliation pass rewrote.
type ReconcileStats struct {
	Courses    int64
	Users      int64
	Timetables int64
}

// MaintenanceRepository repairs derived back-reference arrays.
type MaintenanceRepository interface {
	// RebuildEnrollmentIndexes recomputes courses.enrollments and
	// users.enrollments from the enrollments table.
	RebuildEnrollmentIndexes(ctx context.Context) (ReconcileStats, error)
	// PruneDanglingSessions drops session ids that no longer exist from
	// courses.sessions and timetables.sessions.
	PruneDanglingSessions(ctx context.Context) (ReconcileStats, error)
}

// TxRepositories are the repositories bound to one transaction.
type TxRepositories struct {
	Courses     CourseRepository
	Sessions    SessionRepository
	Timetables  TimetableRepository
	Enrollments EnrollmentRepository
	Users       UserRepository
	Maintenance MaintenanceRepository
}

// TxManager runs fn atomically. Any error returned by fn rolls back every
// write made through repos.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// Repositories is a container for all repositories
type Repositories struct {
	Faculties   FacultyRepository
	Courses     CourseRepository
	Sessions    SessionRepository
	Bookings    BookingRepository
	Timetables  TimetableRepository
	Enrollments EnrollmentRepository
	Users       UserRepository
	Maintenance MaintenanceRepository
	Tx          TxManager
}
