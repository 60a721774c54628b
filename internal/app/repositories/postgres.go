package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/db"
)

// psql builds every statement with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// setAdd appends value to an array column unless already present.
func setAdd(column string, value int64) squirrel.Sqlizer {
	return squirrel.Expr("CASE WHEN ? = ANY("+column+") THEN "+column+" ELSE array_append("+column+", ?) END", value, value)
}

// NewPostgresRepositories wires every repository to the pool.
func NewPostgresRepositories(pg *db.PostgresDB) *Repositories {
	q := pg.Pool
	return &Repositories{
		Faculties:   NewFacultyRepository(q),
		Courses:     NewCourseRepository(q),
		Sessions:    NewSessionRepository(q),
		Bookings:    NewBookingRepository(q),
		Timetables:  NewTimetableRepository(q),
		Enrollments: NewEnrollmentRepository(q),
		Users:       NewUserRepository(q),
		Maintenance: NewMaintenanceRepository(q),
		Tx:          NewPostgresTxManager(pg),
	}
}

// PostgresTxManager implements TxManager with pgx transactions.
type PostgresTxManager struct {
	db *db.PostgresDB
}

// NewPostgresTxManager creates a new PostgresTxManager
func NewPostgresTxManager(pg *db.PostgresDB) *PostgresTxManager {
	return &PostgresTxManager{db: pg}
}

// WithTx binds a fresh set of repositories to a transaction and runs fn.
func (m *PostgresTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	return m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, TxRepositories{
			Courses:     NewCourseRepository(tx),
			Sessions:    NewSessionRepository(tx),
			Timetables:  NewTimetableRepository(tx),
			Enrollments: NewEnrollmentRepository(tx),
			Users:       NewUserRepository(tx),
			Maintenance: NewMaintenanceRepository(tx),
		})
	})
}

var (
	_ FacultyRepository     = (*FacultyPostgresRepository)(nil)
	_ CourseRepository      = (*CoursePostgresRepository)(nil)
	_ SessionRepository     = (*SessionPostgresRepository)(nil)
	_ BookingRepository     = (*BookingPostgresRepository)(nil)
	_ TimetableRepository   = (*TimetablePostgresRepository)(nil)
	_ EnrollmentRepository  = (*EnrollmentPostgresRepository)(nil)
	_ UserRepository        = (*UserPostgresRepository)(nil)
	_ MaintenanceRepository = (*MaintenancePostgresRepository)(nil)
	_ TxManager             = (*PostgresTxManager)(nil)
)
