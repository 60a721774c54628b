package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

var enrollmentColumns = []string{"id", "user_id", "course_id", "created_at", "updated_at"}

// EnrollmentPostgresRepository handles enrollment database operations
type EnrollmentPostgresRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentPostgresRepository
func NewEnrollmentRepository(db Querier) *EnrollmentPostgresRepository {
	return &EnrollmentPostgresRepository{db: db, sb: psql}
}

func scanEnrollment(row rowScanner) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EnrollmentPostgresRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).From("enrollments").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return enrollment, nil
}

// CreateEnrollment inserts enrollment. A taken (user, course) pair yields ErrDuplicate.
func (r *EnrollmentPostgresRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id").
		Values(enrollment.UserID, enrollment.CourseID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.EnrollmentPairConstraint) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("userID", enrollment.UserID).Int64("courseID", enrollment.CourseID).Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (r *EnrollmentPostgresRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindEnrollment retrieves the enrollment of a (user, course) pair
func (r *EnrollmentPostgresRepository) FindEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID, "course_id": courseID})
}

// GetEnrollmentsByCourse retrieves every enrollment of a course
func (r *EnrollmentPostgresRepository) GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

// UpdateEnrollment rewrites the pair. Derived arrays are not touched.
func (r *EnrollmentPostgresRepository) UpdateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("user_id", enrollment.UserID).
		Set("course_id", enrollment.CourseID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": enrollment.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.CreatedAt, &enrollment.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.EnrollmentPairConstraint):
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Error executing update enrollment query")
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	return nil
}

// DeleteEnrollment deletes an enrollment by ID
func (r *EnrollmentPostgresRepository) DeleteEnrollment(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("enrollments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing delete enrollment query")
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
