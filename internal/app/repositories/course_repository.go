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

var courseColumns = []string{"id", "name", "code", "description", "credits", "faculty_id", "enrollments", "sessions", "created_at", "updated_at"}

// CoursePostgresRepository handles course database operations
type CoursePostgresRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CoursePostgresRepository
func NewCourseRepository(db Querier) *CoursePostgresRepository {
	return &CoursePostgresRepository{db: db, sb: psql}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credits, &c.FacultyID,
		&c.Enrollments, &c.Sessions, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Enrollments = nonNil(c.Enrollments)
	c.Sessions = nonNil(c.Sessions)
	return c, nil
}

func (r *CoursePostgresRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// CreateCourse inserts course. A taken code yields ErrDuplicate.
func (r *CoursePostgresRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "code", "description", "credits", "faculty_id").
		Values(course.Name, course.Code, course.Description, course.Credits, course.FacultyID).
		Suffix("RETURNING id, enrollments, sessions, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Enrollments, &course.Sessions, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.CourseCodeConstraint) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	course.Enrollments = nonNil(course.Enrollments)
	course.Sessions = nonNil(course.Sessions)
	return nil
}

// GetCourseByID retrieves a course by ID
func (r *CoursePostgresRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// GetAllCourses retrieves all courses
func (r *CoursePostgresRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).From("courses").OrderBy("id ASC"))
}

// GetCoursesByIDs retrieves the courses that exist among ids.
func (r *CoursePostgresRepository) GetCoursesByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": ids}).OrderBy("id ASC"))
}

// UpdateCourse updates an existing course
func (r *CoursePostgresRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":        course.Name,
			"code":        course.Code,
			"description": course.Description,
			"credits":     course.Credits,
			"faculty_id":  course.FacultyID,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case dberrors.IsDuplicateConstraintError(err, dberrors.CourseCodeConstraint):
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course by ID
func (r *CoursePostgresRepository) DeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendSession adds sessionID to the end of the course's sessions.
func (r *CoursePostgresRepository) AppendSession(ctx context.Context, courseID, sessionID int64) error {
	return r.updateArray(ctx, courseID, "sessions", squirrel.Expr("array_append(sessions, ?)", sessionID))
}

// AddEnrollment adds userID to the course's enrollments unless present.
func (r *CoursePostgresRepository) AddEnrollment(ctx context.Context, courseID, userID int64) error {
	return r.updateArray(ctx, courseID, "enrollments", setAdd("enrollments", userID))
}

func (r *CoursePostgresRepository) updateArray(ctx context.Context, courseID int64, column string, value squirrel.Sqlizer) error {
	sql, args, err := r.sb.Update("courses").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course %s update: %w", column, err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Str("column", column).Msg("Error updating course array")
		return fmt.Errorf("error updating course %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
