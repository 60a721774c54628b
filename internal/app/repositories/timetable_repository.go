package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

var timetableColumns = []string{"id", "name", "faculty_id", "department", "academic_year", "semester", "mode", "sessions", "created_at", "updated_at"}

// TimetablePostgresRepository handles timetable database operations
type TimetablePostgresRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewTimetableRepository creates a new TimetablePostgresRepository
func NewTimetableRepository(db Querier) *TimetablePostgresRepository {
	return &TimetablePostgresRepository{db: db, sb: psql}
}

func scanTimetable(row rowScanner) (*models.Timetable, error) {
	t := &models.Timetable{}
	err := row.Scan(&t.ID, &t.Name, &t.FacultyID, &t.Department, &t.AcademicYear, &t.Semester,
		&t.Mode, &t.Sessions, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Sessions = nonNil(t.Sessions)
	return t, nil
}

func (r *TimetablePostgresRepository) queryTimetables(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Timetable, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build timetable query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing timetable query")
		return nil, fmt.Errorf("error querying timetables: %w", err)
	}
	defer rows.Close()

	timetables := []*models.Timetable{}
	for rows.Next() {
		timetable, err := scanTimetable(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning timetable row: %w", err)
		}
		timetables = append(timetables, timetable)
	}
	return timetables, rows.Err()
}

// CreateTimetable inserts timetable and fills its id, sessions and timestamps.
func (r *TimetablePostgresRepository) CreateTimetable(ctx context.Context, timetable *models.Timetable) error {
	sql, args, err := r.sb.Insert("timetables").
		Columns("name", "faculty_id", "department", "academic_year", "semester", "mode").
		Values(timetable.Name, timetable.FacultyID, timetable.Department, timetable.AcademicYear, timetable.Semester, timetable.Mode).
		Suffix("RETURNING id, sessions, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create timetable query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&timetable.ID, &timetable.Sessions, &timetable.CreatedAt, &timetable.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("name", timetable.Name).Msg("Error executing create timetable query")
		return fmt.Errorf("error creating timetable: %w", err)
	}
	timetable.Sessions = nonNil(timetable.Sessions)
	return nil
}

// GetTimetableByID retrieves a timetable by ID
func (r *TimetablePostgresRepository) GetTimetableByID(ctx context.Context, id int64) (*models.Timetable, error) {
	sql, args, err := r.sb.Select(timetableColumns...).From("timetables").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get timetable query: %w", err)
	}

	timetable, err := scanTimetable(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("timetableID", id).Msg("Error scanning timetable row")
		return nil, fmt.Errorf("error getting timetable by ID: %w", err)
	}
	return timetable, nil
}

// GetAllTimetables retrieves all timetables
func (r *TimetablePostgresRepository) GetAllTimetables(ctx context.Context) ([]*models.Timetable, error) {
	return r.queryTimetables(ctx, r.sb.Select(timetableColumns...).From("timetables").OrderBy("id ASC"))
}

// GetTimetablesWithAnySession uses array overlap on the sessions column.
func (r *TimetablePostgresRepository) GetTimetablesWithAnySession(ctx context.Context, sessionIDs []int64) ([]*models.Timetable, error) {
	if len(sessionIDs) == 0 {
		return []*models.Timetable{}, nil
	}
	return r.queryTimetables(ctx, r.sb.Select(timetableColumns...).
		From("timetables").
		Where(squirrel.Expr("sessions && ?::bigint[]", sessionIDs)).
		OrderBy("id ASC"))
}

// UpdateTimetable writes scalar fields; sessions go through AppendSession.
func (r *TimetablePostgresRepository) UpdateTimetable(ctx context.Context, timetable *models.Timetable) error {
	sql, args, err := r.sb.Update("timetables").
		SetMap(map[string]interface{}{
			"name":          timetable.Name,
			"faculty_id":    timetable.FacultyID,
			"department":    timetable.Department,
			"academic_year": timetable.AcademicYear,
			"semester":      timetable.Semester,
			"mode":          timetable.Mode,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": timetable.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update timetable query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&timetable.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Int64("timetableID", timetable.ID).Msg("Error executing update timetable query")
		return fmt.Errorf("error updating timetable: %w", err)
	}
	return nil
}

// DeleteTimetable deletes a timetable by ID
func (r *TimetablePostgresRepository) DeleteTimetable(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("timetables").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete timetable query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", id).Msg("Error executing delete timetable query")
		return fmt.Errorf("error deleting timetable: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendSession adds sessionID to the end of the timetable's sessions.
func (r *TimetablePostgresRepository) AppendSession(ctx context.Context, timetableID, sessionID int64) error {
	sql, args, err := r.sb.Update("timetables").
		Set("sessions", squirrel.Expr("array_append(sessions, ?)", sessionID)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": timetableID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build timetable append query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("timetableID", timetableID).Int64("sessionID", sessionID).Msg("Error appending timetable session")
		return fmt.Errorf("error appending timetable session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
