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

var sessionColumns = []string{"id", "name", "course_id", "coordinator", "booking_id", "faculty_id", "created_at", "updated_at"}

// SessionPostgresRepository handles session database operations
type SessionPostgresRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionPostgresRepository
func NewSessionRepository(db Querier) *SessionPostgresRepository {
	return &SessionPostgresRepository{db: db, sb: psql}
}

func scanSession(row rowScanner) (*models.Session, error) {
	s := &models.Session{}
	if err := row.Scan(&s.ID, &s.Name, &s.CourseID, &s.Coordinator, &s.BookingID, &s.FacultyID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionPostgresRepository) querySessions(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Session, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build session query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing session query")
		return nil, fmt.Errorf("error querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CreateSession inserts session and fills its id and timestamps.
func (r *SessionPostgresRepository) CreateSession(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("name", "course_id", "coordinator", "booking_id", "faculty_id").
		Values(session.Name, session.CourseID, session.Coordinator, session.BookingID, session.FacultyID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("courseID", session.CourseID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetSessionByID retrieves a session by ID
func (r *SessionPostgresRepository) GetSessionByID(ctx context.Context, id int64) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).From("sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error scanning session row")
		return nil, fmt.Errorf("error getting session by ID: %w", err)
	}
	return session, nil
}

// GetAllSessions retrieves all sessions
func (r *SessionPostgresRepository) GetAllSessions(ctx context.Context) ([]*models.Session, error) {
	return r.querySessions(ctx, r.sb.Select(sessionColumns...).From("sessions").OrderBy("id ASC"))
}

// GetSessionsByIDs keeps the order of ids and skips ids with no row.
func (r *SessionPostgresRepository) GetSessionsByIDs(ctx context.Context, ids []int64) ([]*models.Session, error) {
	if len(ids) == 0 {
		return []*models.Session{}, nil
	}
	found, err := r.querySessions(ctx, r.sb.Select(sessionColumns...).From("sessions").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Session, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	ordered := make([]*models.Session, 0, len(found))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// GetSessionsByCourse retrieves every session of a course
func (r *SessionPostgresRepository) GetSessionsByCourse(ctx context.Context, courseID int64) ([]*models.Session, error) {
	return r.querySessions(ctx, r.sb.Select(sessionColumns...).From("sessions").Where(squirrel.Eq{"course_id": courseID}).OrderBy("id ASC"))
}

// UpdateSession updates an existing session
func (r *SessionPostgresRepository) UpdateSession(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Update("sessions").
		SetMap(map[string]interface{}{
			"name":        session.Name,
			"course_id":   session.CourseID,
			"coordinator": session.Coordinator,
			"booking_id":  session.BookingID,
			"faculty_id":  session.FacultyID,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": session.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update session query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&session.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Int64("sessionID", session.ID).Msg("Error executing update session query")
		return fmt.Errorf("error updating session: %w", err)
	}
	return nil
}

// DeleteSession deletes a session by ID. Owner arrays keep the id.
func (r *SessionPostgresRepository) DeleteSession(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sessionID", id).Msg("Error executing delete session query")
		return fmt.Errorf("error deleting session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
