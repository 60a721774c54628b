package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/pkg/logger"
)

// The rebuild statements only touch rows whose array actually changes.
const (
	rebuildCourseEnrollmentsSQL = `
UPDATE courses c
SET enrollments = derived.ids, updated_at = NOW()
FROM (
	SELECT c2.id,
	       COALESCE(ARRAY(SELECT e.user_id FROM enrollments e WHERE e.course_id = c2.id ORDER BY e.id), '{}') AS ids
	FROM courses c2
) derived
WHERE derived.id = c.id AND c.enrollments IS DISTINCT FROM derived.ids`

	rebuildUserEnrollmentsSQL = `
UPDATE users u
SET enrollments = derived.ids, updated_at = NOW()
FROM (
	SELECT u2.id,
	       COALESCE(ARRAY(SELECT e.course_id FROM enrollments e WHERE e.user_id = u2.id ORDER BY e.id), '{}') AS ids
	FROM users u2
) derived
WHERE derived.id = u.id AND u.enrollments IS DISTINCT FROM derived.ids`

	pruneCourseSessionsSQL = `
UPDATE courses c
SET sessions = ARRAY(
	SELECT t.sid FROM unnest(c.sessions) WITH ORDINALITY AS t(sid, ord)
	WHERE EXISTS (SELECT 1 FROM sessions s WHERE s.id = t.sid)
	ORDER BY t.ord
), updated_at = NOW()
WHERE EXISTS (
	SELECT 1 FROM unnest(c.sessions) AS sid
	WHERE NOT EXISTS (SELECT 1 FROM sessions s WHERE s.id = sid)
)`

	pruneTimetableSessionsSQL = `
UPDATE timetables tt
SET sessions = ARRAY(
	SELECT t.sid FROM unnest(tt.sessions) WITH ORDINALITY AS t(sid, ord)
	WHERE EXISTS (SELECT 1 FROM sessions s WHERE s.id = t.sid)
	ORDER BY t.ord
), updated_at = NOW()
WHERE EXISTS (
	SELECT 1 FROM unnest(tt.sessions) AS sid
	WHERE NOT EXISTS (SELECT 1 FROM sessions s WHERE s.id = sid)
)`
)

// MaintenancePostgresRepository rewrites derived arrays in bulk.
type MaintenancePostgresRepository struct {
	db Querier
}

// NewMaintenanceRepository creates a new MaintenancePostgresRepository
func NewMaintenanceRepository(db Querier) *MaintenancePostgresRepository {
	return &MaintenancePostgresRepository{db: db}
}

// RebuildEnrollmentIndexes implements MaintenanceRepository.
func (r *MaintenancePostgresRepository) RebuildEnrollmentIndexes(ctx context.Context) (ReconcileStats, error) {
	var stats ReconcileStats

	tag, err := r.db.Exec(ctx, rebuildCourseEnrollmentsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error rebuilding course enrollments")
		return stats, fmt.Errorf("error rebuilding course enrollments: %w", err)
	}
	stats.Courses = tag.RowsAffected()

	tag, err = r.db.Exec(ctx, rebuildUserEnrollmentsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error rebuilding user enrollments")
		return stats, fmt.Errorf("error rebuilding user enrollments: %w", err)
	}
	stats.Users = tag.RowsAffected()

	return stats, nil
}

// PruneDanglingSessions implements MaintenanceRepository.
func (r *MaintenancePostgresRepository) PruneDanglingSessions(ctx context.Context) (ReconcileStats, error) {
	var stats ReconcileStats

	tag, err := r.db.Exec(ctx, pruneCourseSessionsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error pruning course sessions")
		return stats, fmt.Errorf("error pruning course sessions: %w", err)
	}
	stats.Courses = tag.RowsAffected()

	tag, err = r.db.Exec(ctx, pruneTimetableSessionsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error pruning timetable sessions")
		return stats, fmt.Errorf("error pruning timetable sessions: %w", err)
	}
	stats.Timetables = tag.RowsAffected()

	return stats, nil
}
