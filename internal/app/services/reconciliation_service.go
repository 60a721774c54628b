package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

// ReconcileReport summarises one reconciliation pass.
type ReconcileReport struct {
	Enrollments repositories.ReconcileStats
	Sessions    repositories.ReconcileStats
}

// ReconciliationService repairs the derived id arrays that enrollment
// updates and session deletes leave behind.
type ReconciliationService struct {
	tx repositories.TxManager
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(tx repositories.TxManager) *ReconciliationService {
	return &ReconciliationService{tx: tx}
}

// Run rebuilds both enrollment sets from the enrollment records and prunes
// session ids whose session is gone. Both steps commit together.
func (s *ReconciliationService) Run(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		var err error
		if report.Enrollments, err = repos.Maintenance.RebuildEnrollmentIndexes(ctx); err != nil {
			return fmt.Errorf("error rebuilding enrollment indexes: %w", err)
		}
		if report.Sessions, err = repos.Maintenance.PruneDanglingSessions(ctx); err != nil {
			return fmt.Errorf("error pruning dangling sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues("error").Inc()
		logger.Error().Err(err).Msg("Reconciliation failed")
		return nil, err
	}

	metrics.ReconcileRuns.WithLabelValues("ok").Inc()
	logger.Info().
		Int64("courseEnrollments", report.Enrollments.Courses).
		Int64("userEnrollments", report.Enrollments.Users).
		Int64("courseSessions", report.Sessions.Courses).
		Int64("timetableSessions", report.Sessions.Timetables).
		Msg("Reconciliation finished")
	return report, nil
}
