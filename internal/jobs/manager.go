// Package jobs schedules background maintenance with robfig/cron.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one scheduled unit of work.
type Job struct {
	Name     string
	Schedule string // six-field cron expression, seconds first
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Manager manages all scheduled cron jobs
type Manager struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewManager creates a new cron manager with seconds precision. Overlapping
// runs of the same job are skipped.
func NewManager(logger zerolog.Logger) *Manager {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Manager{cron: c, logger: logger}
}

// Register adds job to the scheduler. Call before Start.
func (m *Manager) Register(job Job) error {
	_, err := m.cron.AddFunc(job.Schedule, func() { m.runJob(job) })
	if err != nil {
		return err
	}
	m.logger.Info().Str("job", job.Name).Str("schedule", job.Schedule).Msg("Cron job registered")
	return nil
}

// Start starts the scheduler in its own goroutine
func (m *Manager) Start() {
	m.cron.Start()
	m.logger.Info().Int("jobs", len(m.cron.Entries())).Msg("Cron jobs started")
}

// Stop stops the scheduler and waits for running jobs
func (m *Manager) Stop() {
	m.logger.Info().Msg("Stopping cron jobs...")
	<-m.cron.Stop().Done()
	m.logger.Info().Msg("Cron jobs stopped")
}

func (m *Manager) runJob(job Job) {
	ctx := context.Background()
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	m.logger.Debug().Str("job", job.Name).Msg("Cron job starting")
	if err := job.Run(ctx); err != nil {
		m.logger.Error().Err(err).Str("job", job.Name).Dur("took", time.Since(start)).Msg("Cron job failed")
		return
	}
	m.logger.Info().Str("job", job.Name).Dur("took", time.Since(start)).Msg("Cron job completed")
}
