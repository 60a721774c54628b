package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadSchedule(t *testing.T) {
	m := NewManager(zerolog.Nop())
	err := m.Register(Job{Name: "bad", Schedule: "*/15 * * * *", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestScheduledJobRuns(t *testing.T) {
	m := NewManager(zerolog.Nop())
	var runs atomic.Int32
	require.NoError(t, m.Register(Job{
		Name:     "tick",
		Schedule: "* * * * * *",
		Timeout:  time.Second,
		Run: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			runs.Add(1)
			return errors.New("logged, not fatal")
		},
	}))

	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}
