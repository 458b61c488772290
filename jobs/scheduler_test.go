package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/apollo-healthcare/apollo-web/internal/jobs"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 0
}

func TestSchedulerRunsSweepUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	s, err := NewScheduler(nil, nil, SweepRegistration("@every 1s", sweeper, nil))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, 1, s.Entries())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerRejectsInvalidJobs(t *testing.T) {
	_, err := NewScheduler(nil, nil, CronRegistration{Name: "empty"})
	assert.Error(t, err)

	s, err := NewScheduler(nil, nil, SweepRegistration("not a spec", &countingSweeper{}, nil))
	require.NoError(t, err)
	assert.Error(t, s.Run(context.Background()))
}

func TestSweepRegistrationRecordsEvictions(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := jobmetrics.NewMetrics(reg)
	job := SweepRegistration("@every 1m", evictingSweeper(2), metrics)

	require.NoError(t, job.Run(context.Background()))
	families, err := reg.Gather()
	require.NoError(t, err)
	var evicted float64
	for _, mf := range families {
		if mf.GetName() == "apollo_listing_evicted_total" {
			evicted = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, evicted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, job.Run(ctx), context.Canceled)
}

type evictingSweeper int

func (e evictingSweeper) Sweep() int { return int(e) }
