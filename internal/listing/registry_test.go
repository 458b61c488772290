package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReusesMachinePerKey(t *testing.T) {
	reg := NewRegistry(&stubFetcher{}, MachineOptions{}, time.Minute)

	a := reg.Get("session-a")
	assert.Same(t, a, reg.Get("session-a"))
	assert.NotSame(t, a, reg.Get("session-b"))
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryDetachedIsNotTracked(t *testing.T) {
	rec := &stubRecorder{}
	reg := NewRegistry(&stubFetcher{}, MachineOptions{Recorder: rec}, time.Minute)

	a := reg.Detached()
	require.NotNil(t, a)
	assert.NotSame(t, a, reg.Detached())
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, rec.active)
}

func TestRegistrySweepEvictsIdle(t *testing.T) {
	rec := &stubRecorder{}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	reg := NewRegistry(&stubFetcher{}, MachineOptions{Recorder: rec}, 10*time.Minute)
	reg.WithNow(func() time.Time { return now })

	reg.Get("idle")
	now = now.Add(8 * time.Minute)
	reg.Get("active")
	assert.Equal(t, 2, rec.active)

	now = now.Add(5 * time.Minute)
	removed := reg.Sweep()

	assert.Equal(t, 1, removed)
	_, ok := reg.Peek("idle")
	assert.False(t, ok)
	_, ok = reg.Peek("active")
	require.True(t, ok)
	assert.Equal(t, 1, rec.active)
}

func TestPlaceholdersAreDeterministic(t *testing.T) {
	first := Placeholders()
	second := Placeholders()
	require.Len(t, first, PlaceholderCount)
	assert.Equal(t, first, second)
	for _, d := range first {
		assert.True(t, IsPlaceholder(d))
		assert.GreaterOrEqual(t, d.Rating, 1.0)
		assert.LessOrEqual(t, d.Rating, 5.0)
	}
}
