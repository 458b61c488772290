package listing

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultIdleTTL is how long an untouched listing is kept.
const DefaultIdleTTL = 30 * time.Minute

type registryEntry struct {
	machine  *Machine
	lastSeen time.Time
}

// Registry holds one Machine per browser session.
type Registry struct {
	fetcher  Fetcher
	opts     MachineOptions
	idleTTL  time.Duration
	now      func() time.Time
	logger   *slog.Logger
	recorder Recorder

	mu       sync.Mutex
	machines map[string]*registryEntry
}

// NewRegistry constructs a Registry whose machines share fetcher and opts.
func NewRegistry(fetcher Fetcher, opts MachineOptions, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		fetcher:  fetcher,
		opts:     opts,
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
		recorder: opts.Recorder,
		machines: make(map[string]*registryEntry),
	}
}

// WithNow overrides the registry clock for testing.
func (r *Registry) WithNow(fn func() time.Time) {
	if fn != nil {
		r.now = fn
	}
}

// Get returns the machine for key, creating it on first use.
func (r *Registry) Get(key string) *Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.machines[key]
	if !ok {
		entry = &registryEntry{machine: NewMachine(r.fetcher, r.opts)}
		r.machines[key] = entry
		r.reportLocked()
	}
	entry.lastSeen = r.now()
	return entry.machine
}

// Detached returns a machine that is not tracked. It serves visitors without
// an established session, so one-off requests leave no state behind.
func (r *Registry) Detached() *Machine {
	return NewMachine(r.fetcher, r.opts)
}

// Peek returns the machine for key without creating or touching it.
func (r *Registry) Peek(key string) (*Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.machines[key]
	if !ok {
		return nil, false
	}
	return entry.machine, true
}

// Len reports the number of live machines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.machines)
}

// Sweep drops machines idle for longer than the TTL and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	for key, entry := range r.machines {
		if entry.lastSeen.Before(cutoff) {
			delete(r.machines, key)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("evicted idle listings", slog.Int("removed", removed), slog.Int("remaining", len(r.machines)))
		r.reportLocked()
	}
	return removed
}

func (r *Registry) reportLocked() {
	if r.recorder != nil {
		r.recorder.SetActiveListings(len(r.machines))
	}
}
