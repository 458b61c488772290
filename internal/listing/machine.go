package listing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// Status is the lifecycle stage of the listing.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Fetcher loads a page of doctors.
type Fetcher interface {
	FetchDoctors(ctx context.Context, filters directory.FilterState, page, limit int) (directory.Envelope, error)
}

// Recorder observes listing events.
type Recorder interface {
	ObserveStaleResponse()
	SetActiveListings(n int)
}

// Query is the input of a fetch: the filters and the requested page.
type Query struct {
	Filters directory.FilterState
	Page    int
}

// Snapshot is an immutable view of the listing state.
//
// Doctors only ever holds data returned by the API. When the API fails the
// status is StatusError and Placeholder carries synthetic doctors for display.
type Snapshot struct {
	Status      Status
	Query       Query
	Doctors     []directory.Doctor
	Placeholder []directory.Doctor
	Pagination  Pagination
	Err         string
	Seq         uint64
}

// IsEmpty reports a successful fetch that matched nothing.
func (s Snapshot) IsEmpty() bool {
	return s.Status == StatusSuccess && len(s.Doctors) == 0
}

// Window returns the page links for the snapshot's pagination.
func (s Snapshot) Window() []int {
	return Window(s.Pagination.TotalPages, s.Pagination.Page)
}

// MachineOptions configures a Machine.
type MachineOptions struct {
	Limit    int
	Logger   *slog.Logger
	Recorder Recorder
}

// Machine is the listing state machine. Any change of filters, search or page
// enters StatusLoading and issues a fetch. Fetches are sequenced: a response
// is applied only if no newer fetch was issued after it.
type Machine struct {
	fetcher  Fetcher
	limit    int
	logger   *slog.Logger
	recorder Recorder

	mu    sync.Mutex
	query Query
	seq   uint64
	snap  Snapshot
}

// NewMachine constructs a Machine on page 1 with no filters.
func NewMachine(fetcher Fetcher, opts MachineOptions) *Machine {
	limit := opts.Limit
	if limit <= 0 {
		limit = directory.DefaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	q := Query{Page: 1}
	return &Machine{
		fetcher:  fetcher,
		limit:    limit,
		logger:   logger,
		recorder: opts.Recorder,
		query:    q,
		snap:     Snapshot{Status: StatusLoading, Query: q},
	}
}

// State returns the current snapshot.
func (m *Machine) State() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Query returns the current query.
func (m *Machine) Query() Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// SetFilters replaces the filters (search included) and resets to page 1 in
// the same update, then fetches.
func (m *Machine) SetFilters(ctx context.Context, filters directory.FilterState) (Snapshot, bool) {
	m.mu.Lock()
	m.query = Query{Filters: filters, Page: 1}
	seq, q := m.beginLocked()
	m.mu.Unlock()
	return m.run(ctx, seq, q)
}

// SetPage moves to page and fetches.
func (m *Machine) SetPage(ctx context.Context, page int) (Snapshot, bool) {
	m.mu.Lock()
	m.query.Page = normalizePage(page)
	seq, q := m.beginLocked()
	m.mu.Unlock()
	return m.run(ctx, seq, q)
}

// Refresh re-fetches the current query.
func (m *Machine) Refresh(ctx context.Context) (Snapshot, bool) {
	m.mu.Lock()
	seq, q := m.beginLocked()
	m.mu.Unlock()
	return m.run(ctx, seq, q)
}

// Navigate loads exactly the requested query. The caller derives q from the
// URL, which is the source of truth for the view: a request without a page
// is page 1, so a filter or search change always lands on the first page.
func (m *Machine) Navigate(ctx context.Context, q Query) (Snapshot, bool) {
	m.mu.Lock()
	m.query = Query{Filters: q.Filters, Page: normalizePage(q.Page)}
	seq, query := m.beginLocked()
	m.mu.Unlock()
	return m.run(ctx, seq, query)
}

func (m *Machine) beginLocked() (uint64, Query) {
	m.seq++
	m.snap = Snapshot{
		Status:     StatusLoading,
		Query:      m.query,
		Pagination: m.snap.Pagination,
		Seq:        m.seq,
	}
	return m.seq, m.query
}

// run performs the fetch for seq and returns the snapshot of q. The result is
// stored as the machine state only if seq is still the latest fetch; the bool
// reports whether it was.
func (m *Machine) run(ctx context.Context, seq uint64, q Query) (Snapshot, bool) {
	env, err := m.fetcher.FetchDoctors(ctx, q.Filters, q.Page, m.limit)

	var snap Snapshot
	if err != nil {
		snap = Snapshot{
			Status:      StatusError,
			Query:       q,
			Placeholder: Placeholders(),
			Pagination:  Pagination{Page: q.Page, TotalPages: 1, Limit: m.limit},
			Err:         err.Error(),
			Seq:         seq,
		}
	} else {
		snap = Snapshot{
			Status:     StatusSuccess,
			Query:      q,
			Doctors:    env.Data,
			Pagination: PaginationFromMeta(env.Meta),
			Seq:        seq,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if seq != m.seq {
		m.logger.Debug("discard stale listing response", slog.Uint64("seq", seq), slog.Uint64("latest", m.seq))
		if m.recorder != nil {
			m.recorder.ObserveStaleResponse()
		}
		return snap, false
	}
	if err != nil {
		m.logger.Warn("fetch doctors", slog.Any("error", err), slog.Int("page", q.Page))
	}
	m.snap = snap
	return snap, true
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
