package scanner

import (
	"sync/atomic"
	"time"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// State is the lifecycle state of a scan session.
type State int32

const (
	// StateRunning means the walker or enrichment pool is still working.
	StateRunning State = iota

	// StateCompleted means the whole subtree was scanned.
	StateCompleted

	// StateCancelled means the scan stopped early; the index holds a
	// partial but internally consistent result set.
	StateCancelled
)

// String returns the string representation of the state.
func (st State) String() string {
	switch st {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session bundles the state of one scan invocation: the incremental index,
// the aggregator, the cancellation flag, and the progress stream. It is
// created by Start, mutated only by the scan goroutines, and frozen once
// the scan completes or is cancelled.
type Session struct {
	// ID is a correlation ID for logging.
	ID string

	opts    Options
	started time.Time

	index *Index
	agg   *Aggregator

	cancelled atomic.Bool
	state     atomic.Int32

	progress chan types.ProgressSnapshot
	done     chan struct{}
}

func newSession(opts Options) *Session {
	return &Session{
		ID:       newSessionID(),
		opts:     opts,
		started:  time.Now(),
		index:    NewIndex(),
		agg:      NewAggregator(),
		progress: make(chan types.ProgressSnapshot, 16),
		done:     make(chan struct{}),
	}
}

// Cancel requests cooperative cancellation. It is idempotent and safe to
// call from any goroutine, repeatedly, or after completion. Insertion stops
// within at most one batch of the request.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

// cancelRequested is the batch-boundary check used by the walker and the
// enrichment tasks.
func (s *Session) cancelRequested() bool {
	return s.cancelled.Load()
}

// finish freezes the session after the walker and pool have drained.
func (s *Session) finish() {
	if s.cancelled.Load() {
		s.state.Store(int32(StateCancelled))
	} else {
		s.state.Store(int32(StateCompleted))
	}
	close(s.progress)
	close(s.done)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Done is closed when the scan terminates, completed or cancelled.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the scan terminates.
func (s *Session) Wait() State {
	<-s.done
	return s.State()
}

// Progress returns the progress stream. One snapshot is offered per
// processed batch; snapshots are dropped rather than ever blocking the
// scan, and the channel is closed when the scan terminates, so ranging
// over it is finite.
func (s *Session) Progress() <-chan types.ProgressSnapshot {
	return s.progress
}

// Len returns the number of rows collected so far. Safe to call while the
// scan is appending; the value never decreases.
func (s *Session) Len() int {
	return s.index.Len()
}

// Row returns the entry at the given position for virtual scrolling. Any
// previously appended row is reachable in O(1) without scanning from the
// start, even mid-scan.
func (s *Session) Row(pos int) (types.Entry, error) {
	return s.index.Row(pos)
}

// Rows returns a snapshot of the first n rows (all rows if n < 0).
func (s *Session) Rows(n int) []types.Entry {
	return s.index.Rows(n)
}

// Stats returns a point-in-time aggregate snapshot.
func (s *Session) Stats() types.AggregateSnapshot {
	return s.agg.Snapshot()
}

// Root returns the resolved absolute root path.
func (s *Session) Root() string {
	return s.opts.Root
}

// Elapsed returns the time since the scan started.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.started)
}
