package scanner

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// ErrRowOutOfRange indicates a row position at or beyond the current length.
var ErrRowOutOfRange = errors.New("row position out of range")

// Index is the append-only, randomly-indexable entry store backing virtual
// scrolling. Rows are appended in traversal pre-order and their positions
// never change; enrichment results are written back in place, keyed by
// position. Readers observe a monotonically growing view while the scan is
// still appending.
type Index struct {
	mu      sync.RWMutex
	entries []types.Entry

	// length mirrors len(entries) so Len is lock-free for readers
	// polling from a render loop.
	length atomic.Int64
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Append adds an entry and returns its position.
func (ix *Index) Append(e types.Entry) int {
	ix.mu.Lock()
	pos := len(ix.entries)
	ix.entries = append(ix.entries, e)
	ix.mu.Unlock()

	ix.length.Add(1)
	return pos
}

// Len returns the number of appended rows. It never decreases.
func (ix *Index) Len() int {
	return int(ix.length.Load())
}

// Row returns a copy of the entry at the given position.
func (ix *Index) Row(pos int) (types.Entry, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if pos < 0 || pos >= len(ix.entries) {
		return types.Entry{}, ErrRowOutOfRange
	}
	return ix.entries[pos], nil
}

// Rows returns a copy of the first n rows, or all rows if n exceeds the
// current length. The sort engine and the views operate on such snapshots.
func (ix *Index) Rows(n int) []types.Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if n < 0 || n > len(ix.entries) {
		n = len(ix.entries)
	}
	out := make([]types.Entry, n)
	copy(out, ix.entries[:n])
	return out
}

// update applies fn to the entry at pos. Each position has exactly one
// enrichment writer, so updates never race each other, only the lock
// ordering with readers matters.
func (ix *Index) update(pos int, fn func(*types.Entry)) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if pos < 0 || pos >= len(ix.entries) {
		return
	}
	fn(&ix.entries[pos])
}
