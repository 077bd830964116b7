package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// Aggregator maintains running scan totals. Counter updates are commutative,
// so enrichment workers may record entries in any order; the totals after
// completion are exact regardless. Error entries count toward Errors only:
// they contribute to neither the file count nor the size histogram.
type Aggregator struct {
	files     atomic.Int64
	dirs      atomic.Int64
	bytes     atomic.Int64
	errorsCnt atomic.Int64

	mu         sync.Mutex
	exts       map[string]types.ExtStat
	errorPaths []string
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		exts: make(map[string]types.ExtStat),
	}
}

// RecordFile accounts one successfully enriched file.
func (a *Aggregator) RecordFile(size int64, ext string) {
	a.files.Add(1)
	a.bytes.Add(size)

	a.mu.Lock()
	st := a.exts[ext]
	st.Count++
	st.Size += size
	a.exts[ext] = st
	a.mu.Unlock()
}

// RecordDir accounts one directory entry.
func (a *Aggregator) RecordDir() {
	a.dirs.Add(1)
}

// RecordError accounts one error entry.
func (a *Aggregator) RecordError(path string) {
	a.errorsCnt.Add(1)

	a.mu.Lock()
	a.errorPaths = append(a.errorPaths, path)
	a.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the totals. It is safe to call
// concurrently with ongoing updates; a snapshot taken mid-scan may be
// slightly behind the index.
func (a *Aggregator) Snapshot() types.AggregateSnapshot {
	snap := types.AggregateSnapshot{
		Files:     a.files.Load(),
		Dirs:      a.dirs.Load(),
		TotalSize: a.bytes.Load(),
		Errors:    a.errorsCnt.Load(),
	}

	a.mu.Lock()
	snap.Extensions = make(map[string]types.ExtStat, len(a.exts))
	for ext, st := range a.exts {
		snap.Extensions[ext] = st
	}
	snap.ErrorPaths = append([]string(nil), a.errorPaths...)
	a.mu.Unlock()

	return snap
}

// QuickStats walks the subtree with fastwalk and returns aggregate totals
// without building an index. Counter updates are commutative, so the
// parallel, order-undefined walk is safe. Hash and sniff options are
// ignored; this is the stats-only path behind the analysis mode.
func QuickStats(ctx context.Context, opts Options) (types.AggregateSnapshot, error) {
	_ = opts.Validate()

	root, err := resolveRoot(opts.Root)
	if err != nil {
		return types.AggregateSnapshot{}, err
	}

	agg := NewAggregator()
	conf := fastwalk.Config{
		Follow:     opts.FollowSymlinks,
		NumWorkers: opts.Workers,
	}

	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			agg.RecordError(path)
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if isExcluded(path, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.MaxDepth > 0 && relDepth(root, path) > opts.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			agg.RecordDir()
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			agg.RecordError(path)
			return nil
		}
		agg.RecordFile(info.Size(), strings.ToLower(filepath.Ext(name)))
		return nil
	})

	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return agg.Snapshot(), walkErr
	}
	return agg.Snapshot(), nil
}

// relDepth returns the depth of path below root; direct children are 1.
func relDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
