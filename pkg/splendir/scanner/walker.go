package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// walker is the traversal source: a single goroutine producing index rows
// in pre-order. Children of each directory are enumerated and sorted before
// descending, so a directory's subtree always occupies a contiguous index
// range immediately following it. File rows are dispatched to the
// enrichment pool in batches; directory metadata is filled in inline.
type walker struct {
	s       *Session
	workers *pool.Pool

	// visited holds canonical identities of directories already entered,
	// scoped to this scan. A revisit through a symlink becomes a cycle
	// error entry instead of a descent.
	visited map[dirIdent]struct{}

	// batch accumulates file positions awaiting enrichment dispatch.
	batch []int

	// sinceCheck counts rows appended since the last batch boundary.
	sinceCheck int

	// stopped latches once cancellation is observed; the recursion
	// unwinds without appending further rows.
	stopped bool
}

func newWalker(s *Session, workers *pool.Pool) *walker {
	return &walker{
		s:       s,
		workers: workers,
		visited: make(map[dirIdent]struct{}),
	}
}

// walk traverses the whole subtree and flushes the final partial batch.
func (w *walker) walk() {
	root := w.s.opts.Root
	if id, ok := identOf(root); ok {
		w.visited[id] = struct{}{}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("root enumeration failed", "session", w.s.ID, "path", root, "error", err)
		w.s.agg.RecordError(root)
	} else {
		w.visitChildren(entries, root, types.NoParent, 1)
	}

	w.flushBatch()
	w.s.publishProgress(root)
}

// child is one enumerated directory entry, classified before sorting.
type child struct {
	name    string
	path    string
	isDir   bool
	symlink bool
}

// visitChildren appends rows for the children of dir in sibling order and
// recurses into subdirectories. parent is the index position of dir, or
// types.NoParent at the top level.
func (w *walker) visitChildren(entries []fs.DirEntry, dir string, parent, depth int) {
	children := w.classify(dir, entries)
	sortChildren(children)

	for _, c := range children {
		if w.stopped {
			return
		}

		if c.isDir {
			w.visitDir(c, parent, depth)
		} else {
			w.visitFile(c, parent, depth)
		}
	}
}

// classify applies the hidden-file and exclusion policy and resolves
// whether each entry behaves as a directory under the current symlink
// policy.
func (w *walker) classify(dir string, entries []fs.DirEntry) []child {
	children := make([]child, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !w.s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		if isExcluded(path, w.s.opts.Exclude) {
			continue
		}

		c := child{
			name:    name,
			path:    path,
			isDir:   entry.IsDir(),
			symlink: entry.Type()&fs.ModeSymlink != 0,
		}

		// A symlink to a directory groups and descends as a
		// directory only when following symlinks.
		if c.symlink && w.s.opts.FollowSymlinks {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				c.isDir = true
			}
		}

		children = append(children, c)
	}
	return children
}

// sortChildren orders a sibling group: directories before files, each
// group ascending case-insensitively, equal folded names broken by the
// case-sensitive byte order.
func sortChildren(children []child) {
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		af, bf := strings.ToLower(a.name), strings.ToLower(b.name)
		if af != bf {
			return af < bf
		}
		return a.name < b.name
	})
}

// visitDir appends a directory row and descends unless a symlink cycle,
// the depth limit, or an enumeration failure stops it.
func (w *walker) visitDir(c child, parent, depth int) {
	row := types.Entry{
		Path:        c.path,
		Name:        c.name,
		IsDir:       true,
		Depth:       depth,
		ParentIndex: parent,
	}
	if info, err := os.Stat(c.path); err == nil {
		row.ModTime = info.ModTime()
	}

	id, haveID := identOf(c.path)
	if haveID {
		if _, seen := w.visited[id]; seen {
			row.Error = &types.EntryError{
				Kind:    types.ErrCycle,
				Message: "directory already visited through another path",
			}
			w.appendRow(row, c.path)
			w.s.agg.RecordError(c.path)
			return
		}
		w.visited[id] = struct{}{}
	}

	pos := w.appendRow(row, c.path)

	if w.s.opts.MaxDepth > 0 && depth >= w.s.opts.MaxDepth {
		// Listed but not descended.
		w.s.agg.RecordDir()
		return
	}

	entries, err := os.ReadDir(c.path)
	if err != nil {
		w.s.index.update(pos, func(e *types.Entry) {
			e.Error = &types.EntryError{
				Kind:    types.ErrIO,
				Message: err.Error(),
			}
		})
		w.s.agg.RecordError(c.path)
		logger.Debug("unreadable directory", "session", w.s.ID, "path", c.path, "error", err)
		return
	}

	w.s.agg.RecordDir()
	w.visitChildren(entries, c.path, pos, depth+1)
}

// visitFile appends a placeholder row and queues it for enrichment.
func (w *walker) visitFile(c child, parent, depth int) {
	pos := w.appendRow(types.Entry{
		Path:        c.path,
		Name:        c.name,
		Depth:       depth,
		ParentIndex: parent,
	}, c.path)

	w.batch = append(w.batch, pos)
	if len(w.batch) >= batchSize {
		w.flushBatch()
	}
}

// appendRow inserts a row, then handles the batch boundary: every
// batchSize appended rows the walker checks cancellation and offers a
// progress snapshot.
func (w *walker) appendRow(row types.Entry, current string) int {
	pos := w.s.index.Append(row)

	w.sinceCheck++
	if w.sinceCheck >= batchSize {
		w.sinceCheck = 0
		w.s.publishProgress(current)
		if w.s.cancelRequested() {
			w.stopped = true
		}
	}
	return pos
}

// flushBatch hands the pending file positions to the enrichment pool.
func (w *walker) flushBatch() {
	if len(w.batch) == 0 {
		return
	}
	positions := make([]int, len(w.batch))
	copy(positions, w.batch)
	w.batch = w.batch[:0]

	w.workers.Go(func() {
		w.s.enrichBatch(positions)
	})
}
