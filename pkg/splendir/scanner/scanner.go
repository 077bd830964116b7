package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/jamesainslie/splendir/pkg/splendir/logging"
)

// logger is the package-level logger for scan operations.
var logger = logging.Get("scanner")

// ErrInvalidRoot indicates the scan root does not exist or is not a
// directory. It is the only fatal scan error; everything else is recorded
// per entry.
var ErrInvalidRoot = errors.New("invalid scan root")

// batchSize is the unit of traversal and enrichment work. Cancellation is
// checked and progress is offered once per batch, bounding shutdown latency
// to one in-flight batch.
const batchSize = 10

// Start validates the root, creates a Session, and launches the scan in the
// background. The returned handle is immediately usable for virtual
// scrolling, progress subscription, and cancellation. Cancelling ctx is
// equivalent to calling Cancel on the session.
func Start(ctx context.Context, opts Options) (*Session, error) {
	_ = opts.Validate()

	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	opts.Root = root

	s := newSession(opts)
	logger.Info("scan started", "session", s.ID, "root", root, "workers", opts.Workers)

	go s.run(ctx)
	return s, nil
}

// run drives one scan to completion or cancellation.
func (s *Session) run(ctx context.Context) {
	// Propagate consumer teardown into the cooperative flag.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.Cancel()
		case <-watchDone:
		}
	}()

	workers := pool.New().WithMaxGoroutines(s.opts.Workers)

	w := newWalker(s, workers)
	w.walk()

	// Enrichment of already-dispatched batches finishes even after
	// cancellation stops new appends; positions stay immutable.
	workers.Wait()
	close(watchDone)

	s.finish()

	snap := s.Stats()
	logger.Info("scan finished",
		"session", s.ID,
		"state", s.State().String(),
		"entries", s.Len(),
		"files", snap.Files,
		"dirs", snap.Dirs,
		"errors", snap.Errors,
		"elapsed", time.Since(s.started),
	)
}

// resolveRoot resolves the root path to absolute and verifies it is an
// existing directory.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s: not a directory", ErrInvalidRoot, root)
	}
	return abs, nil
}

// isExcluded checks a path against the exclusion patterns: exact match,
// prefix match for directories, and glob matching against both the base
// name and the full path.
func isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if path == pattern {
			return true
		}
		if len(path) > len(pattern) && path[:len(pattern)+1] == pattern+string(filepath.Separator) {
			return true
		}

		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// newSessionID returns a fresh correlation ID for logging.
func newSessionID() string {
	return uuid.New().String()
}
