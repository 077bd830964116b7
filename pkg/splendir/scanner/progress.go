package scanner

import (
	"time"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// publishProgress offers a snapshot to the progress channel. The send never
// blocks: when the consumer is slow the snapshot is dropped and the next
// batch boundary produces a fresher one. Scan progress never stalls on a
// subscriber.
func (s *Session) publishProgress(current string) {
	snap := types.ProgressSnapshot{
		Entries:     int64(s.index.Len()),
		Files:       s.agg.files.Load(),
		Dirs:        s.agg.dirs.Load(),
		Bytes:       s.agg.bytes.Load(),
		Errors:      s.agg.errorsCnt.Load(),
		CurrentPath: current,
		Elapsed:     time.Since(s.started),
	}

	select {
	case s.progress <- snap:
	default:
	}
}
