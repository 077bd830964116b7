package scanner

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// hashChunkSize is the fixed read size used when streaming a file through
// the hashers. Files are never loaded whole; the first chunk doubles as
// the sniffing prefix.
const hashChunkSize = 64 * 1024

// enrichBatch runs on an enrichment pool worker. Entries were dispatched in
// traversal order but batches complete in any order; every write goes back
// to the entry's pre-assigned position, so index order is unaffected.
// Cancellation is checked once per batch, not per byte: an in-flight batch
// finishes even after Cancel.
func (s *Session) enrichBatch(positions []int) {
	if s.cancelRequested() {
		return
	}
	for _, pos := range positions {
		s.enrichFile(pos)
	}
}

// enrichFile stats one file and, when requested, hashes and sniffs it.
// Failures become entry errors; they never abort the pool or the scan.
func (s *Session) enrichFile(pos int) {
	row, err := s.index.Row(pos)
	if err != nil {
		return
	}
	path := row.Path

	stat := os.Lstat
	if s.opts.FollowSymlinks {
		stat = os.Stat
	}
	info, statErr := stat(path)
	if statErr != nil {
		s.index.update(pos, func(e *types.Entry) {
			e.Error = &types.EntryError{
				Kind:    types.ErrIO,
				Message: statErr.Error(),
			}
		})
		s.agg.RecordError(path)
		return
	}

	size := info.Size()
	modTime := info.ModTime()

	var sha, md5sum, hint string
	var hashErr error
	errKind := types.ErrHash
	if (s.opts.Hashes || s.opts.Sniff) && info.Mode().IsRegular() {
		f, openErr := os.Open(path)
		if openErr != nil {
			// Unopenable is an IO failure, not a digest failure.
			hashErr = openErr
			errKind = types.ErrIO
		} else {
			sha, md5sum, hint, hashErr = digest(f, s.opts.Hashes, s.opts.Sniff)
			f.Close()
		}
	}

	s.index.update(pos, func(e *types.Entry) {
		e.Size = size
		e.ModTime = modTime
		e.SHA256 = sha
		e.MD5 = md5sum
		e.FormatHint = hint
		if hashErr != nil {
			e.Error = &types.EntryError{
				Kind:    errKind,
				Message: hashErr.Error(),
			}
		}
	})

	if hashErr != nil {
		s.agg.RecordError(path)
		return
	}
	s.agg.RecordFile(size, row.Ext())
}

// digest streams an open file through SHA-256 and MD5 in fixed-size chunks
// and sniffs the format from the first chunk. Either side can be disabled;
// with hashing off only the prefix is read.
func digest(f io.Reader, wantHash, wantSniff bool) (sha, md5sum, hint string, err error) {
	buf := make([]byte, hashChunkSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", "", "", err
	}

	if wantSniff {
		hint = mimetype.Detect(buf[:n]).String()
	}
	if !wantHash {
		return "", "", hint, nil
	}

	shaHasher := sha256.New()
	md5Hasher := md5.New()
	multi := io.MultiWriter(shaHasher, md5Hasher)
	if _, err := multi.Write(buf[:n]); err != nil {
		return "", "", hint, err
	}

	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := multi.Write(buf[:n]); werr != nil {
				return "", "", hint, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", hint, err
		}
	}

	return hexSum(shaHasher), hexSum(md5Hasher), hint, nil
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
