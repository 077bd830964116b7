// Package types provides core data types for the splendir directory scanner.
// It includes the enriched entry record, progress and aggregate snapshots,
// sort keys, and utility functions for parsing and formatting file sizes.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// NoParent is the ParentIndex value for entries directly under the scan root.
// The root itself is never stored as a row.
const NoParent = -1

// ErrorKind classifies a per-entry failure. Entry errors are data, not
// scan failures: the scan continues past them.
type ErrorKind int

const (
	// ErrIO covers stat/read failures: permission denied, broken
	// symlinks, files that vanished mid-scan.
	ErrIO ErrorKind = iota

	// ErrHash marks a failure while streaming a file for hashing.
	// Metadata on the entry remains valid; hash fields stay empty.
	ErrHash

	// ErrCycle marks a directory that was already visited through
	// another path (symlink cycle). The subtree is not descended.
	ErrCycle
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "io"
	case ErrHash:
		return "hash"
	case ErrCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// EntryError records a per-entry failure on the entry itself.
type EntryError struct {
	// Kind classifies the failure.
	Kind ErrorKind `json:"kind"`

	// Message is the underlying error text.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Entry is one filesystem object's enriched metadata record.
// Entries are stored in pre-order directory-walk sequence: a directory's
// subtree always occupies a contiguous index range immediately following it.
type Entry struct {
	// Path is the absolute path to the filesystem object.
	Path string `json:"path"`

	// Name is the base name.
	Name string `json:"name"`

	// IsDir reports whether the entry is a directory.
	IsDir bool `json:"is_dir"`

	// Depth is the distance from the scan root; entries directly under
	// the root have depth 1.
	Depth int `json:"depth"`

	// ParentIndex is the index position of the containing directory,
	// or NoParent for entries directly under the root. It always refers
	// to an earlier position.
	ParentIndex int `json:"parent_index"`

	// Size is the file size in bytes. Zero for directories.
	Size int64 `json:"size"`

	// ModTime is the last modification time.
	ModTime time.Time `json:"mod_time"`

	// SHA256 is the hex-encoded content hash, empty unless hashing was
	// requested and succeeded.
	SHA256 string `json:"sha256,omitempty"`

	// MD5 is the hex-encoded content hash, empty unless hashing was
	// requested and succeeded.
	MD5 string `json:"md5,omitempty"`

	// FormatHint is the sniffed MIME type from magic-byte inspection,
	// empty unless sniffing was requested and succeeded.
	FormatHint string `json:"format_hint,omitempty"`

	// Error is set when enrichment or traversal failed for this entry.
	Error *EntryError `json:"error,omitempty"`
}

// Ext returns the lower-cased file extension including the dot,
// or "" for directories and extensionless files.
func (e *Entry) Ext() string {
	if e.IsDir {
		return ""
	}
	idx := strings.LastIndexByte(e.Name, '.')
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(e.Name[idx:])
}

// HumanSize returns the entry size formatted as a human-readable string.
func (e *Entry) HumanSize() string {
	return FormatSize(e.Size)
}

// ExtStat is the per-extension slice of the aggregate histogram.
type ExtStat struct {
	// Count is the number of files with this extension.
	Count int64 `json:"count"`

	// Size is the total bytes across those files.
	Size int64 `json:"size"`
}

// AggregateSnapshot is a point-in-time view of the aggregator's counters.
// Snapshots taken mid-scan are approximate; the snapshot after completion
// is exact.
type AggregateSnapshot struct {
	// Files is the number of non-directory, non-error entries.
	Files int64 `json:"files"`

	// Dirs is the number of directory entries.
	Dirs int64 `json:"dirs"`

	// TotalSize is the sum of all file sizes in bytes.
	TotalSize int64 `json:"total_size"`

	// Errors is the number of entries recorded with an error.
	Errors int64 `json:"errors"`

	// ErrorPaths lists the paths of the affected entries.
	ErrorPaths []string `json:"error_paths,omitempty"`

	// Extensions is the per-extension count/size histogram.
	// The key is the lower-cased extension including the dot;
	// extensionless files are keyed by "".
	Extensions map[string]ExtStat `json:"extensions,omitempty"`
}

// TotalEntries returns files + dirs + errors.
func (s *AggregateSnapshot) TotalEntries() int64 {
	return s.Files + s.Dirs + s.Errors
}

// ProgressSnapshot reports real-time scan progress. One snapshot is offered
// per processed batch; a slow consumer may miss intermediate snapshots.
type ProgressSnapshot struct {
	// Entries is the number of index rows appended so far.
	Entries int64 `json:"entries"`

	// Files is the number of file entries so far.
	Files int64 `json:"files"`

	// Dirs is the number of directory entries so far.
	Dirs int64 `json:"dirs"`

	// Bytes is the total file bytes observed so far.
	Bytes int64 `json:"bytes"`

	// Errors is the number of error entries so far.
	Errors int64 `json:"errors"`

	// CurrentPath is the path most recently visited by the walker.
	CurrentPath string `json:"current_path"`

	// Elapsed is the time since the scan started.
	Elapsed time.Duration `json:"elapsed"`
}

// SortKey selects the comparison used by the sort engine.
type SortKey int

const (
	// SortDefault is the structural pre-order: directories grouped
	// before files at each level, each group alphabetical.
	SortDefault SortKey = iota

	// SortName compares base names case-insensitively across all rows.
	SortName

	// SortSize compares file sizes.
	SortSize

	// SortModTime compares modification times.
	SortModTime

	// SortType compares directory/file discriminator, then extension.
	SortType
)

// String returns the string representation of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortDefault:
		return "default"
	case SortName:
		return "name"
	case SortSize:
		return "size"
	case SortModTime:
		return "mtime"
	case SortType:
		return "type"
	default:
		return "unknown"
	}
}

// ErrInvalidSortKey indicates an unrecognized sort key name.
var ErrInvalidSortKey = errors.New("invalid sort key")

// ParseSortKey parses a sort key name as accepted on the command line.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SortDefault, nil
	case "name":
		return SortName, nil
	case "size":
		return SortSize, nil
	case "mtime", "modified", "time":
		return SortModTime, nil
	case "type":
		return SortType, nil
	default:
		return SortDefault, fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// Direction is the sort direction.
type Direction int

const (
	// Ascending orders smallest first.
	Ascending Direction = iota

	// Descending orders largest first. Ignored for SortDefault, whose
	// ordering is structural.
	Descending
)

// sizePattern matches size strings like "100M", "2G", "500K", "1.5GB", etc.
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?(?:i?B)?)\s*$`)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ErrNegativeSize indicates that a negative size value was provided.
var ErrNegativeSize = errors.New("size cannot be negative")

// ParseSize parses a human-readable size string and returns the size in
// bytes. It supports plain bytes ("1024"), and K/M/G/T suffixes with
// optional B/iB ("100K", "50MiB", "2GB"). Decimal values are truncated
// to the nearest byte.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeSize
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	case "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, suffix)
	}

	return int64(value * float64(multiplier)), nil
}

// FormatSize converts a size in bytes to a human-readable string using
// binary (IEC) units for consistency with common filesystem tools.
func FormatSize(bytes int64) string {
	return humanize.IBytes(uint64(bytes))
}
