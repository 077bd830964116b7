// Package scanner implements the splendir scan engine: a single pre-order
// directory walker feeding a bounded enrichment pool, an append-only
// randomly-indexable entry store, an in-memory re-sort engine, and a
// statistics aggregator. Consumers hold a Session handle and only read.
package scanner

import (
	"github.com/jamesainslie/splendir/pkg/splendir/config"
)

// Options configures a scan.
type Options struct {
	// Root is the directory to scan.
	Root string

	// IncludeHidden includes dot-prefixed entries.
	IncludeHidden bool

	// FollowSymlinks descends into symlinked directories. Cycles are
	// detected and recorded as error entries.
	FollowSymlinks bool

	// MaxDepth limits traversal depth. Zero means unlimited. Entries at
	// the limit are still listed; directories there are not descended.
	MaxDepth int

	// Hashes enables streamed SHA-256 and MD5 computation per file.
	Hashes bool

	// Sniff enables magic-byte format detection per file.
	Sniff bool

	// Exclude contains glob/prefix patterns for paths to skip.
	Exclude []string

	// Workers is the enrichment pool size. Zero selects a default
	// derived from available parallelism.
	Workers int
}

// DefaultOptions returns options matching a full detailed scan.
func DefaultOptions() Options {
	return Options{
		Root:    config.DefaultPath,
		Hashes:  true,
		Sniff:   true,
		Exclude: nil,
		Workers: config.DefaultWorkers(),
	}
}

// FastOptions returns the depth-limited, hash-skipping preset.
func FastOptions() Options {
	o := DefaultOptions()
	o.Hashes = false
	o.Sniff = false
	o.MaxDepth = config.DefaultFastDepth
	return o
}

// Validate normalizes invalid values in place.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = config.DefaultPath
	}
	if o.Workers < 1 {
		o.Workers = config.DefaultWorkers()
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	return nil
}
