// Package config provides configuration management for splendir.
package config

import "runtime"

// Default configuration values for splendir.
const (
	// DefaultPath is the default path to scan when none is specified.
	DefaultPath = "."

	// DefaultFastDepth is the traversal depth limit used by fast mode.
	DefaultFastDepth = 3

	// DefaultAnalyzeDepth is the traversal depth limit used by the
	// analysis mode.
	DefaultAnalyzeDepth = 20

	// maxWorkers caps the enrichment pool to avoid descriptor
	// exhaustion on large machines.
	maxWorkers = 32
)

// DefaultExclusions contains paths that should be excluded from scanning
// by default.
var DefaultExclusions = []string{
	"/proc",
	"/sys",
	"/dev",
}

// DefaultWorkers returns the default enrichment pool size: the available
// parallelism, clamped to [2, 32].
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 2 {
		n = 2
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}
