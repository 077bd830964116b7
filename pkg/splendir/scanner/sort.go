package scanner

import (
	"sort"
	"strings"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// Resort derives a permutation over the rows collected so far, without
// touching the filesystem. It may be called mid-scan (covering exactly the
// rows available at call time), after completion, or after cancellation,
// and calling it twice with the same key over the same row count yields the
// same permutation.
//
// The default key is the structural pre-order the index already holds:
// directories grouped before files at each level, each group alphabetical.
// Its permutation is the identity and direction is ignored, since reversing
// would break the parent-before-child property. All other keys are flat
// global comparisons, stable, with ties broken by path.
func (s *Session) Resort(key types.SortKey, dir types.Direction) []int {
	rows := s.index.Rows(-1)

	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	if key == types.SortDefault {
		return perm
	}

	sort.SliceStable(perm, func(a, b int) bool {
		cmp := compareRows(&rows[perm[a]], &rows[perm[b]], key)
		if dir == types.Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		// Path tie-break keeps equal keys deterministic in either
		// direction.
		return rows[perm[a]].Path < rows[perm[b]].Path
	})

	return perm
}

// compareRows returns -1, 0, or 1 ordering a before b under the given key.
func compareRows(a, b *types.Entry, key types.SortKey) int {
	switch key {
	case types.SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))

	case types.SortSize:
		return compareInt64(a.Size, b.Size)

	case types.SortModTime:
		if a.ModTime.Before(b.ModTime) {
			return -1
		}
		if a.ModTime.After(b.ModTime) {
			return 1
		}
		return 0

	case types.SortType:
		// Directories order before files; within files, by extension.
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Ext(), b.Ext())

	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
