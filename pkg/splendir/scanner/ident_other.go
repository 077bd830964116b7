//go:build !unix

package scanner

import "path/filepath"

// dirIdent is the canonical identity of a directory, used to detect
// symlink cycles within one scan. Without stable inode numbers the
// fully-resolved path serves as the identity.
type dirIdent struct {
	resolved string
}

func identOf(path string) (dirIdent, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return dirIdent{}, false
	}
	return dirIdent{resolved: resolved}, true
}
