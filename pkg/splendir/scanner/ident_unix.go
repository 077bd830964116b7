//go:build unix

package scanner

import "golang.org/x/sys/unix"

// dirIdent is the canonical identity of a directory, used to detect
// symlink cycles within one scan.
type dirIdent struct {
	dev uint64
	ino uint64
}

// identOf resolves a directory's device+inode identity. Stat follows
// symlinks, so a link back into the tree maps to its target's identity.
func identOf(path string) (dirIdent, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return dirIdent{}, false
	}
	return dirIdent{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
