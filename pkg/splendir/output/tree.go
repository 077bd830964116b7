package output

import (
	"bytes"

	"github.com/jamesainslie/splendir/pkg/splendir/tree"
)

// TreeFormatter renders the entries as a branch diagram rooted at the
// scanned path. Rows are consumed in index order; a resort permutation is
// ignored since the hierarchy dictates placement.
type TreeFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *TreeFormatter) Format(w *bytes.Buffer, r *Result) error {
	root := tree.Build(r.Root, r.Rows)

	formatter := tree.NewFormatter(tree.FormatOptions{
		Colorize:  r.Color,
		Unicode:   r.Unicode,
		ShowSizes: true,
	})
	w.WriteString(formatter.Format(root))
	return nil
}

func init() {
	Register("tree", func() Formatter {
		return &TreeFormatter{}
	})
}

// Ensure TreeFormatter implements Formatter.
var _ Formatter = (*TreeFormatter)(nil)
