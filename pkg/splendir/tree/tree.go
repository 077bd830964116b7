// Package tree reconstructs a directory hierarchy from the flat row model
// produced by the scanner and renders it as an indented branch diagram.
package tree

import (
	"path/filepath"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// Node is a single entry in the reconstructed hierarchy.
type Node struct {
	// Name is the base name of the entry.
	Name string

	// Path is the absolute path of the entry.
	Path string

	// IsDir reports whether the entry is a directory.
	IsDir bool

	// Size is the entry size in bytes; zero for directories.
	Size int64

	// Row is the position of this entry in the flat scan index, or -1
	// for the synthetic root.
	Row int

	// Err carries the per-entry scan error, if any.
	Err *types.EntryError

	// Children holds child nodes in scan order.
	Children []*Node
}

// Build reconstructs the hierarchy from a flat row snapshot. Rows arrive in
// pre-order with every parent preceding its children, so a single forward
// pass resolves all parent references. The returned root is a synthetic node
// for the scanned path itself; top-level rows become its children.
func Build(root string, rows []types.Entry) *Node {
	rootNode := &Node{
		Name:  filepath.Base(root),
		Path:  root,
		IsDir: true,
		Row:   -1,
	}

	nodes := make([]*Node, len(rows))
	for i := range rows {
		row := &rows[i]
		node := &Node{
			Name:  row.Name,
			Path:  row.Path,
			IsDir: row.IsDir,
			Size:  row.Size,
			Row:   i,
			Err:   row.Error,
		}
		nodes[i] = node

		if row.ParentIndex == types.NoParent {
			rootNode.Children = append(rootNode.Children, node)
		} else {
			parent := nodes[row.ParentIndex]
			parent.Children = append(parent.Children, node)
		}
	}

	return rootNode
}

// Walk visits the node and all descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// CountByType tallies entries per file type classification, excluding the
// synthetic root.
func (n *Node) CountByType() map[FileType]int {
	counts := make(map[FileType]int)
	n.Walk(func(node *Node) {
		if node.Row < 0 {
			return
		}
		counts[Classify(node.Name, node.IsDir)]++
	})
	return counts
}
