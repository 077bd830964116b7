package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

// fixtureRows mirrors the flat model for:
//
//	scan/
//	├── a/
//	│   └── x.txt
//	├── b/
//	│   └── y.bin
//	└── z.log
func fixtureRows() []types.Entry {
	return []types.Entry{
		{Path: "/scan/a", Name: "a", IsDir: true, Depth: 1, ParentIndex: types.NoParent},
		{Path: "/scan/a/x.txt", Name: "x.txt", Depth: 2, ParentIndex: 0, Size: 6},
		{Path: "/scan/b", Name: "b", IsDir: true, Depth: 1, ParentIndex: types.NoParent},
		{Path: "/scan/b/y.bin", Name: "y.bin", Depth: 2, ParentIndex: 2, Size: 4},
		{Path: "/scan/z.log", Name: "z.log", Depth: 1, ParentIndex: types.NoParent, Size: 9},
	}
}

func TestBuild(t *testing.T) {
	root := Build("/scan", fixtureRows())

	assert.Equal(t, "scan", root.Name)
	assert.True(t, root.IsDir)
	assert.Equal(t, -1, root.Row)
	require.Len(t, root.Children, 3)

	a := root.Children[0]
	assert.Equal(t, "a", a.Name)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "x.txt", a.Children[0].Name)
	assert.Equal(t, 1, a.Children[0].Row)

	b := root.Children[1]
	assert.Equal(t, "b", b.Name)
	require.Len(t, b.Children, 1)
	assert.Equal(t, "y.bin", b.Children[0].Name)

	z := root.Children[2]
	assert.Equal(t, "z.log", z.Name)
	assert.Empty(t, z.Children)
}

func TestBuildEmpty(t *testing.T) {
	root := Build("/scan", nil)
	assert.Equal(t, "scan", root.Name)
	assert.Empty(t, root.Children)
}

func TestWalkVisitsPreOrder(t *testing.T) {
	root := Build("/scan", fixtureRows())

	var visited []string
	root.Walk(func(n *Node) {
		visited = append(visited, n.Name)
	})

	assert.Equal(t, []string{"scan", "a", "x.txt", "b", "y.bin", "z.log"}, visited)
}

func TestCountByType(t *testing.T) {
	root := Build("/scan", fixtureRows())
	counts := root.CountByType()

	assert.Equal(t, 2, counts[TypeDirectory])
	assert.Equal(t, 1, counts[TypeDocument])   // x.txt
	assert.Equal(t, 1, counts[TypeExecutable]) // y.bin
	assert.Equal(t, 1, counts[TypeOther])      // z.log
	assert.NotContains(t, counts, TypeImage)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  FileType
	}{
		{"anything", true, TypeDirectory},
		{"run.sh", false, TypeExecutable},
		{"data.tar", false, TypeArchive},
		{"photo.JPG", false, TypeImage},
		{"notes.md", false, TypeDocument},
		{"main.go", false, TypeSource},
		{"config.yaml", false, TypeConfig},
		{"song.flac", false, TypeAudio},
		{"clip.webm", false, TypeVideo},
		{"mystery.xyz", false, TypeOther},
		{"README", false, TypeOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.name, tt.isDir), tt.name)
	}
}

func TestFileTypeString(t *testing.T) {
	assert.Equal(t, "Directory", TypeDirectory.String())
	assert.Equal(t, "Source Code", TypeSource.String())
	assert.Equal(t, "File", TypeOther.String())
}

func TestFormatASCII(t *testing.T) {
	root := Build("/scan", fixtureRows())
	f := NewFormatter(FormatOptions{Unicode: false})

	got := f.Format(root)
	want := "scan\n" +
		"|--- a\n" +
		"|   `--- x.txt\n" +
		"|--- b\n" +
		"|   `--- y.bin\n" +
		"`--- z.log\n"
	assert.Equal(t, want, got)
}

func TestFormatUnicode(t *testing.T) {
	root := Build("/scan", fixtureRows())
	f := NewFormatter(DefaultFormatOptions())

	got := f.Format(root)
	assert.Contains(t, got, "├─── a")
	assert.Contains(t, got, "└─── z.log")
	assert.Contains(t, got, "│   └─── x.txt")
}

func TestFormatShowSizes(t *testing.T) {
	root := Build("/scan", fixtureRows())
	f := NewFormatter(FormatOptions{Unicode: true, ShowSizes: true})

	got := f.Format(root)
	assert.Contains(t, got, "x.txt (6 B)")
	// Directories never carry a size suffix.
	assert.NotContains(t, got, "a (")
}

func TestFormatErrorAnnotation(t *testing.T) {
	rows := []types.Entry{
		{Path: "/scan/locked", Name: "locked", IsDir: true, Depth: 1, ParentIndex: types.NoParent,
			Error: &types.EntryError{Kind: types.ErrIO, Message: "permission denied"}},
	}
	root := Build("/scan", rows)
	f := NewFormatter(DefaultFormatOptions())

	assert.Contains(t, f.Format(root), "locked [io]")
}
