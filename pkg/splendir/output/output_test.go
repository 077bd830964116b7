package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

func fixtureResult() *Result {
	mod := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return &Result{
		Root: "/scan",
		Rows: []types.Entry{
			{Path: "/scan/a", Name: "a", IsDir: true, Depth: 1, ParentIndex: types.NoParent, ModTime: mod},
			{Path: "/scan/a/x.txt", Name: "x.txt", Depth: 2, ParentIndex: 0, Size: 6, ModTime: mod,
				SHA256: "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
				MD5:    "b1946ac92492d2347c6235b4d2611184", FormatHint: "text/plain; charset=utf-8"},
			{Path: "/scan/z.log", Name: "z.log", Depth: 1, ParentIndex: types.NoParent, Size: 9, ModTime: mod},
		},
		Stats: types.AggregateSnapshot{
			Files:     2,
			Dirs:      1,
			TotalSize: 15,
			Extensions: map[string]types.ExtStat{
				".txt": {Count: 1, Size: 6},
				".log": {Count: 1, Size: 9},
			},
		},
		Duration: 42 * time.Millisecond,
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", func() Formatter { return &TableFormatter{} })

	f, err := reg.Get("x")
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = reg.Get("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"x"}, reg.Available())
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	for _, name := range []string{"table", "tree", "csv", "analysis"} {
		f, err := Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f, name)
	}
	assert.Contains(t, Available(), "table")
}

func TestResultAt(t *testing.T) {
	r := fixtureResult()

	assert.Equal(t, "a", r.At(0).Name)

	r.Order = []int{2, 1, 0}
	assert.Equal(t, "z.log", r.At(0).Name)
	assert.Equal(t, "a", r.At(2).Name)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, fixtureResult()))
	out := buf.String()

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/scan/a/x.txt")
	assert.Contains(t, out, "5891b5b522d5df08") // truncated digest
	assert.Contains(t, out, "2026-03-14 09:26:53")
	assert.Contains(t, out, "2 files, 1 directories, 15 B total")
}

func TestTableFormatterCancelled(t *testing.T) {
	r := fixtureResult()
	r.Cancelled = true

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, r))
	assert.Contains(t, buf.String(), "(cancelled)")
}

func TestTableFormatterErrorAnnotation(t *testing.T) {
	r := fixtureResult()
	r.Rows[2].Error = &types.EntryError{Kind: types.ErrIO, Message: "permission denied"}
	r.Stats.Errors = 1

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, r))
	assert.Contains(t, buf.String(), "[io: permission denied]")
	assert.Contains(t, buf.String(), "1 errors")
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Format(&buf, fixtureResult()))
	out := buf.String()

	assert.Contains(t, out, "name,path,dir,depth,size,modified,sha256,md5,format,error")
	assert.Contains(t, out, "x.txt,/scan/a/x.txt,false,2,6,2026-03-14T09:26:53Z")
	assert.Contains(t, out, "a,/scan/a,true,1,0")
	assert.Contains(t, out, "text/plain; charset=utf-8")
}

func TestCSVFormatterRespectsOrder(t *testing.T) {
	r := fixtureResult()
	r.Order = []int{2, 0, 1}

	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Format(&buf, r))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("z.log,")))
}

func TestTreeFormatter(t *testing.T) {
	r := fixtureResult()
	r.Unicode = true

	var buf bytes.Buffer
	require.NoError(t, (&TreeFormatter{}).Format(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "scan\n")
	assert.Contains(t, out, "├─── a")
	assert.Contains(t, out, "└─── z.log (9 B)")
	assert.Contains(t, out, "x.txt (6 B)")
}

func TestAnalysisFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&AnalysisFormatter{}).Format(&buf, fixtureResult()))
	out := buf.String()

	assert.Contains(t, out, "Root: /scan")
	assert.Contains(t, out, "Files: 2")
	assert.Contains(t, out, "Total: 15 B")
	assert.Contains(t, out, "Largest extensions")
	assert.Contains(t, out, ".log")
	assert.Contains(t, out, "By type")
	assert.Contains(t, out, "Directory")
}

func TestAnalysisFormatterErrors(t *testing.T) {
	r := fixtureResult()
	r.Stats.Errors = 2
	r.Stats.ErrorPaths = []string{"/scan/locked", "/scan/gone.txt"}

	var buf bytes.Buffer
	require.NoError(t, (&AnalysisFormatter{}).Format(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "Errors (2)")
	assert.Contains(t, out, "/scan/locked")
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "-", shortDigest(""))
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "0123456789abcdef", shortDigest("0123456789abcdef0123"))
}
