package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1024", 1024},
		{"100K", 100 * KiB},
		{"1M", MiB},
		{"1.5M", MiB + MiB/2},
		{"2G", 2 * GiB},
		{"1T", TiB},
		{"50MiB", 50 * MiB},
		{"2GB", 2 * GiB},
		{" 10k ", 10 * KiB},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	_, err := ParseSize("")
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ParseSize("abc")
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ParseSize("-5M")
	assert.ErrorIs(t, err, ErrNegativeSize)

	_, err = ParseSize("10X")
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "1.0 GiB", FormatSize(GiB))
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input string
		want  SortKey
	}{
		{"", SortDefault},
		{"default", SortDefault},
		{"name", SortName},
		{"Size", SortSize},
		{"mtime", SortModTime},
		{"modified", SortModTime},
		{"time", SortModTime},
		{"type", SortType},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseSortKey("bogus")
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestEntryExt(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  string
	}{
		{"file.TXT", false, ".txt"},
		{"archive.tar.gz", false, ".gz"},
		{"Makefile", false, ""},
		{".bashrc", false, ""},
		{"docs.d", true, ""},
	}

	for _, tt := range tests {
		e := Entry{Name: tt.name, IsDir: tt.isDir}
		assert.Equal(t, tt.want, e.Ext(), tt.name)
	}
}

func TestEntryError(t *testing.T) {
	e := &EntryError{Kind: ErrCycle, Message: "already visited"}
	assert.Equal(t, "cycle: already visited", e.Error())

	assert.Equal(t, "io", ErrIO.String())
	assert.Equal(t, "hash", ErrHash.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}

func TestAggregateSnapshotTotalEntries(t *testing.T) {
	s := AggregateSnapshot{Files: 3, Dirs: 2, Errors: 1}
	assert.Equal(t, int64(6), s.TotalEntries())
}

func TestSortKeyString(t *testing.T) {
	assert.Equal(t, "default", SortDefault.String())
	assert.Equal(t, "size", SortSize.String())
	assert.Equal(t, "mtime", SortModTime.String())
	assert.Equal(t, "unknown", SortKey(42).String())
}
