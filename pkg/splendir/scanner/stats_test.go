package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

func TestAggregatorCounters(t *testing.T) {
	agg := NewAggregator()

	agg.RecordFile(100, ".txt")
	agg.RecordFile(200, ".txt")
	agg.RecordFile(50, "")
	agg.RecordDir()
	agg.RecordError("/bad/path")

	snap := agg.Snapshot()
	if snap.Files != 3 {
		t.Errorf("expected 3 files, got %d", snap.Files)
	}
	if snap.Dirs != 1 {
		t.Errorf("expected 1 dir, got %d", snap.Dirs)
	}
	if snap.TotalSize != 350 {
		t.Errorf("expected 350 bytes, got %d", snap.TotalSize)
	}
	if snap.Errors != 1 || len(snap.ErrorPaths) != 1 {
		t.Errorf("expected 1 recorded error, got %d (%v)", snap.Errors, snap.ErrorPaths)
	}

	txt := snap.Extensions[".txt"]
	if txt.Count != 2 || txt.Size != 300 {
		t.Errorf("unexpected .txt histogram slice: %+v", txt)
	}
	none := snap.Extensions[""]
	if none.Count != 1 || none.Size != 50 {
		t.Errorf("unexpected extensionless slice: %+v", none)
	}
}

// TestAggregatorCommutative verifies totals are order-independent under
// concurrent recording.
func TestAggregatorCommutative(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				agg.RecordFile(10, ".dat")
			}
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	if snap.Files != 800 || snap.TotalSize != 8000 {
		t.Errorf("expected 800 files / 8000 bytes, got %d / %d", snap.Files, snap.TotalSize)
	}
	if dat := snap.Extensions[".dat"]; dat.Count != 800 {
		t.Errorf("histogram lost updates: %+v", dat)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	agg := NewAggregator()
	agg.RecordFile(1, ".a")

	snap := agg.Snapshot()
	snap.Extensions[".a"] = types.ExtStat{Count: 99, Size: 99}

	if agg.Snapshot().Extensions[".a"].Count != 1 {
		t.Error("snapshot mutation leaked into the aggregator")
	}
}

func TestQuickStats(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("123"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := QuickStats(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatal(err)
	}

	if snap.Files != 2 {
		t.Errorf("expected 2 files (hidden skipped), got %d", snap.Files)
	}
	if snap.Dirs != 1 {
		t.Errorf("expected 1 dir, got %d", snap.Dirs)
	}
	if snap.TotalSize != 8 {
		t.Errorf("expected 8 bytes, got %d", snap.TotalSize)
	}
}

func TestQuickStatsInvalidRoot(t *testing.T) {
	_, err := QuickStats(context.Background(), Options{Root: "/nonexistent/xyzzy"})
	if !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestRelDepth(t *testing.T) {
	tests := []struct {
		root string
		path string
		want int
	}{
		{"/scan", "/scan", 0},
		{"/scan", "/scan/a", 1},
		{"/scan", "/scan/a/b", 2},
		{"/scan", "/scan/a/b/c.txt", 3},
	}

	for _, tt := range tests {
		if got := relDepth(tt.root, tt.path); got != tt.want {
			t.Errorf("relDepth(%q, %q) = %d, want %d", tt.root, tt.path, got, tt.want)
		}
	}
}
