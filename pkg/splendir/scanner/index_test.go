package scanner

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jamesainslie/splendir/pkg/splendir/types"
)

func TestIndexAppendAndRow(t *testing.T) {
	ix := NewIndex()

	if ix.Len() != 0 {
		t.Errorf("expected empty index, got %d", ix.Len())
	}

	p0 := ix.Append(types.Entry{Name: "a"})
	p1 := ix.Append(types.Entry{Name: "b"})
	if p0 != 0 || p1 != 1 {
		t.Errorf("expected positions 0,1, got %d,%d", p0, p1)
	}

	row, err := ix.Row(1)
	if err != nil {
		t.Fatal(err)
	}
	if row.Name != "b" {
		t.Errorf("expected b, got %s", row.Name)
	}

	if _, err := ix.Row(2); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestIndexRowsSnapshot(t *testing.T) {
	ix := NewIndex()
	for i := 0; i < 5; i++ {
		ix.Append(types.Entry{Name: fmt.Sprintf("e%d", i)})
	}

	rows := ix.Rows(3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	all := ix.Rows(-1)
	if len(all) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(all))
	}

	// Snapshots are copies; mutating one does not leak into the store.
	all[0].Name = "mutated"
	row, _ := ix.Row(0)
	if row.Name != "e0" {
		t.Error("snapshot mutation leaked into the index")
	}

	if got := ix.Rows(99); len(got) != 5 {
		t.Errorf("over-long request should clamp, got %d", len(got))
	}
}

func TestIndexUpdateInPlace(t *testing.T) {
	ix := NewIndex()
	pos := ix.Append(types.Entry{Name: "f.txt"})

	ix.update(pos, func(e *types.Entry) {
		e.Size = 42
		e.SHA256 = "abc"
	})

	row, _ := ix.Row(pos)
	if row.Size != 42 || row.SHA256 != "abc" {
		t.Errorf("update not applied: %+v", row)
	}

	// Out-of-range positions are ignored.
	ix.update(99, func(e *types.Entry) { e.Size = 1 })
}

// TestIndexConcurrentReadDuringAppend exercises random access while a
// writer is still appending.
func TestIndexConcurrentReadDuringAppend(t *testing.T) {
	ix := NewIndex()
	const total = 2000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			ix.Append(types.Entry{Name: fmt.Sprintf("e%d", i)})
		}
	}()

	go func() {
		defer wg.Done()
		for ix.Len() < total {
			n := ix.Len()
			if n == 0 {
				continue
			}
			row, err := ix.Row(n - 1)
			if err != nil {
				t.Errorf("row %d within length failed: %v", n-1, err)
				return
			}
			if row.Name == "" {
				t.Error("read an uninitialized row")
				return
			}
		}
	}()

	wg.Wait()

	if ix.Len() != total {
		t.Errorf("expected %d rows, got %d", total, ix.Len())
	}
}
