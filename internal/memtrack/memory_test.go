package memtrack

import (
	"reflect"
	"sort"
	"testing"
)

func sorted(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func TestMemorySingleWriterQuery(t *testing.T) {
	m := NewMemory()
	m.MarkWritten(0x1000, 16, 5)

	nid, ok := m.LastWriter(0x1004)
	if !ok || nid != 5 {
		t.Fatalf("got (%d,%v), want (5,true)", nid, ok)
	}

	if _, ok := m.LastWriter(0x2000); ok {
		t.Fatal("expected no writer at an untouched address")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()
	m.MarkWritten(0x2000, 8, 1)

	overwritten := m.MarkWritten(0x2000, 8, 2)
	if !reflect.DeepEqual(sorted(overwritten), []int{1}) {
		t.Fatalf("got %v, want [1]", overwritten)
	}

	nid, ok := m.LastWriter(0x2003)
	if !ok || nid != 2 {
		t.Fatalf("got (%d,%v), want (2,true)", nid, ok)
	}
}

func TestMemoryPartialOverlapSplit(t *testing.T) {
	m := NewMemory()
	m.MarkWritten(0x1000, 16, 1) // [0x1000, 0x100F] by node 1

	// Overwrite four bytes in the middle with node 2, leaving two remainders of node 1.
	m.MarkWritten(0x1004, 4, 2) // [0x1004, 0x1007]

	if nid, ok := m.LastWriter(0x1000); !ok || nid != 1 {
		t.Fatalf("left remainder: got (%d,%v), want (1,true)", nid, ok)
	}
	if nid, ok := m.LastWriter(0x1005); !ok || nid != 2 {
		t.Fatalf("overwritten middle: got (%d,%v), want (2,true)", nid, ok)
	}
	if nid, ok := m.LastWriter(0x100F); !ok || nid != 1 {
		t.Fatalf("right remainder: got (%d,%v), want (1,true)", nid, ok)
	}
}

func TestMemoryOverlapsDMARange(t *testing.T) {
	m := NewMemory()
	m.MarkWritten(0x1000, 4, 1)
	m.MarkWritten(0x1004, 4, 2)
	m.MarkWritten(0x1008, 4, 3)

	got := sorted(m.Overlaps(0x1000, 0x10))
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Overlaps must not mutate ownership.
	if nid, ok := m.LastWriter(0x1001); !ok || nid != 1 {
		t.Fatalf("Overlaps mutated ownership: got (%d,%v)", nid, ok)
	}
}

func TestMemoryDMALoadThenOrdinaryStore(t *testing.T) {
	// S5/boundary case: DMA load covers [0x1000,0x1010), a later store at
	// 0x1004 must see the DMA load as the last writer before overwriting.
	m := NewMemory()
	m.MarkWritten(0x1000, 0x10, 100) // DMA load nid=100

	nid, ok := m.LastWriter(0x1004)
	if !ok || nid != 100 {
		t.Fatalf("got (%d,%v), want (100,true)", nid, ok)
	}

	overwritten := m.MarkWritten(0x1004, 4, 101) // ordinary store nid=101
	if !reflect.DeepEqual(overwritten, []int{100}) {
		t.Fatalf("got %v, want [100]", overwritten)
	}
}
