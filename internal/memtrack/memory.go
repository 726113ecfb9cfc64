package memtrack

import (
	"github.com/sirkon/rbtree"
)

// Memory is a byte-granular last-writer table keyed by address ranges.
//
// The original instrumentor keeps a flat map from every individual byte
// address to its last writer, which is O(size) per DMA operation (it
// literally loops `for addr := base; addr < base+size; addr++`). This
// instead keeps an rbtree-ordered set of disjoint address spans,
// generalized from a token-span-to-node interval structure where spans
// only ever nest or sit disjoint, to one where spans can partially
// overlap, a real possibility here, since two writes of different
// widths into adjacent or overlapping addresses are ordinary program
// behavior, unlike nested syntax spans.
//
// At rest, the tree holds a set of pairwise-disjoint address spans, each
// tagged with the nid that last wrote it. MarkWritten restores that
// invariant after every call by splitting any span it partially
// overlaps before inserting the new one.
type Memory struct {
	tree *rbtree.Tree[*span]
}

// span is a closed byte interval [start, end] tagged with its writer.
type span struct {
	start, end uint64
	nid        int
}

// Cmp orders spans by position: two spans compare equal under Cmp
// whenever they overlap at all, which is exactly the probe rbtree needs
// to locate a conflicting node on insert or to find a node covering a
// point on search.
func (s *span) Cmp(other *span) int {
	if s.end < other.start {
		return -1
	}
	if s.start > other.end {
		return 1
	}
	return 0
}

// NewMemory returns an empty table.
func NewMemory() *Memory {
	return &Memory{tree: rbtree.New[*span]()}
}

// LastWriter returns the nid that last wrote addr, if any.
func (m *Memory) LastWriter(addr uint64) (nid int, ok bool) {
	hit := m.tree.Search(&span{start: addr, end: addr})
	if hit == nil {
		return 0, false
	}
	return hit.nid, true
}

// MarkWritten records nid as having written every byte in
// [base, base+size). It returns the set of distinct nids that previously
// owned any part of that range, in no particular order; callers that
// need a post-write dependency edge from each of them can range over the
// result directly.
func (m *Memory) MarkWritten(base uint64, size int, nid int) (overwritten []int) {
	if size <= 0 {
		return nil
	}

	lo, hi := base, base+uint64(size)-1
	seen := make(map[int]bool)

	for {
		hit := m.tree.Search(&span{start: lo, end: hi})
		if hit == nil {
			break
		}
		if !seen[hit.nid] {
			seen[hit.nid] = true
			overwritten = append(overwritten, hit.nid)
		}

		left := hit.start < lo
		right := hit.end > hi
		m.tree.Delete(hit)

		if left {
			m.tree.InsertReturn(&span{start: hit.start, end: lo - 1, nid: hit.nid})
		}
		if right {
			m.tree.InsertReturn(&span{start: hi + 1, end: hit.end, nid: hit.nid})
		}
	}

	m.tree.InsertReturn(&span{start: lo, end: hi, nid: nid})
	return overwritten
}

// Overlaps returns the distinct nids that wrote any byte currently
// covered by [base, base+size), without changing ownership of any of
// them. Used by handle_post_write_dependency's range form (DMA stores).
//
// This walks whole owned spans in O(log n) per span touched; it only
// degrades towards the original's O(size) behavior across byte ranges
// that were never written (no span to jump over), which in practice are
// rare for DMA transfers that follow a prior bulk write.
func (m *Memory) Overlaps(base uint64, size int) []int {
	if size <= 0 {
		return nil
	}

	lo, hi := base, base+uint64(size)-1
	seen := make(map[int]bool)
	var out []int

	for cur := lo; cur <= hi; {
		hit := m.tree.Search(&span{start: cur, end: cur})
		if hit == nil {
			cur++
			continue
		}
		if !seen[hit.nid] {
			seen[hit.nid] = true
			out = append(out, hit.nid)
		}
		if hit.end == ^uint64(0) {
			break
		}
		cur = hit.end + 1
	}

	return out
}
