package dddg

import (
	"fmt"
	"strings"
	"testing"
)

// TestInvariantEdgesPointBackward checks that every edge the builder
// emits satisfies src < sink: a node can only depend on something that
// executed before it, never on itself or on something later in program
// order.
func TestInvariantEdgesPointBackward(t *testing.T) {
	trace := chainTrace(8)
	g := buildGraph(t, false, trace)

	if g.GetNumOfEdges() == 0 {
		t.Fatal("expected at least one edge from a register-chained trace")
	}
	for _, e := range g.Edges() {
		if !(e.Src < e.Sink) {
			t.Fatalf("edge %+v violates src < sink", e)
		}
	}
}

// TestInvariantNoDuplicateMemoryEdges checks that three loads of an
// address written once by the same node produce one memory edge per
// load, with no (src, sink) pair appearing more than once.
func TestInvariantNoDuplicateMemoryEdges(t *testing.T) {
	trace := `0,1,f,bb0,i1,Store,0
1,32,1,0,v,
2,64,0x3000,0,p,
0,2,f,bb0,i2,Load,1
1,64,0x3000,0,p,
r,32,1,1,a,
0,3,f,bb0,i3,Load,2
1,64,0x3000,0,p,
r,32,1,1,b,
0,4,f,bb0,i4,Load,3
1,64,0x3000,0,p,
r,32,1,1,c,
`
	g := buildGraph(t, false, trace)

	mem := g.MemoryEdgesOnly()
	if len(mem) != 3 {
		t.Fatalf("got %d memory edges, want 3 (one per load, all from node 0)", len(mem))
	}
	seen := make(map[[2]int]int)
	for _, e := range mem {
		seen[[2]int{e.Src, e.Sink}]++
	}
	for pair, count := range seen {
		if count != 1 {
			t.Fatalf("pair %v appears %d times, want exactly 1", pair, count)
		}
	}
}

// TestInvariantRegisterEdgeParIDBounds checks that every register edge's
// ParID never exceeds the consuming node's own recorded parameter count,
// since ParID always names an operand slot that was actually latched.
func TestInvariantRegisterEdgeParIDBounds(t *testing.T) {
	trace := `0,1,f,bb0,i1,Add,0
r,32,1,1,x,
0,2,f,bb0,i2,Add,1
1,32,1,1,x,
2,32,2,1,y,
r,32,3,1,z,
`
	g := buildGraph(t, false, trace)

	for _, e := range g.RegisterEdgesOnly() {
		node := g.GetNodeFromNodeID(e.Sink)
		if node == nil {
			t.Fatalf("edge %+v names a sink with no node", e)
		}
		if e.ParID < 1 || e.ParID > node.NumParameters {
			t.Fatalf("edge %+v has ParID outside [1, %d]", e, node.NumParameters)
		}
	}
}

// TestInvariantNodeCountMatchesHeaders checks that the node count the
// sink reports equals the number of header lines in the trace, since
// InsertNode is called exactly once per header and never for any other
// record kind.
func TestInvariantNodeCountMatchesHeaders(t *testing.T) {
	trace := chainTrace(5)
	g := buildGraph(t, false, trace)

	headers := 0
	for _, line := range strings.Split(trace, "\n") {
		if strings.HasPrefix(line, "0,") {
			headers++
		}
	}
	if g.GetNumOfNodes() != headers {
		t.Fatalf("got %d nodes, want %d (one per header line)", g.GetNumOfNodes(), headers)
	}
}

// TestInvariantPhiFilterIsIdempotent checks that removing the Phi
// parameter the predecessor filter discards (prev_bbid bbB, while control
// arrived from bbA) leaves the built edge set unchanged.
func TestInvariantPhiFilterIsIdempotent(t *testing.T) {
	trace := `0,10,f,bbA,i0,Add,0
r,32,1,1,x,
0,11,f,bbB,i1,Phi,0
1,32,1,1,x,bbA,
2,32,2,1,y,bbB,
`
	filtered := `0,10,f,bbA,i0,Add,0
r,32,1,1,x,
0,11,f,bbB,i1,Phi,0
1,32,1,1,x,bbA,
`
	first := buildGraph(t, false, trace).Edges()
	second := buildGraph(t, false, filtered).Edges()

	if len(first) != len(second) {
		t.Fatalf("got %d edges first run, %d second run", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("edge %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// TestInvariantIndependentTracesDoNotInteract checks that two traces
// with disjoint register and memory namespaces, when built separately,
// never produce cross edges; each builder's state is private to its own
// Build call.
func TestInvariantIndependentTracesDoNotInteract(t *testing.T) {
	traceA := `0,1,a,bb0,i1,Store,0
1,32,1,0,v,
2,64,0x4000,0,p,
`
	traceB := `0,1,b,bb0,i1,Load,0
1,64,0x4000,0,p,
r,32,0,1,r,
`
	gA := buildGraph(t, false, traceA)
	gB := buildGraph(t, false, traceB)

	if gA.GetNumOfEdges() != 0 {
		t.Fatalf("trace A produced %d edges on its own, want 0", gA.GetNumOfEdges())
	}
	if gB.GetNumOfEdges() != 0 {
		t.Fatalf("trace B (built independently) produced %d edges, want 0: a separately-built Load at an address no store in its own trace ever wrote must not see a phantom writer", gB.GetNumOfEdges())
	}
}

// chainTrace builds a trace of n Add instructions in the same function,
// each one consuming the register the previous one defined, producing a
// straight-line register dependency chain.
func chainTrace(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "0,%d,f,bb0,i%d,Add,0\n", i, i)
		if i > 0 {
			fmt.Fprintf(&b, "1,32,%d,1,reg%d,\n", i-1, i-1)
		}
		fmt.Fprintf(&b, "r,32,%d,1,reg%d,\n", i, i)
	}
	return b.String()
}
