package dddg

// Graph is the default, in-process Sink implementation: it materializes
// exactly what the builder hands it and nothing more. Real deployments
// plug a genuine Datapath model in its place; Graph exists so this
// module is independently testable and runnable without one.
type Graph struct {
	nodes     []*Node
	edges     []Edge
	functions map[string]bool
	arrays    map[string]uint64
	callArgs  []CallArgumentMapping
	readyMode bool
}

// Edge is a materialized (src, sink, parID) triple, with parID == -1 for
// memory-order edges, as the sink contract specifies.
type Edge struct {
	Src, Sink, ParID int
}

// CallArgumentMapping records one caller-to-callee register aliasing.
type CallArgumentMapping struct {
	CalleeReg, CallerReg string
}

// NewGraph returns an empty Graph. readyMode mirrors the config's
// ReadyMode switch and is fixed for the lifetime of the graph, matching
// isReadyMode()'s read-only nature in the original contract.
func NewGraph(readyMode bool) *Graph {
	return &Graph{
		functions: make(map[string]bool),
		arrays:    make(map[string]uint64),
		readyMode: readyMode,
	}
}

func (g *Graph) InsertNode(nid int, microop MicroOp) *Node {
	for len(g.nodes) <= nid {
		g.nodes = append(g.nodes, nil)
	}
	if g.nodes[nid] == nil {
		g.nodes[nid] = &Node{NID: nid, MicroOp: microop}
	}
	return g.nodes[nid]
}

func (g *Graph) AddDddgEdge(src, sink, parID int) {
	g.edges = append(g.edges, Edge{Src: src, Sink: sink, ParID: parID})
}

func (g *Graph) AddFunctionName(name string) {
	g.functions[name] = true
}

// AddArrayBaseAddress registers label's base address the first time it
// is seen; later calls with a different value are a refinement and win,
// matching the original's unconditional map insert/overwrite.
func (g *Graph) AddArrayBaseAddress(label string, base uint64) {
	g.arrays[label] = base
}

func (g *Graph) AddCallArgumentMapping(calleeReg, callerReg string) {
	g.callArgs = append(g.callArgs, CallArgumentMapping{CalleeReg: calleeReg, CallerReg: callerReg})
}

func (g *Graph) GetNodeFromNodeID(nid int) *Node {
	if nid < 0 || nid >= len(g.nodes) {
		return nil
	}
	return g.nodes[nid]
}

func (g *Graph) IsReadyMode() bool { return g.readyMode }

func (g *Graph) GetNumOfNodes() int { return len(g.nodes) }
func (g *Graph) GetNumOfEdges() int { return len(g.edges) }

// Nodes, Edges, Functions, ArrayBase and CallArgumentMappings are
// read-only accessors for tests and for downstream reporting; they are
// not part of the Sink contract itself.
func (g *Graph) Nodes() []*Node             { return g.nodes }
func (g *Graph) Edges() []Edge              { return g.edges }
func (g *Graph) Functions() map[string]bool { return g.functions }

func (g *Graph) ArrayBase(label string) (uint64, bool) {
	v, ok := g.arrays[label]
	return v, ok
}

func (g *Graph) CallArgumentMappings() []CallArgumentMapping { return g.callArgs }

// MemoryEdgesOnly filters Edges to the memory-order subset (ParID == -1),
// the same split the builder keeps internally before flushing both
// tables to the sink in one pass.
func (g *Graph) MemoryEdgesOnly() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.ParID == -1 {
			out = append(out, e)
		}
	}
	return out
}

// RegisterEdgesOnly filters Edges to the register-flow subset (ParID >= 0).
func (g *Graph) RegisterEdgesOnly() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.ParID >= 0 {
			out = append(out, e)
		}
	}
	return out
}
