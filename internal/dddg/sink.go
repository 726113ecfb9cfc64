package dddg

// Sink is the outbound interface to the downstream consumer (the
// Datapath contract). The builder never holds more than one Sink and
// mutates it only from within its own single-threaded call stack.
//
// This module treats the consumer as an opaque external collaborator;
// graph.go provides a default, in-process implementation used by the
// builder's own tests and by cmd/dddgbuild, but anything satisfying this
// interface can stand in for a real accelerator datapath model.
type Sink interface {
	// InsertNode creates (or returns, if already present) the node
	// object at nid.
	InsertNode(nid int, microop MicroOp) *Node

	// AddDddgEdge appends a directed edge; parID is -1 for memory edges.
	AddDddgEdge(src, sink, parID int)

	// AddFunctionName registers a static function name. Idempotent.
	AddFunctionName(name string)

	// AddArrayBaseAddress registers or refines the base address of a
	// symbolic array.
	AddArrayBaseAddress(label string, base uint64)

	// AddCallArgumentMapping records cross-call register aliasing:
	// calleeReg is fed by callerReg.
	AddCallArgumentMapping(calleeReg, callerReg string)

	// GetNodeFromNodeID looks up an already-inserted node, used to test
	// DMA-load-ness of a prior writer.
	GetNodeFromNodeID(nid int) *Node

	// IsReadyMode controls DMA-load dependency insertion.
	IsReadyMode() bool

	// GetNumOfNodes and GetNumOfEdges are consulted for end-of-build
	// reporting.
	GetNumOfNodes() int
	GetNumOfEdges() int
}
