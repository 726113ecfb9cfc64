package dddg

// MemAccess describes a node's memory operand, when it has one.
type MemAccess struct {
	BaseAddr uint64
	Offset   uint64
	Size     int
	IsFloat  bool
	Bits     uint64
}

// Node is one dynamic instruction instance. nid is its index in trace
// order and is never reused.
type Node struct {
	NID int

	LineNum         int
	InstID          string
	StaticMethod    string
	DynamicInvoke   int
	MicroOp         MicroOp
	ArrayLabel      string
	DoublePrecision bool
	NumParameters   int
	Mem             *MemAccess
}

// IsFPOp, IsTrigOp, IsDMAOp, IsDMALoad and IsCallOp mirror the predicates
// the sink contract exposes on its own node handles; Node itself
// satisfies them directly so the default in-process Sink (graph.go) can
// hand the builder back the same object it owns.
func (n *Node) IsFPOp() bool    { return n.MicroOp.IsFPOp() }
func (n *Node) IsTrigOp() bool  { return n.MicroOp.IsTrigOp() }
func (n *Node) IsDMAOp() bool   { return n.MicroOp.IsDMAOp() }
func (n *Node) IsDMALoad() bool { return n.MicroOp.IsDMALoad() }
func (n *Node) IsCallOp() bool  { return n.MicroOp.IsCallOp() }

func (n *Node) setLineNum(v int)           { n.LineNum = v }
func (n *Node) setInstID(v string)         { n.InstID = v }
func (n *Node) setStaticMethod(v string)   { n.StaticMethod = v }
func (n *Node) setDynamicInvoke(v int)     { n.DynamicInvoke = v }
func (n *Node) setArrayLabel(v string)     { n.ArrayLabel = v }
func (n *Node) setDoublePrecision(v bool)  { n.DoublePrecision = v }
func (n *Node) setNumParameters(v int)     { n.NumParameters = v }

func (n *Node) setMemAccess(base, offset uint64, size int) {
	n.Mem = &MemAccess{BaseAddr: base, Offset: offset, Size: size}
}

func (n *Node) setMemAccessFP(base, offset uint64, size int, isFloat bool, bits uint64) {
	n.Mem = &MemAccess{BaseAddr: base, Offset: offset, Size: size, IsFloat: isFloat, Bits: bits}
}
