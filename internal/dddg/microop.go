package dddg

import "fmt"

// MicroOp is the normalized low-level opcode category the instrumentor
// emits on every instruction header. The builder only branches on a
// handful of these (Load, Store, GetElementPtr, Alloca, Phi, Call, Ret,
// the two DMA ops); everything else it treats generically through the
// IsFPOp/IsTrigOp predicates below, following the sink contract of the
// downstream Datapath consumer.
//
// Numeric values follow a map-backed String/UnmarshalText pair rather
// than a stringer-generated table, since this set is small and
// hand-maintained.
type MicroOp int

const (
	OpInvalid MicroOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpIndexAdd
	OpLoad
	OpStore
	OpGetElementPtr
	OpAlloca
	OpPhi
	OpCall
	OpRet
	OpBr
	OpSwitch
	OpBitcast
	OpTrunc
	OpSext
	OpZext
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFCmp
	OpSin
	OpCos
	OpSqrt
	OpExp
	OpDMALoad
	OpDMAStore
)

var microOpNames = map[MicroOp]string{
	OpAdd:           "Add",
	OpSub:           "Sub",
	OpMul:           "Mul",
	OpDiv:           "Div",
	OpRem:           "Rem",
	OpIndexAdd:      "IndexAdd",
	OpLoad:          "Load",
	OpStore:         "Store",
	OpGetElementPtr: "GetElementPtr",
	OpAlloca:        "Alloca",
	OpPhi:           "Phi",
	OpCall:          "Call",
	OpRet:           "Ret",
	OpBr:            "Br",
	OpSwitch:        "Switch",
	OpBitcast:       "Bitcast",
	OpTrunc:         "Trunc",
	OpSext:          "Sext",
	OpZext:          "Zext",
	OpFAdd:          "FAdd",
	OpFSub:          "FSub",
	OpFMul:          "FMul",
	OpFDiv:          "FDiv",
	OpFCmp:          "FCmp",
	OpSin:           "Sin",
	OpCos:           "Cos",
	OpSqrt:          "Sqrt",
	OpExp:           "Exp",
	OpDMALoad:       "DMALoad",
	OpDMAStore:      "DMAStore",
}

func (m MicroOp) String() string {
	if s, ok := microOpNames[m]; ok {
		return s
	}
	return fmt.Sprintf("invalid-microop(%d)", m)
}

// UnmarshalText lets MicroOp be read back out of config/golden-trace
// fixtures by name, mirroring support_types.go's SigWrapType et al.
func (m *MicroOp) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range microOpNames {
		if v == text {
			*m = k
			return nil
		}
	}
	return fmt.Errorf("dddg: unknown microop %q", text)
}

// IsFPOp reports whether this op produces a floating point result whose
// precision (single/double) the result handler must latch.
func (m MicroOp) IsFPOp() bool {
	switch m {
	case OpFAdd, OpFSub, OpFMul, OpFDiv, OpFCmp, OpSin, OpCos, OpSqrt, OpExp:
		return true
	default:
		return false
	}
}

// IsTrigOp reports whether this op is a transcendental function, which
// (like Call and DMA ops) may be followed by forward records.
func (m MicroOp) IsTrigOp() bool {
	switch m {
	case OpSin, OpCos, OpSqrt, OpExp:
		return true
	default:
		return false
	}
}

// IsDMAOp reports whether this is either DMA direction.
func (m MicroOp) IsDMAOp() bool {
	return m == OpDMALoad || m == OpDMAStore
}

// IsDMALoad reports whether this is specifically a DMA load.
func (m MicroOp) IsDMALoad() bool {
	return m == OpDMALoad
}

// IsCallOp reports whether this is a Call.
func (m MicroOp) IsCallOp() bool {
	return m == OpCall
}
