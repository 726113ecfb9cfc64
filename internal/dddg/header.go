package dddg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/accel-sim/dddg/internal/funcstack"
)

// headerFields is the parsed form of an instruction header record:
// "<line_num>,<static_function>,<bblockid>,<instid>,<microop>,<dyn_inst_count>".
type headerFields struct {
	lineNum      int
	staticFunc   string
	bblockID     string
	instID       string
	microop      MicroOp
	dynInstCount int
}

func parseHeaderLine(rest string) (headerFields, error) {
	fields := strings.Split(rest, ",")
	if len(fields) < 6 {
		return headerFields{}, fmt.Errorf("header: expected 6 fields, got %d", len(fields))
	}
	lineNum, err := strconv.Atoi(fields[0])
	if err != nil {
		return headerFields{}, fmt.Errorf("header: bad line_num %q: %w", fields[0], err)
	}
	microop, err := parseMicroOp(fields[4])
	if err != nil {
		return headerFields{}, fmt.Errorf("header: bad microop %q: %w", fields[4], err)
	}
	dynInstCount, err := strconv.Atoi(fields[5])
	if err != nil {
		return headerFields{}, fmt.Errorf("header: bad dyn_inst_count %q: %w", fields[5], err)
	}
	return headerFields{
		lineNum:      lineNum,
		staticFunc:   fields[1],
		bblockID:     fields[2],
		instID:       fields[3],
		microop:      microop,
		dynInstCount: dynInstCount,
	}, nil
}

// parseMicroOp accepts either the numeric wire encoding an instrumentor
// would emit or the mnemonic text form, so fixtures stay readable without
// needing a real instrumentor to generate them.
func parseMicroOp(s string) (MicroOp, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return MicroOp(n), nil
	}
	var m MicroOp
	if err := m.UnmarshalText([]byte(s)); err != nil {
		return OpInvalid, err
	}
	return m, nil
}

// handleHeader processes an instruction header: mint the next node id,
// resolve which dynamic function instance it belongs to, and reset the
// per-instruction parameter accumulators.
//
// The active-function-stack resolution mirrors parse_instruction_line's
// branch structure: a Ret pops the stack only when the static name on top
// of it matches the header's function. A Ret from any other function
// leaves the existing frames in place and pushes a fresh frame for that
// function, as any non-matching header does.
func (b *Builder) handleHeader(h headerFields) error {
	b.nid++
	b.prevMicroOp = b.curMicroOp
	b.curMicroOp = h.microop

	node := b.sink.InsertNode(b.nid, h.microop)
	node.setLineNum(h.lineNum)
	node.setInstID(h.instID)
	node.setStaticMethod(h.staticFunc)
	b.sink.AddFunctionName(h.staticFunc)
	b.curNode = node

	invocationCount := 0
	found := false

	if !b.funcs.Empty() {
		top := b.funcs.Top()
		if top.Static == h.staticFunc {
			var dynFrame funcstack.Frame
			if b.prevMicroOp == OpCall && b.calleeFunction == h.staticFunc {
				count, ok := b.funcs.IncrementExisting(h.staticFunc)
				if !ok {
					return newTraceError(ErrRecursiveInvocationMissing, b.lineNo,
						fmt.Errorf("recursive re-entry into %q with no prior invocation", h.staticFunc))
				}
				dynFrame = funcstack.Frame{Static: h.staticFunc, Count: count}
				b.funcs.Push(dynFrame)
			} else {
				dynFrame = top
			}
			invocationCount = dynFrame.Count
			b.curDynFunc = dynFrame.DynamicID()
			found = true
			if h.microop == OpRet {
				b.funcs.Pop()
			}
		}
	}
	if !found {
		count := b.funcs.NextInvocation(h.staticFunc)
		dynFrame := funcstack.Frame{Static: h.staticFunc, Count: count}
		b.funcs.Push(dynFrame)
		invocationCount = count
		b.curDynFunc = dynFrame.DynamicID()
	}

	if h.microop == OpPhi && b.prevMicroOp != OpPhi {
		b.prevBBlock = b.curBBlock
	}
	b.curBBlock = h.bblockID

	node.setDynamicInvoke(invocationCount)

	b.lastParameter = false
	b.numParameters = 0
	b.paramAddrs = b.paramAddrs[:0]

	return nil
}
