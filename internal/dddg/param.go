package dddg

import (
	"fmt"
	"strconv"
	"strings"
)

// paramAccum is one entry of the per-instruction address accumulator
// parse_parameter builds up for Load/Store/GetElementPtr/DMA operands.
type paramAccum struct {
	value uint64
	size  int
	label string
}

type paramFields struct {
	size     int
	value    float64
	isFloat  bool
	isReg    bool
	label    string
	prevBBID string
}

func (b *Builder) parseParamLine(rest string) (paramFields, error) {
	fields := strings.Split(rest, ",")
	need := 4
	if b.curMicroOp == OpPhi {
		need = 5
	}
	if len(fields) < need {
		return paramFields{}, fmt.Errorf("param: expected >= %d fields, got %d", need, len(fields))
	}

	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return paramFields{}, fmt.Errorf("param: bad size %q: %w", fields[0], err)
	}
	rawValue := fields[1]
	isFloat := strings.Contains(rawValue, ".")
	value, err := parseNumericValue(rawValue)
	if err != nil {
		return paramFields{}, fmt.Errorf("param: bad value %q: %w", rawValue, err)
	}

	pf := paramFields{
		size:    size,
		value:   value,
		isFloat: isFloat,
		isReg:   fields[2] == "1",
		label:   fields[3],
	}
	if b.curMicroOp == OpPhi {
		pf.prevBBID = fields[4]
	}
	return pf, nil
}

// handleParam processes one operand-slot record. paramID is the slot
// number k as classified from the line's leading tag.
func (b *Builder) handleParam(paramID int, rest string) error {
	pf, err := b.parseParamLine(rest)
	if err != nil {
		return newTraceError(ErrMalformedLine, b.lineNo, err)
	}

	if b.curMicroOp == OpPhi && pf.prevBBID != b.prevBBlock {
		return nil
	}

	if !b.lastParameter {
		b.numParameters = paramID
		b.curNode.setNumParameters(paramID)
		if b.curMicroOp == OpCall {
			b.calleeFunction = pf.label
		}
		b.calleeDynamicFunction = fmt.Sprintf("%s-%d", b.calleeFunction, b.funcs.PeekNextInvocation(b.calleeFunction))
	}
	b.lastParameter = true
	b.lastCallSource = -1

	if pf.isReg {
		uniqueRegID := b.curDynFunc + "-" + pf.label
		if b.curMicroOp == OpCall {
			b.uniqueRegInCallerFunc = uniqueRegID
		}
		if writer, ok := b.regs.LastWriter(uniqueRegID); ok {
			b.edges.AddRegisterEdge(writer, b.nid, paramID)
			if b.curMicroOp == OpCall {
				b.lastCallSource = writer
			}
		} else if (b.curMicroOp == OpStore && paramID == 2) || (b.curMicroOp == OpLoad && paramID == 1) {
			b.regs.SetLastWriter(uniqueRegID, b.nid)
		}
	}

	if b.curMicroOp == OpLoad || b.curMicroOp == OpStore || b.curMicroOp == OpGetElementPtr || b.curNode.IsDMAOp() {
		addr := uint64(pf.value) & b.cfg.AddrMask
		b.paramAddrs = append(b.paramAddrs, paramAccum{value: addr, size: pf.size, label: pf.label})

		switch {
		case paramID == 1 && b.curMicroOp == OpLoad:
			memAddr := b.paramAddrs[len(b.paramAddrs)-1].value
			b.handlePostWriteDependency(memAddr)
			b.curNode.setArrayLabel(pf.label)
			b.sink.AddArrayBaseAddress(pf.label, memAddr)

		case paramID == 2 && b.curMicroOp == OpStore:
			// 2nd arg of store is the pointer; this parameter's own value
			// is the address last-writer bookkeeping keys on.
			memAddr := b.paramAddrs[len(b.paramAddrs)-1].value
			if writerNid, ok := b.mem.LastWriter(memAddr); ok {
				if n := b.sink.GetNodeFromNodeID(writerNid); n != nil && n.IsDMALoad() {
					b.handlePostWriteDependency(memAddr)
				}
			}
			b.mem.MarkWritten(memAddr, 1, b.nid)
			b.curNode.setArrayLabel(pf.label)
			b.sink.AddArrayBaseAddress(pf.label, memAddr)

		case paramID == 1 && b.curMicroOp == OpStore:
			memAddr := b.paramAddrs[0].value
			memSize := pf.size / b.cfg.ByteSize
			// The value slot is IEEE-encoded by width (4 or 8 bytes) even
			// when the value itself is an integer; other widths get a raw
			// integer cast.
			encodeAsFloat := pf.isFloat || memSize == 4 || memSize == 8
			bits, err := ToBits(pf.value, memSize, encodeAsFloat)
			if err != nil {
				if te, ok := err.(*TraceError); ok {
					te.Line = b.lineNo
				}
				return err
			}
			b.curNode.setMemAccessFP(memAddr, 0, memSize, pf.isFloat, bits)

		case paramID == 1 && b.curMicroOp == OpGetElementPtr:
			memAddr := b.paramAddrs[len(b.paramAddrs)-1].value
			b.curNode.setArrayLabel(pf.label)
			b.sink.AddArrayBaseAddress(pf.label, memAddr)

		case paramID == 1 && b.curNode.IsDMAOp():
			b.curNode.setArrayLabel(pf.label)
			// Dependency edges for DMA ops are deferred to the result
			// handler, once base address/offset/size are all known.
		}
	}

	return nil
}

// handlePostWriteDependency adds a RAW/WAW edge from addr's last writer
// to the current node, deduplicated per (src, sink) pair.
func (b *Builder) handlePostWriteDependency(addr uint64) {
	writer, ok := b.mem.LastWriter(addr)
	if !ok {
		return
	}
	b.edges.AddMemoryEdgeIfNew(writer, b.nid)
}
