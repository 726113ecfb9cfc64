package dddg

import (
	"fmt"
	"strconv"
	"strings"
)

type resultFields struct {
	size    int
	value   float64
	isFloat bool
	isReg   bool
	label   string
}

func (b *Builder) parseResultLine(rest string) (resultFields, error) {
	fields := strings.Split(rest, ",")
	if len(fields) < 4 {
		return resultFields{}, fmt.Errorf("result: expected >= 4 fields, got %d", len(fields))
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return resultFields{}, fmt.Errorf("result: bad size %q: %w", fields[0], err)
	}
	rawValue := fields[1]
	isFloat := strings.Contains(rawValue, ".")
	value, err := parseNumericValue(rawValue)
	if err != nil {
		return resultFields{}, fmt.Errorf("result: bad value %q: %w", rawValue, err)
	}
	return resultFields{
		size:    size,
		value:   value,
		isFloat: isFloat,
		isReg:   fields[2] == "1",
		label:   fields[3],
	}, nil
}

// handleResult processes a result record, updating the register that now
// holds this instruction's value and attaching memory-access descriptors
// for Alloca/Load/DMA ops.
func (b *Builder) handleResult(rest string) error {
	rf, err := b.parseResultLine(rest)
	if err != nil {
		return newTraceError(ErrMalformedLine, b.lineNo, err)
	}
	if !rf.isReg {
		return newTraceError(ErrMalformedLine, b.lineNo, fmt.Errorf("result record with is_reg == 0"))
	}

	if b.curNode.IsFPOp() && rf.size == 64 {
		b.curNode.setDoublePrecision(true)
	}

	uniqueRegID := b.curDynFunc + "-" + rf.label
	b.regs.SetLastWriter(uniqueRegID, b.nid)

	switch {
	case b.curMicroOp == OpAlloca:
		b.curNode.setArrayLabel(rf.label)
		b.sink.AddArrayBaseAddress(rf.label, uint64(rf.value)&b.cfg.AddrMask)

	case b.curMicroOp == OpLoad:
		if len(b.paramAddrs) == 0 {
			return newTraceError(ErrMalformedLine, b.lineNo, fmt.Errorf("load result with no prior address parameter"))
		}
		memAddr := b.paramAddrs[len(b.paramAddrs)-1].value
		memSize := rf.size / b.cfg.ByteSize
		bits, err := ToBits(rf.value, memSize, rf.isFloat)
		if err != nil {
			if te, ok := err.(*TraceError); ok {
				te.Line = b.lineNo
			}
			return err
		}
		b.curNode.setMemAccessFP(memAddr, 0, memSize, rf.isFloat, bits)

	case b.curNode.IsDMAOp():
		if len(b.paramAddrs) < 4 {
			return newTraceError(ErrMalformedLine, b.lineNo, fmt.Errorf("dma result with only %d address parameters recorded", len(b.paramAddrs)))
		}
		memAddr := b.paramAddrs[1].value
		memOffset := b.paramAddrs[2].value
		memSize := b.paramAddrs[3].value
		b.curNode.setMemAccess(memAddr, memOffset, int(memSize))

		if b.curMicroOp == OpDMALoad {
			// DMALoad is a store from the accelerator's perspective:
			// enforce RAW/WAW on subsequent nodes, unless the sink is in
			// ready mode, in which case loads issue as soon as data is
			// available and the edge would not be honored anyway.
			if !b.sink.IsReadyMode() {
				b.mem.MarkWritten(memAddr+memOffset, int(memSize), b.nid)
			}
		} else {
			// DMAStore is a load from the accelerator's perspective:
			// enforce RAW against every writer currently covering the
			// range.
			for _, writer := range b.mem.Overlaps(memAddr+memOffset, int(memSize)) {
				b.edges.AddMemoryEdgeIfNew(writer, b.nid)
			}
		}
	}

	return nil
}
