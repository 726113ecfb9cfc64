package dddg

import (
	"fmt"
	"strings"
)

// handleForward processes a forward record: a caller-side argument value
// being carried into a callee's parameter register, the mechanism that
// keeps dataflow connected across a call boundary.
func (b *Builder) handleForward(rest string) error {
	fields := strings.Split(rest, ",")
	if len(fields) < 4 {
		return newTraceError(ErrMalformedLine, b.lineNo, fmt.Errorf("forward: expected >= 4 fields, got %d", len(fields)))
	}
	if fields[2] != "1" {
		return newTraceError(ErrMalformedLine, b.lineNo, fmt.Errorf("forward record with is_reg == 0"))
	}
	label := fields[3]

	if !(b.curNode.IsCallOp() || b.curNode.IsDMAOp() || b.curNode.IsTrigOp()) {
		return newTraceError(ErrForwardWithoutCallFrame, b.lineNo,
			fmt.Errorf("forward record on a node that is not a call, dma, or trig op"))
	}

	uniqueRegID := b.calleeDynamicFunction + "-" + label

	if b.uniqueRegInCallerFunc != "" {
		b.sink.AddCallArgumentMapping(uniqueRegID, b.uniqueRegInCallerFunc)
		b.uniqueRegInCallerFunc = ""
	}

	writer := b.nid
	if b.lastCallSource != -1 {
		writer = b.lastCallSource
	}
	b.regs.SetLastWriter(uniqueRegID, writer)

	return nil
}
