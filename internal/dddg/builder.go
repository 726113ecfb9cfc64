// Package dddg builds the dynamic data dependence graph from a streamed
// instruction trace: register-flow edges from SSA-like liveness scoped
// to dynamic function invocations, and memory-order edges from
// byte-granular last-writer tracking, including the variable-latency
// semantics of DMA transfers.
package dddg

import (
	"fmt"
	"io"

	"github.com/accel-sim/dddg/internal/classify"
	"github.com/accel-sim/dddg/internal/dddgcfg"
	"github.com/accel-sim/dddg/internal/funcstack"
	"github.com/accel-sim/dddg/internal/labelmap"
	"github.com/accel-sim/dddg/internal/memtrack"
	"github.com/accel-sim/dddg/internal/trace"
)

// Builder walks a trace exactly once, mutating its private liveness and
// aliasing tables, and pushes the accumulated edges to a Sink once the
// stream drains. A Builder is single-threaded and not reusable across
// concurrent calls to Build; construct a fresh one per trace.
type Builder struct {
	cfg  dddgcfg.Config
	sink Sink

	labelMap *labelmap.Builder
	funcs    *funcstack.Tracker
	regs     *memtrack.Registers
	mem      *memtrack.Memory
	edges    *edgeTables

	funcsSeen map[string]bool

	nid         int
	curNode     *Node
	curMicroOp  MicroOp
	prevMicroOp MicroOp
	curDynFunc  string
	curBBlock   string
	prevBBlock  string

	calleeFunction        string
	calleeDynamicFunction string
	lastCallSource        int
	uniqueRegInCallerFunc string

	lastParameter bool
	numParameters int
	paramAddrs    []paramAccum

	lineNo int

	seenFirstLine         bool
	firstFunction         string
	firstFunctionReturned bool
}

// NewBuilder returns a Builder bound to sink, which receives every node
// and edge the build produces. cfg supplies the implementation-defined
// constants (address mask, byte width, ready mode) the handlers consult.
func NewBuilder(cfg dddgcfg.Config, sink Sink) *Builder {
	return &Builder{
		cfg:            cfg,
		sink:           sink,
		labelMap:       labelmap.NewBuilder(),
		funcs:          funcstack.New(),
		regs:           memtrack.NewRegisters(),
		mem:            memtrack.NewMemory(),
		edges:          newEdgeTables(),
		funcsSeen:      make(map[string]bool),
		nid:            -1,
		lastCallSource: -1,
		curBBlock:      "-1",
		prevBBlock:     "-1",
	}
}

// LabelMap returns the parsed labelmap prelude, if the trace carried one.
func (b *Builder) LabelMap() labelmap.Map {
	return b.labelMap.Map()
}

// Build consumes r line by line until EOF, or until the stream drains
// after the first observed function returns, whichever comes first.
// It mutates the bound Sink as it goes and returns a report summarizing
// the run. A non-nil error is either a *TraceError identifying a fatal,
// unrecoverable condition in the trace, or a wrapped error from reading r
// (including a line longer than the configured MaxLineBytes).
func (b *Builder) Build(r io.Reader) (*BuildReport, error) {
	report := NewBuildReport()
	tr := trace.New(r, b.cfg.MaxLineBytes)

	state := classify.StreamInit

	for {
		line, ok, err := tr.Next()
		if err != nil {
			return report, fmt.Errorf("dddg: reading trace: %w", err)
		}
		if !ok {
			break
		}
		b.lineNo = tr.LineNumber()
		report.NumLines++

		if state == classify.StreamInit {
			if classify.IsLabelMapStart(line) {
				state = classify.StreamLabelMap
				continue
			}
		} else if state == classify.StreamLabelMap {
			if classify.IsLabelMapEnd(line) {
				state = classify.StreamBody
			} else if err := b.labelMap.AddLine(line); err != nil {
				report.note(PhaseLabelMap, b.lineNo, "%v", err)
			}
			continue
		}

		tag, paramID, rest, hasComma := classify.Split(line)
		if !hasComma {
			if state == classify.StreamDrain {
				break
			}
			continue
		}
		if state == classify.StreamInit {
			state = classify.StreamBody
		}

		switch tag {
		case classify.TagHeader:
			h, err := parseHeaderLine(rest)
			if err != nil {
				return report, newTraceError(ErrMalformedLine, b.lineNo, err)
			}
			if !b.seenFirstLine {
				b.seenFirstLine = true
				b.firstFunction = h.staticFunc
			}
			b.funcsSeen[h.staticFunc] = true
			b.firstFunctionReturned = h.microop == OpRet && h.staticFunc == b.firstFunction
			if err := b.handleHeader(h); err != nil {
				return report, err
			}
			if b.firstFunctionReturned {
				state = classify.StreamDrain
			}

		case classify.TagResult:
			if err := b.handleResult(rest); err != nil {
				return report, err
			}

		case classify.TagForward:
			if err := b.handleForward(rest); err != nil {
				return report, err
			}

		case classify.TagParam:
			if err := b.handleParam(paramID, rest); err != nil {
				return report, err
			}
		}
	}

	b.flush(report)
	return report, nil
}

// flush pushes the accumulated edge tables to the sink in two passes
// (register edges, then memory edges) and fills in the report's final
// counters. Order within each table is not meaningful to the sink.
func (b *Builder) flush(report *BuildReport) {
	for _, e := range b.edges.RegisterEdges() {
		b.sink.AddDddgEdge(e.Src, e.Sink, e.ParID)
	}
	for _, e := range b.edges.MemoryEdges() {
		b.sink.AddDddgEdge(e.Src, e.Sink, -1)
	}
	report.NumNodes = b.sink.GetNumOfNodes()
	report.NumEdges = b.sink.GetNumOfEdges()
	report.NumFunctions = len(b.funcsSeen)
}
