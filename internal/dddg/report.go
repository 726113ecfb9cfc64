package dddg

import (
	"fmt"
	"sync"
)

// ReportPhase marks which stage of the build a BuildReport entry came
// from.
type ReportPhase int

const (
	reportPhaseInvalid ReportPhase = iota
	PhaseLabelMap                  // parsing the label-map preamble
	PhaseHeader                    // instruction header handling
	PhaseParam                     // parameter line handling
	PhaseResult                    // result line handling
	PhaseForward                   // forward (call-argument) line handling
)

func (p ReportPhase) String() string {
	switch p {
	case PhaseLabelMap:
		return "labelmap"
	case PhaseHeader:
		return "header"
	case PhaseParam:
		return "param"
	case PhaseResult:
		return "result"
	case PhaseForward:
		return "forward"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// reportEntry is one recoverable anomaly noticed while building the
// graph: a trace line the builder could still make sense of but that
// deviates from what a well-formed trace should contain (e.g. a
// labelmap prelude line that does not parse). Conditions
// the builder cannot recover from are returned as a *TraceError instead
// and stop the build.
type reportEntry struct {
	Phase   ReportPhase
	Line    int
	Message string
}

// BuildReport accumulates non-fatal anomalies discovered during a
// build, plus the summary counters callers typically want at the end
// (cmd/dddgbuild prints exactly these). The anomaly list is guarded by a
// lock, so Entries may be called from another goroutine while a build is
// still running; the counter fields are plain fields that Build writes
// without locking.
type BuildReport struct {
	mu      sync.Mutex
	entries []reportEntry

	NumLines     int
	NumNodes     int
	NumEdges     int
	NumFunctions int
}

// NewBuildReport returns an empty report.
func NewBuildReport() *BuildReport {
	return &BuildReport{}
}

func (r *BuildReport) note(phase ReportPhase, line int, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, reportEntry{
		Phase:   phase,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns a snapshot of the accumulated anomalies.
func (r *BuildReport) Entries() []reportEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Summary renders the report the way cmd/dddgbuild prints it: one line
// per anomaly followed by the final counters.
func (r *BuildReport) Summary() string {
	var out string
	for _, e := range r.Entries() {
		out += fmt.Sprintf("[%s] line %d: %s\n", e.Phase, e.Line, e.Message)
	}
	out += fmt.Sprintf("nodes=%d edges=%d functions=%d lines=%d",
		r.NumNodes, r.NumEdges, r.NumFunctions, r.NumLines)
	return out
}
