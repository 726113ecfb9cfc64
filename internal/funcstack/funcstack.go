// Package funcstack tracks per-static-function invocation counters and
// the stack of currently-active dynamic function instances, producing
// the "func-k" scoping identifiers the register table keys its liveness
// entries under.
//
// The original packs "name-count" into a single string and re-parses it
// on every header; this keeps a typed pair instead, per the source's own
// redesign note that a typed frame is preferable and behaviorally
// identical.
package funcstack

import "fmt"

// Frame is one entry of the active-function stack: the static function
// name and the invocation index of the dynamic instance currently
// executing it.
type Frame struct {
	Static string
	Count  int
}

// DynamicID returns the scoping identifier "<static>-<count>" used to key
// register liveness entries.
func (f Frame) DynamicID() string {
	return fmt.Sprintf("%s-%d", f.Static, f.Count)
}

// Tracker owns the invocation counters and the active-function stack.
// Tracker is not a state machine in its own right; the header handler
// drives it through the primitives below to reproduce the original's
// branch-by-branch resolution exactly.
type Tracker struct {
	counters map[string]int
	active   []Frame
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{counters: make(map[string]int)}
}

// Empty reports whether the active-function stack has no frames.
func (t *Tracker) Empty() bool {
	return len(t.active) == 0
}

// Top returns the frame currently on top of the stack. Callers must
// check Empty first; the active-function stack is non-empty for every
// non-header event once the first header has been seen.
func (t *Tracker) Top() Frame {
	return t.active[len(t.active)-1]
}

// Push adds a new frame on top of the stack.
func (t *Tracker) Push(f Frame) {
	t.active = append(t.active, f)
}

// Pop removes the top frame, called when a Ret is processed whose
// dynamic function matches the top.
func (t *Tracker) Pop() {
	t.active = t.active[:len(t.active)-1]
}

// NextInvocation returns the invocation index to assign to a fresh
// dynamic instance of name: 0 on first sighting (and records it),
// otherwise the counter pre-incremented and stored.
func (t *Tracker) NextInvocation(name string) int {
	n, seen := t.counters[name]
	if !seen {
		t.counters[name] = 0
		return 0
	}
	n++
	t.counters[name] = n
	return n
}

// PeekNextInvocation previews the invocation index a fresh instance of
// name would receive from NextInvocation, without mutating the counter.
// Used by the parameter handler to precompute a callee's dynamic id
// before that callee's own header has been seen.
func (t *Tracker) PeekNextInvocation(name string) int {
	n, seen := t.counters[name]
	if !seen {
		return 0
	}
	return n + 1
}

// IncrementExisting bumps and returns the counter already tracked for
// name. ok is false if name has never been seen, which the caller must
// treat as a trace invariant violation (a recursive re-entry into a
// function that was never entered in the first place).
func (t *Tracker) IncrementExisting(name string) (count int, ok bool) {
	n, seen := t.counters[name]
	if !seen {
		return 0, false
	}
	n++
	t.counters[name] = n
	return n, true
}
