package classify

import "strings"

// StreamState is the small state machine described by the builder's
// state diagram: INIT/LABELMAP look for (or skip) the optional labelmap
// prelude, BODY dispatches ordinary records, DRAIN waits for the line
// that finally ends the stream.
type StreamState int

const (
	// StreamInit has not yet decided whether a labelmap prelude is present.
	StreamInit StreamState = iota
	// StreamLabelMap is consuming labelmap lines.
	StreamLabelMap
	// StreamBody is dispatching ordinary trace records.
	StreamBody
	// StreamDrain has seen the terminating Ret and is only looking for
	// the end of the stream (a line without a comma).
	StreamDrain
)

const (
	labelMapStart = "%%%% LABEL MAP START %%%%"
	labelMapEnd   = "%%%% LABEL MAP END %%%%"
)

// IsLabelMapStart reports whether line carries the labelmap prelude
// sentinel anywhere in it (the original scans for the substring, not an
// exact match).
func IsLabelMapStart(line string) bool {
	return strings.Contains(line, labelMapStart)
}

// IsLabelMapEnd reports whether line closes the labelmap prelude.
func IsLabelMapEnd(line string) bool {
	return strings.Contains(line, labelMapEnd)
}
