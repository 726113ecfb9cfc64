// Package classify dispatches a raw trace line to the record kind its
// leading comma-delimited tag names.
package classify

import (
	"strconv"
	"strings"
)

// Tag identifies which handler a trace record belongs to.
type Tag int

const (
	// TagUnknown marks a line whose tag did not match any known form.
	TagUnknown Tag = iota
	// TagHeader is an instruction header ("0").
	TagHeader
	// TagResult is a result record ("r").
	TagResult
	// TagForward is a forward record ("f").
	TagForward
	// TagParam is a numeric-tagged operand-slot record ("1".."N").
	TagParam
)

func (t Tag) String() string {
	switch t {
	case TagHeader:
		return "header"
	case TagResult:
		return "result"
	case TagForward:
		return "forward"
	case TagParam:
		return "param"
	default:
		return "unknown"
	}
}

// Split extracts the tag and the remainder of line after the first comma.
// ok is false when line has no comma at all, which the caller treats per
// the state it is in (ordinary skip in BODY, stream end in DRAIN).
//
// paramID is only meaningful when tag == TagParam.
func Split(line string) (tag Tag, paramID int, rest string, ok bool) {
	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		return TagUnknown, 0, "", false
	}

	head := line[:idx]
	rest = line[idx+1:]

	switch head {
	case "0":
		return TagHeader, 0, rest, true
	case "r":
		return TagResult, 0, rest, true
	case "f":
		return TagForward, 0, rest, true
	}

	n, err := strconv.Atoi(head)
	if err != nil {
		return TagUnknown, 0, rest, true
	}
	return TagParam, n, rest, true
}
