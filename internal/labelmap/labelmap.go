// Package labelmap parses the optional prelude that maps source line
// numbers to (function, label) pairs.
package labelmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is a single labelmap mapping.
type Entry struct {
	Function string
	Label    string
}

// Map is keyed by source line number, as the builder stores it.
type Map map[int]Entry

// ParseLine parses one labelmap line of the form "<function>/<label> <line_number>".
//
// The original parses this with sscanf("%[^/]/%s %d", ...); Go has no
// scanf, so this walks the line with strings.Cut/Fields instead, which is
// both simpler and immune to the original's fixed 256-byte field overflow.
func ParseLine(line string) (lineNo int, entry Entry, err error) {
	function, rest, ok := strings.Cut(line, "/")
	if !ok {
		return 0, Entry{}, fmt.Errorf("labelmap: missing '/' in line %q", line)
	}

	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return 0, Entry{}, fmt.Errorf("labelmap: expected \"<label> <line>\", got %q", rest)
	}

	label, numTxt := fields[0], fields[1]
	n, err := strconv.Atoi(numTxt)
	if err != nil {
		return 0, Entry{}, fmt.Errorf("labelmap: bad line number %q: %w", numTxt, err)
	}

	return n, Entry{Function: function, Label: label}, nil
}

// Builder accumulates labelmap entries as they are parsed.
type Builder struct {
	m Map
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{m: make(Map)}
}

// AddLine parses and stores one prelude line.
func (b *Builder) AddLine(line string) error {
	n, entry, err := ParseLine(line)
	if err != nil {
		return err
	}
	b.m[n] = entry
	return nil
}

// Map returns the accumulated mapping. The builder does not consult it
// itself beyond storage; it exists for downstream consumers.
func (b *Builder) Map() Map {
	return b.m
}
