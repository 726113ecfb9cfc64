package dddg

import (
	"fmt"
	"strconv"
)

// parseNumericValue parses a trace value field. The original relies on
// strtod, which happily digests plain decimals; this also accepts a
// 0x-prefixed integer literal so hand-written fixtures can spell
// addresses the way the rest of the toolchain does.
func parseNumericValue(raw string) (float64, error) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}
	if v, err := strconv.ParseUint(raw, 0, 64); err == nil {
		return float64(v), nil
	}
	return 0, fmt.Errorf("cannot parse numeric value %q", raw)
}
