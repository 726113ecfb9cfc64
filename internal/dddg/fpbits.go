package dddg

import (
	"fmt"
	"math"
)

// ToBits reencodes value as its raw IEEE-754 bit pattern, replacing the
// original's FP2BitsConverter union type-pun (writing a float or double
// through a union and reading back the integer member). size selects
// the precision: 4 for float32, 8 for float64. When isFloat is false the
// value is already an integer quantity and is returned unreencoded.
func ToBits(value float64, size int, isFloat bool) (uint64, error) {
	if !isFloat {
		return uint64(int64(value)), nil
	}
	switch size {
	case 4:
		return uint64(math.Float32bits(float32(value))), nil
	case 8:
		return math.Float64bits(value), nil
	default:
		return 0, &TraceError{Kind: ErrBadFloatBits, Err: errBadFloatSize(size)}
	}
}

type errBadFloatSize int

func (e errBadFloatSize) Error() string {
	return fmt.Sprintf("unsupported floating point width %d (must be 4 or 8 bytes)", int(e))
}
