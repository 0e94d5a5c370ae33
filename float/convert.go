package float

import (
	"math"

	"github.com/x448/float16"
)

// RealToBits64 returns the binary64 encoding of v.
func RealToBits64(v float64) uint64 {
	return math.Float64bits(v)
}

// RealToBits32 narrows v to binary32 with the host's round-to-nearest-even.
func RealToBits32(v float64) uint32 {
	return math.Float32bits(float32(v))
}

// RealToBits16 narrows v to binary16 through binary32. The double rounding
// can differ from a direct conversion in the last place; use FromFloat64 when
// that matters.
func RealToBits16(v float64) uint16 {
	return float16.Fromfloat32(float32(v)).Bits()
}

// FromFloat64 converts v to a width-bit pattern with a single rounding in the
// given mode.
func FromFloat64(v float64, width int, mode RoundingMode) uint64 {
	return RoundFloat64(v, width, mode)
}
