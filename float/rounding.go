package float

import (
	"fmt"
	"strings"

	"fpmodel/apint"
)

// RoundingMode selects how an inexact result is rounded. The numeric values
// match the encoding used by the testbench (0..4).
type RoundingMode int

const (
	RoundNearestEven         RoundingMode = iota // RNE
	RoundTowardZero                              // RTZ
	RoundTowardPositive                          // RPI
	RoundTowardNegative                          // RNI
	RoundNearestAwayFromZero                     // RNA
)

var modeNames = [...]string{"rne", "rtz", "rpi", "rni", "rna"}

// Modes lists every rounding mode in encoding order.
var Modes = []RoundingMode{
	RoundNearestEven,
	RoundTowardZero,
	RoundTowardPositive,
	RoundTowardNegative,
	RoundNearestAwayFromZero,
}

func (m RoundingMode) Valid() bool {
	return m >= RoundNearestEven && m <= RoundNearestAwayFromZero
}

func (m RoundingMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRoundingMode accepts the short names rne, rtz, rpi, rni, rna.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

// ModeFromInt converts the testbench encoding, panicking on values outside 0..4.
func ModeFromInt(v int) RoundingMode {
	m := RoundingMode(v)
	m.mustBeValid()
	return m
}

func (m RoundingMode) mustBeValid() {
	if !m.Valid() {
		panic(fmt.Sprintf("float: invalid rounding mode %d", int(m)))
	}
}

// GRS holds the bits a truncation looks at: the least significant kept bit,
// the guard and round bits just below it, and the OR of everything lower.
type GRS struct {
	LSB    bool
	Guard  bool
	Round  bool
	Sticky bool
}

func (g GRS) Inexact() bool {
	return g.Guard || g.Round || g.Sticky
}

// Decompose extracts the GRS bits for truncating an inputWidth-bit value to
// outputWidth bits. Nothing is truncated when inputWidth <= outputWidth.
func Decompose(value apint.Uint256, inputWidth, outputWidth int) GRS {
	shift := inputWidth - outputWidth
	if shift <= 0 {
		return GRS{}
	}
	return GRS{
		LSB:    value.Bit(shift) == 1,
		Guard:  value.Bit(shift-1) == 1,
		Round:  shift >= 2 && value.Bit(shift-2) == 1,
		Sticky: shift >= 3 && value.AnyBitSetUpTo(shift-3),
	}
}

// Increment decides whether the truncated magnitude must be bumped by one
// unit in the last place.
func (g GRS) Increment(negative bool, mode RoundingMode) bool {
	switch mode {
	case RoundNearestEven:
		return g.Guard && (g.Round || g.Sticky || g.LSB)
	case RoundTowardZero:
		return false
	case RoundTowardPositive:
		return !negative && g.Inexact()
	case RoundTowardNegative:
		return negative && g.Inexact()
	case RoundNearestAwayFromZero:
		return g.Guard
	}
	panic(fmt.Sprintf("float: invalid rounding mode %d", int(mode)))
}

// RoundIncrement returns 1 if value, an inputWidth-bit magnitude with the
// given sign, must be incremented after truncation to outputWidth bits.
func RoundIncrement(value apint.Uint256, negative bool, mode RoundingMode, inputWidth, outputWidth int) uint64 {
	mode.mustBeValid()
	if inputWidth <= outputWidth {
		return 0
	}
	if Decompose(value, inputWidth, outputWidth).Increment(negative, mode) {
		return 1
	}
	return 0
}
