package vectors

import (
	"fmt"

	"fpmodel/float"
)

// SpecialNames lists the names accepted by Special.
var SpecialNames = []string{
	"+zero", "-zero", "+inf", "-inf",
	"qnan", "+qnan", "-qnan",
	"snan", "+snan", "-snan",
}

// Special returns the bit pattern of a named special value. Signalling NaNs
// have only the mantissa LSB set.
func Special(width int, name string) (uint64, error) {
	f := float.FormatOf(width)
	nan := f.ExpAllOnes() << uint(f.M)
	sign := uint64(1) << f.SignShift()

	switch name {
	case "+zero":
		return f.Zero(false), nil
	case "-zero":
		return f.Zero(true), nil
	case "+inf":
		return f.Inf(false), nil
	case "-inf":
		return f.Inf(true), nil
	case "qnan", "+qnan":
		return nan | f.QuietBit(), nil
	case "-qnan":
		return sign | nan | f.QuietBit(), nil
	case "snan", "+snan":
		return nan | 1, nil
	case "-snan":
		return sign | nan | 1, nil
	}
	return 0, fmt.Errorf("unknown special value %q", name)
}

// Canonicalize maps every NaN to the canonical quiet NaN and -0 to +0, so
// that models which disagree only on NaN payloads or the sign of zero
// compare equal.
func Canonicalize(bits uint64, width int) uint64 {
	f := float.FormatOf(width)
	bits &= f.WidthMask()
	switch {
	case f.IsNaN(bits):
		return f.CanonicalNaN()
	case bits == f.Zero(true):
		return f.Zero(false)
	}
	return bits
}
