package float

import "fmt"

// Format holds the field layout of one supported binary interchange width.
type Format struct {
	Width int // total number of bits
	E     int // number of bits in the encoded exponent
	M     int // number of bits in the encoded mantissa
	Bias  int
	// DefaultPrecision is the number of extra intermediate bits the adder
	// keeps below the mantissa when the caller does not choose one.
	DefaultPrecision int
}

var (
	Half   = Format{Width: 16, E: 5, M: 10, Bias: 15, DefaultPrecision: 32}
	Single = Format{Width: 32, E: 8, M: 23, Bias: 127, DefaultPrecision: 7}
	Double = Format{Width: 64, E: 11, M: 52, Bias: 1023, DefaultPrecision: 7}
)

// FormatOf returns the format for width 16, 32 or 64 and panics for any
// other width.
func FormatOf(width int) Format {
	switch width {
	case 16:
		return Half
	case 32:
		return Single
	case 64:
		return Double
	default:
		panic(fmt.Sprintf("float: unsupported width %d", width))
	}
}

func (f Format) SignShift() uint { return uint(f.Width - 1) }

func (f Format) ExpAllOnes() uint64 { return 1<<uint(f.E) - 1 }

func (f Format) MantMask() uint64 { return 1<<uint(f.M) - 1 }

// QuietBit is the mantissa MSB, set for quiet NaNs.
func (f Format) QuietBit() uint64 { return 1 << uint(f.M-1) }

// WidthMask has the low Width bits set.
func (f Format) WidthMask() uint64 {
	if f.Width == 64 {
		return ^uint64(0)
	}
	return 1<<uint(f.Width) - 1
}

// CanonicalNaN is the quiet NaN every NaN-producing operation returns:
// sign 0, exponent all ones, only the mantissa MSB set.
func (f Format) CanonicalNaN() uint64 {
	return f.ExpAllOnes()<<uint(f.M) | f.QuietBit()
}

func (f Format) Inf(negative bool) uint64 {
	return f.Pack(negative, f.ExpAllOnes(), 0)
}

func (f Format) Zero(negative bool) uint64 {
	return f.Pack(negative, 0, 0)
}

// MaxFinite is the largest-magnitude normal number with the given sign.
func (f Format) MaxFinite(negative bool) uint64 {
	return f.Pack(negative, f.ExpAllOnes()-1, f.MantMask())
}

// Unpack splits a bit pattern into its sign, biased exponent and mantissa
// fields. Bits above Width are ignored.
func (f Format) Unpack(v uint64) (negative bool, exp uint64, mant uint64) {
	v &= f.WidthMask()
	negative = v>>f.SignShift() != 0
	exp = (v >> uint(f.M)) & f.ExpAllOnes()
	mant = v & f.MantMask()
	return negative, exp, mant
}

// Pack assembles a bit pattern. The exponent and mantissa are masked to
// their field widths.
func (f Format) Pack(negative bool, exp uint64, mant uint64) uint64 {
	var s uint64
	if negative {
		s = 1
	}
	return s<<f.SignShift() | (exp&f.ExpAllOnes())<<uint(f.M) | mant&f.MantMask()
}

func (f Format) String() string {
	return fmt.Sprintf("fp%d", f.Width)
}
