package float

// Kind is the category of a bit pattern, ignoring its sign.
type Kind int

const (
	KindZero Kind = iota
	KindDenormal
	KindNormal
	KindInf
	KindQNaN
	KindSNaN
)

// KindOf derives the category of v from its exponent and mantissa fields.
func (f Format) KindOf(v uint64) Kind {
	_, exp, mant := f.Unpack(v)
	switch {
	case exp == 0 && mant == 0:
		return KindZero
	case exp == 0:
		return KindDenormal
	case exp == f.ExpAllOnes() && mant == 0:
		return KindInf
	case exp == f.ExpAllOnes() && mant&f.QuietBit() != 0:
		return KindQNaN
	case exp == f.ExpAllOnes():
		return KindSNaN
	default:
		return KindNormal
	}
}

func (f Format) IsNaN(v uint64) bool {
	k := f.KindOf(v)
	return k == KindQNaN || k == KindSNaN
}

// Class is the flat ten-flag classification record consumed by the
// testbench. Exactly one flag is set for any bit pattern.
type Class struct {
	PosZero     bool
	NegZero     bool
	PosDenormal bool
	NegDenormal bool
	PosNormal   bool
	NegNormal   bool
	PosInf      bool
	NegInf      bool
	QNaN        bool
	SNaN        bool
}

// Classify tags a width-bit pattern.
func Classify(v uint64, width int) Class {
	f := FormatOf(width)
	negative, _, _ := f.Unpack(v)

	var c Class
	switch f.KindOf(v) {
	case KindQNaN:
		c.QNaN = true
	case KindSNaN:
		c.SNaN = true
	case KindInf:
		c.PosInf, c.NegInf = !negative, negative
	case KindNormal:
		c.PosNormal, c.NegNormal = !negative, negative
	case KindDenormal:
		c.PosDenormal, c.NegDenormal = !negative, negative
	case KindZero:
		c.PosZero, c.NegZero = !negative, negative
	}
	return c
}

// Flags returns the flags in packed-struct bit order, bit 0 first.
func (c Class) Flags() [10]bool {
	return [10]bool{
		c.PosInf,
		c.PosNormal,
		c.PosDenormal,
		c.PosZero,
		c.NegZero,
		c.NegDenormal,
		c.NegNormal,
		c.NegInf,
		c.QNaN,
		c.SNaN,
	}
}

var flagNames = [10]string{
	"pos_inf", "pos_normal", "pos_denormal", "pos_zero",
	"neg_zero", "neg_denormal", "neg_normal", "neg_inf",
	"qnan", "snan",
}

// Pack encodes the record as the 10-bit packed struct the simulator expects
// (is_pos_inf in bit 0 up to is_snan in bit 9).
func (c Class) Pack() uint16 {
	var p uint16
	for i, set := range c.Flags() {
		if set {
			p |= 1 << uint(i)
		}
	}
	return p
}

// Count returns how many flags are set.
func (c Class) Count() int {
	n := 0
	for _, set := range c.Flags() {
		if set {
			n++
		}
	}
	return n
}

func (c Class) String() string {
	for i, set := range c.Flags() {
		if set {
			return flagNames[i]
		}
	}
	return "none"
}
