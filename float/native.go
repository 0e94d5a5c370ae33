package float

import (
	"math"
	"math/big"

	"github.com/x448/float16"

	"fpmodel/apint"
)

// The Native* functions are the simpler reference path: operands are widened
// to float64, the host FPU does the arithmetic, and the result is re-encoded
// in the requested mode. Alongside the host result each op computes the sign
// of its rounding error exactly, so that a value the host rounded onto an
// fp16 or fp32 grid point or midpoint still rounds the right way. For fp64
// the host rounds to nearest even and the mode is not applied.

func NativeAdd(a, b uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		s := x[0] + x[1]
		return s, sumResidual(x[0], x[1], s)
	}, a, b)
}

func NativeSub(a, b uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		s := x[0] - x[1]
		return s, sumResidual(x[0], -x[1], s)
	}, a, b)
}

func NativeMul(a, b uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		p := x[0] * x[1]
		if !finite(x[0], x[1], p) {
			return p, 0
		}
		return p, signOf(math.FMA(x[0], x[1], -p))
	}, a, b)
}

func NativeDiv(a, b uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		q := x[0] / x[1]
		return q, quotientResidual(x[0], x[1], q)
	}, a, b)
}

// NativeFMA computes a*b + c with a single host rounding.
func NativeFMA(a, b, c uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		r := math.FMA(x[0], x[1], x[2])
		return r, fmaResidual(x[0], x[1], x[2], r)
	}, a, b, c)
}

// NativeFMS computes a*b - c with a single host rounding.
func NativeFMS(a, b, c uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		r := math.FMA(x[0], x[1], -x[2])
		return r, fmaResidual(x[0], x[1], -x[2], r)
	}, a, b, c)
}

func NativeSqrt(a uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		r := math.Sqrt(x[0])
		if !finite(x[0], r) || r == 0 {
			return r, 0
		}
		// sqrt(a) > r exactly when a > r*r.
		return r, signOf(math.FMA(-r, r, x[0]))
	}, a)
}

// NativeRecip computes 1/a.
func NativeRecip(a uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		q := 1 / x[0]
		return q, quotientResidual(1, x[0], q)
	}, a)
}

// NativeInvSqrt computes 1/sqrt(a).
func NativeInvSqrt(a uint64, width int, mode RoundingMode) uint64 {
	return native(width, mode, func(x []float64) (float64, int) {
		r := 1 / math.Sqrt(x[0])
		if !finite(x[0], r) || r == 0 {
			return r, 0
		}
		// 1/sqrt(a) > r exactly when a*r*r < 1; the product of three
		// 53-bit significands is exact at this precision.
		prod := new(big.Float).SetPrec(3 * 53).SetFloat64(x[0])
		rr := new(big.Float).SetFloat64(r)
		prod.Mul(prod, rr).Mul(prod, rr)
		return r, big.NewFloat(1).Cmp(prod)
	}, a)
}

func native(width int, mode RoundingMode, op func([]float64) (float64, int), operands ...uint64) uint64 {
	mode.mustBeValid()
	x := make([]float64, len(operands))
	for i, v := range operands {
		x[i] = ToFloat64(v, width)
	}
	v, residual := op(x)
	return roundFloat64(v, width, mode, residual)
}

// exactPrec holds any a*b + c of float64 operands without rounding.
const exactPrec = 3400

// sumResidual returns the sign of a + b - s, where s is the host sum,
// computed error-free (TwoSum).
func sumResidual(a, b, s float64) int {
	if !finite(a, b, s) {
		return 0
	}
	bb := s - a
	return signOf((a - (s - bb)) + (b - bb))
}

// quotientResidual returns the sign of a/b - q. The remainder a - q*b of a
// correctly rounded quotient is exact under FMA.
func quotientResidual(a, b, q float64) int {
	if !finite(a, b, q) || q == 0 || b == 0 {
		return 0
	}
	r := signOf(math.FMA(-q, b, a))
	if b < 0 {
		return -r
	}
	return r
}

func fmaResidual(a, b, c, r float64) int {
	if !finite(a, b, c, r) {
		return 0
	}
	exact := new(big.Float).SetPrec(exactPrec).SetFloat64(a)
	exact.Mul(exact, new(big.Float).SetFloat64(b))
	exact.Add(exact, new(big.Float).SetFloat64(c))
	return exact.Cmp(new(big.Float).SetFloat64(r))
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

func signOf(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ToFloat64 widens a width-bit pattern to float64. The conversion is exact
// for every non-NaN value.
func ToFloat64(v uint64, width int) float64 {
	switch FormatOf(width).Width {
	case 16:
		return float64(float16.Frombits(uint16(v)).Float32())
	case 32:
		return float64(math.Float32frombits(uint32(v)))
	}
	return math.Float64frombits(v)
}

// RoundFloat64 re-encodes v in the given width, rounding with mode. NaNs
// become the canonical quiet NaN. Unlike the bit-accurate adder it produces
// denormal results and applies the IEEE-754 directed-rounding overflow rules.
func RoundFloat64(v float64, width int, mode RoundingMode) uint64 {
	return roundFloat64(v, width, mode, 0)
}

// roundFloat64 rounds the real number v + ε, where ε is infinitesimal with
// the sign of residual.
func roundFloat64(v float64, width int, mode RoundingMode, residual int) uint64 {
	f := FormatOf(width)
	mode.mustBeValid()

	if math.IsNaN(v) {
		return f.CanonicalNaN()
	}
	if width == 64 {
		return math.Float64bits(v)
	}

	negative, exp64, mant64 := Double.Unpack(math.Float64bits(v))
	switch {
	case exp64 == Double.ExpAllOnes():
		return f.Inf(negative)
	case exp64 == 0 && mant64 == 0:
		return f.Zero(negative)
	}

	// v = sig * 2^(e - 54) with the implicit bit of sig at bit 54. The two
	// extra low bits record ε: sig+1 for a larger magnitude, sig-1 for a
	// smaller one. No fp16 or fp32 grid point or midpoint lies that close
	// to v, so rounding the adjusted value rounds v + ε.
	sig, eff_exp := Double.significand(exp64, mant64)
	e := eff_exp - Double.Bias
	sig <<= 2
	point := Double.M + 2
	switch {
	case residual == 0:
	case (residual > 0) != negative:
		sig |= 1
	default:
		sig--
		if sig>>point == 0 && exp64 != 0 {
			// v was a power of two; the adjusted value is in the binade below.
			sig <<= 1
			e--
		}
	}

	// Target biased exponent, and how many low bits of sig get dropped to
	// keep M fraction bits. Denormal targets drop one more bit for every step
	// below exponent 1.
	exp := e + f.Bias
	shift := point - f.M
	if exp < 1 {
		shift += 1 - exp
		exp = 0
	}
	if exp >= int(f.ExpAllOnes()) {
		return f.overflow(negative, mode)
	}
	// Past this point every bit of sig is below the round bit.
	if shift > point+3 {
		shift = point + 3
	}

	value := apint.FromUint64(sig)
	grs := Decompose(value, point+1, point+1-shift)
	rounded := sig >> uint(shift)
	if grs.Increment(negative, mode) {
		rounded++
	}

	if exp == 0 {
		// A denormal that rounds up into bit M becomes the smallest normal.
		if rounded>>uint(f.M) != 0 {
			return f.Pack(negative, 1, rounded)
		}
		return f.Pack(negative, 0, rounded)
	}
	if rounded>>uint(f.M+1) != 0 {
		exp++
		rounded >>= 1
		if exp >= int(f.ExpAllOnes()) {
			return f.Inf(negative)
		}
	}
	return f.Pack(negative, uint64(exp), rounded)
}

// overflow returns the result of rounding a value too large for the format.
func (f Format) overflow(negative bool, mode RoundingMode) uint64 {
	switch mode {
	case RoundTowardZero:
		return f.MaxFinite(negative)
	case RoundTowardPositive:
		if negative {
			return f.MaxFinite(true)
		}
	case RoundTowardNegative:
		if !negative {
			return f.MaxFinite(false)
		}
	}
	return f.Inf(negative)
}
