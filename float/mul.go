package float

import (
	"fpmodel/apint"
)

// Mul is the bit-accurate multiplier. The full product of the two
// significands is kept in the accumulator, so the only rounding is the final
// one. Like AddEx, results below the normal range are flushed to zero.
func Mul(a, b uint64, width int, mode RoundingMode) uint64 {
	f := FormatOf(width)
	mode.mustBeValid()

	sign_a, exp_a, mant_a := f.Unpack(a)
	sign_b, exp_b, mant_b := f.Unpack(b)
	kind_a, kind_b := f.KindOf(a), f.KindOf(b)
	res_sign := sign_a != sign_b

	switch {
	case isNaNKind(kind_a) || isNaNKind(kind_b):
		return f.CanonicalNaN()
	case kind_a == KindInf && kind_b == KindZero, kind_a == KindZero && kind_b == KindInf:
		// 0 * Inf
		return f.CanonicalNaN()
	case kind_a == KindInf || kind_b == KindInf:
		return f.Inf(res_sign)
	case kind_a == KindZero || kind_b == KindZero:
		return f.Zero(res_sign)
	}

	full_a, eff_exp_a := f.significand(exp_a, mant_a)
	full_b, eff_exp_b := f.significand(exp_b, mant_b)

	// Both significands are below `2^(M + 1)`, so the product is below
	// `2^(2M + 2)` and its MSB is at most bit `2M + 1`. Taking `2M + 1` as the
	// normalised position of the implicit bit, the product of two normal
	// numbers has exponent `e_a + e_b - bias` (+1 for the implicit bit moving
	// up one place).
	point := 2*f.M + 1
	product := apint.MulUint64(full_a, full_b)
	exponent := eff_exp_a + eff_exp_b - f.Bias + 1

	return f.roundAndPack(res_sign, exponent, product, point, mode)
}
