package float

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"fpmodel/apint"
)

// Add adds two width-bit patterns with the width's default intermediate
// precision.
func Add(a, b uint64, width int, mode RoundingMode) uint64 {
	return AddEx(a, b, width, mode, FormatOf(width).DefaultPrecision)
}

// Sub computes a - b by flipping the sign of b and adding.
func Sub(a, b uint64, width int, mode RoundingMode) uint64 {
	return SubEx(a, b, width, mode, FormatOf(width).DefaultPrecision)
}

func SubEx(a, b uint64, width int, mode RoundingMode, precision_bits int) uint64 {
	f := FormatOf(width)
	return AddEx(a, b^(1<<f.SignShift()), width, mode, precision_bits)
}

// AddEx is a bit-accurate model of the hardware adder. Both mantissas are
// widened by precision_bits guard bits before alignment, so the amount of
// information that survives alignment (and hence the rounding decision) is
// controlled by the caller. Results that would be denormal are flushed to a
// signed zero.
//
// AddEx panics if precision_bits is negative or the aligned mantissa plus a
// carry bit does not fit in the accumulator.
func AddEx(a, b uint64, width int, mode RoundingMode, precision_bits int) uint64 {
	f := FormatOf(width)
	mode.mustBeValid()

	// The aligned mantissas have `M + 1 + precision_bits` bits, and the sum of
	// two of them needs one more for the carry.
	align_width := f.M + 1 + precision_bits
	if precision_bits < 0 || align_width+1 > apint.Capacity {
		panic(fmt.Sprintf("float: %d precision bits do not fit a %d-bit accumulator for %v", precision_bits, apint.Capacity, f))
	}

	a &= f.WidthMask()
	b &= f.WidthMask()
	sign_a, exp_a, mant_a := f.Unpack(a)
	sign_b, exp_b, mant_b := f.Unpack(b)
	kind_a, kind_b := f.KindOf(a), f.KindOf(b)

	// Special values, in priority order.
	switch {
	case isNaNKind(kind_a) || isNaNKind(kind_b):
		return f.CanonicalNaN()
	case kind_a == KindInf && kind_b == KindInf && sign_a != sign_b:
		// Inf - Inf
		return f.CanonicalNaN()
	case kind_a == KindInf:
		return a
	case kind_b == KindInf:
		return b
	case kind_a == KindZero && kind_b == KindZero:
		// +0 + -0 = +0, but -0 + -0 = -0
		return f.Zero(sign_a && sign_b)
	case kind_a == KindZero:
		return b
	case kind_b == KindZero:
		return a
	}

	full_a, eff_exp_a := f.significand(exp_a, mant_a)
	full_b, eff_exp_b := f.significand(exp_b, mant_b)

	aligned_a := apint.FromUint64(full_a).Lsh(precision_bits)
	aligned_b := apint.FromUint64(full_b).Lsh(precision_bits)

	// Shift the mantissa of the number with the smaller exponent to the right.
	// A shift of the accumulator width or more makes it vanish.
	var res_exp int
	exp_diff := eff_exp_a - eff_exp_b
	if exp_diff > 0 {
		aligned_b = aligned_b.Rsh(exp_diff)
		res_exp = eff_exp_a
	} else {
		aligned_a = aligned_a.Rsh(-exp_diff)
		res_exp = eff_exp_b
	}

	op_is_sub := sign_a != sign_b
	var res_mant apint.Uint256
	var res_sign bool
	if op_is_sub {
		// The sign follows the larger aligned magnitude, not the larger exponent.
		if aligned_a.Cmp(aligned_b) >= 0 {
			res_mant = aligned_a.Sub(aligned_b)
			res_sign = sign_a
		} else {
			res_mant = aligned_b.Sub(aligned_a)
			res_sign = sign_b
		}
	} else {
		res_mant = aligned_a.Add(aligned_b)
		res_sign = sign_a
	}

	if res_mant.IsZero() {
		// Exact cancellation is +0, except under round-toward-negative.
		return f.Zero(mode == RoundTowardNegative && op_is_sub)
	}

	return f.roundAndPack(res_sign, res_exp, res_mant, align_width-1, mode)
}

// significand returns the mantissa with its implicit bit and the effective
// biased exponent. Denormals have no implicit bit and behave as exponent 1.
func (f Format) significand(exp, mant uint64) (uint64, int) {
	if exp == 0 {
		return mant, 1
	}
	return 1<<uint(f.M) | mant, int(exp)
}

func isNaNKind(k Kind) bool {
	return k == KindQNaN || k == KindSNaN
}

// roundAndPack normalises `mant * 2^(exp - bias - point)` so that its MSB sits
// at bit `point`, rounds the `point` bits below it to M bits and packs the
// result. Exponents at or above all ones overflow to infinity, exponents at
// or below zero flush to a signed zero.
func (f Format) roundAndPack(negative bool, exp int, mant apint.Uint256, point int, mode RoundingMode) uint64 {
	msb := mant.BitLen() - 1
	shift := point - msb

	switch {
	case shift >= apint.Capacity || -shift >= apint.Capacity:
		// Unreachable while the precision check holds; if it fires the
		// accumulator is too small for the configured precision.
		log.Warn().
			Int("width", f.Width).
			Int("shift", shift).
			Msg("normalisation shift exceeds accumulator, result vanishes")
		mant = apint.Uint256{}
	case shift > 0:
		mant = mant.Lsh(shift)
	case shift < 0:
		mant = mant.Rsh(-shift)
	}
	exp -= shift

	// The rounder sees only the bits below the implicit bit.
	rounder_input := mant.And(apint.Mask(point))
	increment := RoundIncrement(rounder_input, negative, mode, point, f.M)

	// Put the implicit bit back so that a carry out of the fraction shows up
	// at bit M + 1 and can be shifted out together with it.
	significand := rounder_input.Rsh(point - f.M).
		Add(apint.FromUint64(1).Lsh(f.M)).
		AddUint64(increment)
	if significand.Bit(f.M+1) == 1 {
		exp++
		significand = significand.Rsh(1)
	}
	final_mant := significand.Uint64() & f.MantMask()

	switch {
	case exp >= int(f.ExpAllOnes()):
		return f.Inf(negative)
	case exp <= 0:
		// TODO: generate denormal results instead of flushing once the RTL
		// adder does.
		return f.Zero(negative)
	}
	return f.Pack(negative, uint64(exp), final_mant)
}
