package circuit

import (
	"fmt"
	"math/bits"

	"github.com/consensys/gnark/frontend"

	"fpmodel/float"
	"fpmodel/gadget"
	"fpmodel/hint"
)

// MaxAddWidth bounds M + 2 + precision, the width of an aligned sum with its
// carry, so that normalisation stays well below the field modulus.
const MaxAddWidth = 120

// AddCircuit proves Result = A + B (or A - B) as computed by float.AddEx:
// the smaller operand is widened by precision guard bits and truncated during
// alignment, the sum is rounded once, denormal results flush to a signed zero
// and overflow goes to infinity in every mode.
type AddCircuit struct {
	A      frontend.Variable `gnark:",secret"`
	B      frontend.Variable `gnark:",secret"`
	Result frontend.Variable `gnark:",public"`

	format    float.Format
	mode      float.RoundingMode
	precision int
	subtract  bool
}

func NewAddCircuit(width int, mode float.RoundingMode, precision_bits int) *AddCircuit {
	f := float.FormatOf(width)
	if !mode.Valid() {
		panic(fmt.Sprintf("unsupported rounding mode %d", int(mode)))
	}
	if precision_bits < 0 || f.M+2+precision_bits > MaxAddWidth {
		panic(fmt.Sprintf("unsupported adder precision %d for %v", precision_bits, f))
	}
	return &AddCircuit{format: f, mode: mode, precision: precision_bits}
}

// NewSubCircuit proves Result = A - B, see float.SubEx.
func NewSubCircuit(width int, mode float.RoundingMode, precision_bits int) *AddCircuit {
	c := NewAddCircuit(width, mode, precision_bits)
	c.subtract = true
	return c
}

func (c *AddCircuit) Define(api frontend.API) error {
	g := gadget.New(api)
	f := c.format
	E, M, p := uint(f.E), uint(f.M), uint(c.precision)
	sign_shift := pow2(E + M)

	// The aligned significands have `M + 1 + p` bits, their sum one more.
	align_width := M + 1 + p
	sum_width := align_width + 1

	x, err := newFloat(api, &g, c.A, f)
	if err != nil {
		return err
	}
	y, err := newFloat(api, &g, c.B, f)
	if err != nil {
		return err
	}
	b := c.B
	if c.subtract {
		// flip the sign of B, both in its fields and in its bit pattern
		b = api.Add(b, api.Mul(api.Sub(1, api.Mul(2, y.Sign)), sign_shift))
		y.Sign = g.Not(y.Sign)
	}

	x_nan, y_nan := x.isNaN(api, &g), y.isNaN(api, &g)
	x_inf, y_inf := x.isInf(api), y.isInf(api)
	x_zero, y_zero := x.isZero(api), y.isZero(api)

	// Significands with the implicit bit. Denormals have none and behave as
	// exponent 1.
	full_x := api.Add(x.Mantissa, api.Mul(g.Not(x.ExponentIsMin), pow2(M)))
	full_y := api.Add(y.Mantissa, api.Mul(g.Not(y.ExponentIsMin), pow2(M)))
	eff_exp_x := api.Add(x.Exponent, x.ExponentIsMin)
	eff_exp_y := api.Add(y.Exponent, y.ExponentIsMin)

	// Order the operands by exponent. The smaller one is shifted right.
	exp_diff, x_is_large := g.Abs(api.Sub(eff_exp_x, eff_exp_y), uint64(E))
	large := api.Mul(api.Select(x_is_large, full_x, full_y), pow2(p))
	small := api.Mul(api.Select(x_is_large, full_y, full_x), pow2(p))
	sign_large := api.Select(x_is_large, x.Sign, y.Sign)
	sign_small := api.Select(x_is_large, y.Sign, x.Sign)
	res_exp := api.Select(x_is_large, eff_exp_x, eff_exp_y)

	// A shift of align_width or more clears the small operand, so cap it there.
	shift_length := uint64(bits.Len(align_width))
	shift := g.Min(exp_diff, uint64(align_width), uint64(bits.Len(max(align_width, uint(1)<<E))))
	two_to_shift := g.QueryPowerOf2(shift, shift_length)

	// Truncating right shift: small = aligned * 2^shift + dropped, with
	// 0 <= dropped < 2^shift. The dropped bits do not reach the rounder.
	outputs, err := api.Compiler().NewHint(hint.RightShiftHint, 2, small, shift)
	if err != nil {
		return err
	}
	aligned := outputs[0]
	dropped := outputs[1]
	g.AssertBitLength(aligned, uint64(align_width))
	g.AssertBitLength(dropped, uint64(align_width))
	g.AssertBitLength(api.Sub(two_to_shift, dropped, 1), uint64(align_width))
	api.AssertIsEqual(api.Add(api.Mul(aligned, two_to_shift), dropped), small)

	// For unlike signs the sign follows the larger aligned magnitude.
	op_is_sub := api.Xor(x.Sign, y.Sign)
	difference, large_wins := g.Abs(api.Sub(large, aligned), uint64(align_width))
	magnitude := api.Select(op_is_sub, difference, api.Add(large, aligned))
	sign := api.Select(op_is_sub, api.Select(large_wins, sign_large, sign_small), x.Sign)
	magnitude_is_zero := api.IsZero(magnitude)

	// Normalise the magnitude so that its MSB sits at bit sum_width - 1.
	outputs, err = api.Compiler().NewHint(hint.NormalizeHint, 1, magnitude, uint64(sum_width))
	if err != nil {
		return err
	}
	leading_zeros := outputs[0]
	normalized := api.Mul(magnitude, g.QueryPowerOf2(leading_zeros, uint64(bits.Len(sum_width))))
	normalized_bits := g.AssertBitLength(normalized, uint64(sum_width))
	api.AssertIsEqual(normalized_bits[sum_width-1], g.Not(magnitude_is_zero))

	// Rewrite the normalised magnitude as `kept || guard || round || sticky || 0`
	// (big-endian), where `kept` has M + 1 bits including the implicit one.
	// The lowest bit is only set after a carry out of the sum and is
	// truncated without reaching the rounder.
	lsb := normalized_bits[p+1]
	var guard, round, sticky frontend.Variable = 0, 0, 0
	if p >= 1 {
		guard = normalized_bits[p]
	}
	if p >= 2 {
		round = normalized_bits[p-1]
	}
	if p >= 3 {
		sticky = g.OrAll(normalized_bits[1 : p-1]...)
	}
	increment := roundIncrement(api, &g, c.mode, sign, lsb, guard, round, sticky)
	significand := api.Add(api.FromBinary(normalized_bits[p+1:]...), increment)

	// fixOverflow: rounding can only carry out as 2^(M+1), which renormalises
	// to a zero mantissa one exponent up.
	mantissa_overflow := g.IsEq(significand, pow2(M+1))
	mantissa := api.Select(mantissa_overflow, 0, api.Sub(significand, pow2(M)))
	exponent := api.Sub(api.Add(res_exp, 1, mantissa_overflow), leading_zeros)

	exponent_length := uint64(bits.Len(uint(1)<<E + 2*sum_width))
	is_inf := g.IsPositive(api.Sub(exponent, f.ExpAllOnes()), exponent_length)
	is_normal := g.IsPositive(api.Sub(exponent, 1), exponent_length)

	signed_zero := api.Mul(sign, sign_shift)
	result := api.Select(
		is_inf,
		api.Add(signed_zero, f.Inf(false)),
		api.Select(
			is_normal,
			api.Add(signed_zero, api.Mul(exponent, pow2(M)), mantissa),
			signed_zero,
		),
	)

	// Exact cancellation is +0, except under round-toward-negative.
	var cancelled frontend.Variable = 0
	if c.mode == float.RoundTowardNegative {
		cancelled = api.Mul(op_is_sub, sign_shift)
	}
	result = api.Select(magnitude_is_zero, cancelled, result)

	// Special values, lowest priority first.
	result = api.Select(y_zero, c.A, result)
	result = api.Select(x_zero, b, result)
	result = api.Select(api.And(x_zero, y_zero), api.Mul(api.And(x.Sign, y.Sign), sign_shift), result)
	result = api.Select(y_inf, b, result)
	result = api.Select(x_inf, c.A, result)
	inf_minus_inf := g.AndAll(x_inf, y_inf, op_is_sub)
	result = api.Select(g.OrAll(x_nan, y_nan, inf_minus_inf), f.CanonicalNaN(), result)

	api.AssertIsEqual(c.Result, result)
	return nil
}
