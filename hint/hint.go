package hint

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(DecodeFloatHint)
	solver.RegisterHint(DecomposeForRoundingHint)
	solver.RegisterHint(AbsHint)
	solver.RegisterHint(NormalizeHint)
	solver.RegisterHint(RightShiftHint)
}

// DecodeFloatHint splits an (E, M) bit pattern into its sign, biased
// exponent and mantissa fields.
func DecodeFloatHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	v := inputs[0].Uint64()
	E := inputs[1].Uint64()
	M := inputs[2].Uint64()
	s := v >> (E + M)
	e := (v >> M) - (s << E)
	m := v - (s << (E + M)) - (e << M)

	outputs[0].SetUint64(s)
	outputs[1].SetUint64(e)
	outputs[2].SetUint64(m)
	return nil
}

// DecomposeForRoundingHint splits value into kept || guard || round || rest
// for a truncation by shift bits. For shift < 2 the round bit is zero and
// for shift < 3 so is rest.
func DecomposeForRoundingHint(
	field *big.Int,
	inputs []*big.Int,
	outputs []*big.Int,
) error {
	value := new(big.Int).Set(inputs[0])
	shift := int(inputs[1].Uint64())

	outputs[0].Rsh(value, uint(shift))
	outputs[1].SetUint64(uint64(value.Bit(shift - 1)))
	if shift >= 2 {
		outputs[2].SetUint64(uint64(value.Bit(shift - 2)))
	} else {
		outputs[2].SetUint64(0)
	}
	if shift >= 3 {
		outputs[3].And(value, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(shift-2)), big.NewInt(1)))
	} else {
		outputs[3].SetUint64(0)
	}

	return nil
}

// AbsHint returns (v >= 0, |v|), reading field elements above half the
// modulus as negative.
func AbsHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	v := inputs[0]
	half := new(big.Int).Rsh(field, 1)
	if v.Cmp(half) > 0 {
		outputs[0].SetUint64(0)
		outputs[1].Sub(field, v)
	} else {
		outputs[0].SetUint64(1)
		outputs[1].Set(v)
	}
	return nil
}

// NormalizeHint counts the leading zeros of a bit_length-bit value, so that
// shifting it left by the count puts its MSB at bit bit_length - 1. A zero
// value has bit_length leading zeros.
func NormalizeHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	value := inputs[0]
	bit_length := int(inputs[1].Uint64())
	shift := bit_length - value.BitLen()
	if shift < 0 {
		shift = 0
	}
	outputs[0].SetUint64(uint64(shift))
	return nil
}

// RightShiftHint splits value into value >> shift and the shift bits that
// fall off.
func RightShiftHint(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	value := inputs[0]
	shift := uint(inputs[1].Uint64())
	outputs[0].Rsh(value, shift)
	outputs[1].And(value, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), shift), big.NewInt(1)))
	return nil
}
