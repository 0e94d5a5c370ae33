package gadget

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"fpmodel/hint"
)

type IntGadget struct {
	api frontend.API
}

func New(api frontend.API) IntGadget {
	return IntGadget{api}
}

// AssertBitLength constrains v to fit in bit_length bits and returns its
// little-endian bit decomposition.
func (f *IntGadget) AssertBitLength(v frontend.Variable, bit_length uint64) []frontend.Variable {
	if bit_length == 0 {
		f.api.AssertIsEqual(v, 0)
		return nil
	}
	return f.api.ToBinary(v, int(bit_length))
}

func (f *IntGadget) Not(v frontend.Variable) frontend.Variable {
	return f.api.Sub(1, v)
}

// IsEq returns 1 if a == b and 0 otherwise.
func (f *IntGadget) IsEq(a, b frontend.Variable) frontend.Variable {
	return f.api.IsZero(f.api.Sub(a, b))
}

// IsNonZero returns 1 if v != 0.
func (f *IntGadget) IsNonZero(v frontend.Variable) frontend.Variable {
	return f.Not(f.api.IsZero(v))
}

func (f *IntGadget) OrAll(vs ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for _, v := range vs {
		acc = f.api.Or(acc, v)
	}
	return acc
}

func (f *IntGadget) AndAll(vs ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 1
	for _, v := range vs {
		acc = f.api.And(acc, v)
	}
	return acc
}

// Abs returns |v| and whether v >= 0, for a v whose magnitude is below
// 2^length. Zero is non-negative.
func (f *IntGadget) Abs(v frontend.Variable, length uint64) (frontend.Variable, frontend.Variable) {
	outputs, err := f.api.Compiler().NewHint(hint.AbsHint, 2, v)
	if err != nil {
		panic(err)
	}
	is_non_negative := outputs[0]
	f.api.AssertIsBoolean(is_non_negative)
	abs := f.api.Select(
		is_non_negative,
		v,
		f.api.Neg(v),
	)
	f.AssertBitLength(abs, length)
	// -0 would otherwise pass as negative.
	f.api.AssertIsEqual(f.api.Mul(f.api.IsZero(v), f.Not(is_non_negative)), 0)

	return abs, is_non_negative
}

// IsPositive returns 1 if v >= 0. |v| must be below 2^length.
func (f *IntGadget) IsPositive(v frontend.Variable, length uint64) frontend.Variable {
	_, is_non_negative := f.Abs(v, length)
	return is_non_negative
}

// Max returns the larger of a and b, where |a - b| < 2^diff_length.
func (f *IntGadget) Max(a, b frontend.Variable, diff_length uint64) frontend.Variable {
	return f.api.Select(f.IsPositive(f.api.Sub(a, b), diff_length), a, b)
}

// Min returns the smaller of a and b, where |a - b| < 2^diff_length.
func (f *IntGadget) Min(a, b frontend.Variable, diff_length uint64) frontend.Variable {
	return f.api.Select(f.IsPositive(f.api.Sub(a, b), diff_length), b, a)
}

// QueryPowerOf2 returns 2^v for a v of at most bit_length bits.
func (f *IntGadget) QueryPowerOf2(v frontend.Variable, bit_length uint64) frontend.Variable {
	bits := f.AssertBitLength(v, bit_length)
	var result frontend.Variable = 1
	for i, b := range bits {
		factor := new(big.Int).Lsh(big.NewInt(1), uint(1)<<uint(i))
		result = f.api.Mul(result, f.api.Select(b, factor, 1))
	}
	return result
}
