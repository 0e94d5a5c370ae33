package circuit

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"fpmodel/float"
	"fpmodel/gadget"
	"fpmodel/hint"
)

// floatVar is a bit pattern split into its fields inside a circuit.
type floatVar struct {
	Sign     frontend.Variable
	Exponent frontend.Variable
	Mantissa frontend.Variable

	MantissaBits   []frontend.Variable
	ExponentIsMin  frontend.Variable
	ExponentIsMax  frontend.Variable
	MantissaIsZero frontend.Variable
}

// newFloat decodes v with a hint and constrains the fields to re-compose to
// it, which also bounds v to the format width.
func newFloat(api frontend.API, g *gadget.IntGadget, v frontend.Variable, format float.Format) (floatVar, error) {
	E := uint64(format.E)
	M := uint64(format.M)

	outputs, err := api.Compiler().NewHint(hint.DecodeFloatHint, 3, v, E, M)
	if err != nil {
		return floatVar{}, err
	}
	sign := outputs[0]
	exponent := outputs[1]
	mantissa := outputs[2]

	api.AssertIsBoolean(sign)
	g.AssertBitLength(exponent, E)
	mantissa_bits := g.AssertBitLength(mantissa, M)
	api.AssertIsEqual(
		api.Add(
			api.Mul(sign, pow2(uint(E+M))),
			api.Mul(exponent, pow2(uint(M))),
			mantissa,
		),
		v,
	)

	return floatVar{
		Sign:           sign,
		Exponent:       exponent,
		Mantissa:       mantissa,
		MantissaBits:   mantissa_bits,
		ExponentIsMin:  api.IsZero(exponent),
		ExponentIsMax:  g.IsEq(exponent, format.ExpAllOnes()),
		MantissaIsZero: api.IsZero(mantissa),
	}, nil
}

func (x floatVar) isNaN(api frontend.API, g *gadget.IntGadget) frontend.Variable {
	return api.And(x.ExponentIsMax, g.Not(x.MantissaIsZero))
}

func (x floatVar) isInf(api frontend.API) frontend.Variable {
	return api.And(x.ExponentIsMax, x.MantissaIsZero)
}

func (x floatVar) isZero(api frontend.API) frontend.Variable {
	return api.And(x.ExponentIsMin, x.MantissaIsZero)
}

// roundIncrement is float.GRS.Increment over circuit bits.
func roundIncrement(
	api frontend.API,
	g *gadget.IntGadget,
	mode float.RoundingMode,
	negative, lsb, guard, round, sticky frontend.Variable,
) frontend.Variable {
	inexact := g.OrAll(guard, round, sticky)
	switch mode {
	case float.RoundNearestEven:
		return api.And(guard, g.OrAll(round, sticky, lsb))
	case float.RoundTowardPositive:
		return api.And(g.Not(negative), inexact)
	case float.RoundTowardNegative:
		return api.And(negative, inexact)
	case float.RoundNearestAwayFromZero:
		return guard
	}
	return 0
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}
