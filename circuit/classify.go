package circuit

import (
	"github.com/consensys/gnark/frontend"

	"fpmodel/float"
	"fpmodel/gadget"
)

// ClassifyCircuit proves the ten classification flags of a bit pattern.
// Flags are in packed-struct order, see float.Class.Flags.
type ClassifyCircuit struct {
	Bits  frontend.Variable     `gnark:",secret"`
	Flags [10]frontend.Variable `gnark:",public"`

	format float.Format
}

func NewClassifyCircuit(width int) *ClassifyCircuit {
	return &ClassifyCircuit{format: float.FormatOf(width)}
}

func (c *ClassifyCircuit) Define(api frontend.API) error {
	g := gadget.New(api)
	x, err := newFloat(api, &g, c.Bits, c.format)
	if err != nil {
		return err
	}
	sign := x.Sign
	exponent_is_min := x.ExponentIsMin
	exponent_is_max := x.ExponentIsMax
	mantissa_is_zero := x.MantissaIsZero
	is_quiet := x.MantissaBits[c.format.M-1]
	positive := g.Not(sign)

	is_zero := x.isZero(api)
	is_denormal := api.And(exponent_is_min, g.Not(mantissa_is_zero))
	is_normal := api.And(g.Not(exponent_is_min), g.Not(exponent_is_max))
	is_inf := x.isInf(api)
	is_nan := x.isNaN(api, &g)

	flags := [10]frontend.Variable{
		api.And(positive, is_inf),
		api.And(positive, is_normal),
		api.And(positive, is_denormal),
		api.And(positive, is_zero),
		api.And(sign, is_zero),
		api.And(sign, is_denormal),
		api.And(sign, is_normal),
		api.And(sign, is_inf),
		api.And(is_nan, is_quiet),
		api.And(is_nan, g.Not(is_quiet)),
	}
	for i := range flags {
		api.AssertIsEqual(c.Flags[i], flags[i])
	}

	return nil
}
