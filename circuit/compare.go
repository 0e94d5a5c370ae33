package circuit

import (
	"github.com/consensys/gnark/frontend"

	"fpmodel/float"
	"fpmodel/gadget"
)

// CompareCircuit proves the ordering of two bit patterns as float.Compare
// sees it: Less is 1 for A < B and Greater is 1 for A > B. NaN operands are
// unordered and +0 equals -0, so both flags are 0 then.
type CompareCircuit struct {
	A       frontend.Variable `gnark:",secret"`
	B       frontend.Variable `gnark:",secret"`
	Less    frontend.Variable `gnark:",public"`
	Greater frontend.Variable `gnark:",public"`

	format float.Format
}

func NewCompareCircuit(width int) *CompareCircuit {
	return &CompareCircuit{format: float.FormatOf(width)}
}

func (c *CompareCircuit) Define(api frontend.API) error {
	g := gadget.New(api)
	f := c.format

	x, err := newFloat(api, &g, c.A, f)
	if err != nil {
		return err
	}
	y, err := newFloat(api, &g, c.B, f)
	if err != nil {
		return err
	}

	// Below the sign bit the encodings order like the magnitudes.
	sign_shift := pow2(f.SignShift())
	magnitude_x := api.Sub(c.A, api.Mul(x.Sign, sign_shift))
	magnitude_y := api.Sub(c.B, api.Mul(y.Sign, sign_shift))
	x_ge_y := g.IsPositive(api.Sub(magnitude_x, magnitude_y), uint64(f.Width-1))
	equal := g.IsEq(magnitude_x, magnitude_y)
	magnitude_lt := g.Not(x_ge_y)
	magnitude_gt := api.And(x_ge_y, g.Not(equal))

	// With equal signs the magnitude order decides, reversed for negatives.
	// Otherwise the negative operand is the smaller one.
	same_sign := g.IsEq(x.Sign, y.Sign)
	less := api.Select(same_sign, api.Select(x.Sign, magnitude_gt, magnitude_lt), x.Sign)
	greater := api.Select(same_sign, api.Select(x.Sign, magnitude_lt, magnitude_gt), y.Sign)

	unordered := g.OrAll(
		x.isNaN(api, &g),
		y.isNaN(api, &g),
		api.And(api.IsZero(magnitude_x), api.IsZero(magnitude_y)),
	)
	api.AssertIsEqual(c.Less, api.Select(unordered, 0, less))
	api.AssertIsEqual(c.Greater, api.Select(unordered, 0, greater))
	return nil
}
