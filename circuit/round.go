package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"fpmodel/float"
	"fpmodel/gadget"
	"fpmodel/hint"
)

// MaxRoundInputWidth bounds the rounder input so that every recomposition
// stays below the BN254 scalar field modulus.
const MaxRoundInputWidth = 250

// RoundCircuit proves the rounding decision for truncating Value, an
// inputWidth-bit magnitude with sign Negative, to outputWidth bits.
// The mode and both widths are fixed when the circuit is compiled.
type RoundCircuit struct {
	Value     frontend.Variable `gnark:",secret"`
	Negative  frontend.Variable `gnark:",secret"`
	Increment frontend.Variable `gnark:",public"`

	mode        float.RoundingMode
	inputWidth  int
	outputWidth int
}

func NewRoundCircuit(mode float.RoundingMode, inputWidth, outputWidth int) *RoundCircuit {
	if !mode.Valid() {
		panic(fmt.Sprintf("unsupported rounding mode %d", int(mode)))
	}
	if inputWidth > MaxRoundInputWidth || outputWidth < 1 {
		panic(fmt.Sprintf("unsupported rounding widths %d -> %d", inputWidth, outputWidth))
	}
	return &RoundCircuit{mode: mode, inputWidth: inputWidth, outputWidth: outputWidth}
}

func (c *RoundCircuit) Define(api frontend.API) error {
	g := gadget.New(api)
	api.AssertIsBoolean(c.Negative)
	api.AssertIsBoolean(c.Increment)

	shift := c.inputWidth - c.outputWidth
	if shift <= 0 {
		g.AssertBitLength(c.Value, uint64(c.inputWidth))
		api.AssertIsEqual(c.Increment, 0)
		return nil
	}

	// Rewrite the value as `kept || guard || round || rest` (big-endian), where
	// * `kept` has outputWidth bits
	// * `guard` and `round` have 1 bit each
	// * `rest` has the remaining `shift - 2` bits
	// and provide them as hints to the circuit.
	outputs, err := api.Compiler().NewHint(hint.DecomposeForRoundingHint, 4, c.Value, shift)
	if err != nil {
		return err
	}
	kept := outputs[0]
	guard := outputs[1]
	round := outputs[2]
	rest := outputs[3]

	// Enforce the bit length of every piece. Pieces that do not exist for a
	// short shift must be zero.
	api.AssertIsBoolean(guard)
	api.AssertIsBoolean(round)
	kept_bits := g.AssertBitLength(kept, uint64(c.outputWidth))
	rest_len := 0
	if shift >= 3 {
		rest_len = shift - 2
	}
	g.AssertBitLength(rest, uint64(rest_len))
	if shift < 2 {
		api.AssertIsEqual(round, 0)
	}

	// Enforce that the pieces re-compose to the value.
	recomposed := api.Add(
		api.Mul(kept, pow2(uint(shift))),
		api.Mul(guard, pow2(uint(shift-1))),
		rest,
	)
	if shift >= 2 {
		recomposed = api.Add(recomposed, api.Mul(round, pow2(uint(shift-2))))
	}
	api.AssertIsEqual(recomposed, c.Value)

	lsb := kept_bits[0]
	sticky := g.IsNonZero(rest)
	increment := roundIncrement(api, &g, c.mode, c.Negative, lsb, guard, round, sticky)
	api.AssertIsEqual(c.Increment, increment)

	return nil
}
