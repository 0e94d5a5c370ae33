package util

import (
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// compressThreshold --> if linear expressions are larger than this, the frontend will introduce
// intermediate constraints. The lower this number is, the faster compile time should be (to a point)
// but resulting circuit will have more constraints (slower proving time).
const compressThreshold = 1000

// BenchProof compiles circuit to R1CS, runs the Groth16 setup once and
// times proving and verifying assignment b.N times.
func BenchProof(b *testing.B, circuit, assignment frontend.Circuit) {
	start := time.Now()
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit, frontend.WithCompressThreshold(compressThreshold))
	require.NoError(b, err)
	log.Info().
		Int("constraints", cs.GetNbConstraints()).
		Dur("took", time.Since(start)).
		Msg("compiled")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(b, err)
	publicWitness, err := fullWitness.Public()
	require.NoError(b, err)

	pk, vk, err := groth16.Setup(cs)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		proof, err := groth16.Prove(cs, pk, fullWitness)
		require.NoError(b, err)
		require.NoError(b, groth16.Verify(proof, vk, publicWitness))
	}
}

// BenchProofPlonk is BenchProof for the PLONK backend with an unsafe test SRS.
func BenchProofPlonk(b *testing.B, circuit, assignment frontend.Circuit) {
	start := time.Now()
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuit, frontend.WithCompressThreshold(compressThreshold))
	require.NoError(b, err)
	log.Info().
		Int("constraints", ccs.GetNbConstraints()).
		Dur("took", time.Since(start)).
		Msg("compiled")

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(b, err)
	publicWitness, err := fullWitness.Public()
	require.NoError(b, err)

	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	require.NoError(b, err)
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		proof, err := plonk.Prove(ccs, pk, fullWitness)
		require.NoError(b, err)
		require.NoError(b, plonk.Verify(proof, vk, publicWitness))
	}
}
