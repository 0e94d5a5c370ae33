package hint

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/stretchr/testify/require"
)

func outputs(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	return out
}

func TestDecodeFloatHint(t *testing.T) {
	out := outputs(3)
	err := DecodeFloatHint(nil, []*big.Int{big.NewInt(0xfe01), big.NewInt(5), big.NewInt(10)}, out)
	require.NoError(t, err)
	require.Equal(t, uint64(1), out[0].Uint64())
	require.Equal(t, uint64(31), out[1].Uint64())
	require.Equal(t, uint64(0x201), out[2].Uint64())
}

func TestDecomposeForRoundingHint(t *testing.T) {
	tests := []struct {
		value, shift             int64
		kept, guard, round, rest uint64
	}{
		{0b1011_0110, 4, 0b1011, 0, 1, 0b10},
		{0b11, 1, 0b1, 1, 0, 0},
		{0b101, 2, 0b1, 0, 1, 0},
		{0b1111, 3, 0b1, 1, 1, 1},
	}
	for _, tc := range tests {
		out := outputs(4)
		err := DecomposeForRoundingHint(nil, []*big.Int{big.NewInt(tc.value), big.NewInt(tc.shift)}, out)
		require.NoError(t, err)
		require.Equal(t, tc.kept, out[0].Uint64(), "kept of %b", tc.value)
		require.Equal(t, tc.guard, out[1].Uint64(), "guard of %b", tc.value)
		require.Equal(t, tc.round, out[2].Uint64(), "round of %b", tc.value)
		require.Equal(t, tc.rest, out[3].Uint64(), "rest of %b", tc.value)
	}
}

func TestAbsHint(t *testing.T) {
	field := ecc.BN254.ScalarField()
	minus_five := new(big.Int).Sub(field, big.NewInt(5))

	out := outputs(2)
	require.NoError(t, AbsHint(field, []*big.Int{minus_five}, out))
	require.Equal(t, uint64(0), out[0].Uint64())
	require.Equal(t, uint64(5), out[1].Uint64())

	for _, v := range []int64{0, 7} {
		out = outputs(2)
		require.NoError(t, AbsHint(field, []*big.Int{big.NewInt(v)}, out))
		require.Equal(t, uint64(1), out[0].Uint64())
		require.Equal(t, uint64(v), out[1].Uint64())
	}
}

func TestNormalizeHint(t *testing.T) {
	tests := []struct {
		value, bit_length int64
		zeros             uint64
	}{
		{0b1000, 4, 0},
		{0b0001, 4, 3},
		{0b0110, 8, 5},
		{0, 12, 12},
	}
	for _, tc := range tests {
		out := outputs(1)
		require.NoError(t, NormalizeHint(nil, []*big.Int{big.NewInt(tc.value), big.NewInt(tc.bit_length)}, out))
		require.Equal(t, tc.zeros, out[0].Uint64(), "leading zeros of %b", tc.value)
	}
}

func TestRightShiftHint(t *testing.T) {
	out := outputs(2)
	require.NoError(t, RightShiftHint(nil, []*big.Int{big.NewInt(0b1101_0110), big.NewInt(3)}, out))
	require.Equal(t, uint64(0b11010), out[0].Uint64())
	require.Equal(t, uint64(0b110), out[1].Uint64())

	out = outputs(2)
	require.NoError(t, RightShiftHint(nil, []*big.Int{big.NewInt(0b101), big.NewInt(0)}, out))
	require.Equal(t, uint64(0b101), out[0].Uint64())
	require.Equal(t, uint64(0), out[1].Uint64())
}
