package vectors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fpmodel/float"
)

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		op    Op
		width int
		want  int
	}{
		// (specials + table)^2 - table^2, plus the fixed pairs for add and sub.
		{OpAdd, 16, 15*15 - 7*7 + 2},
		{OpSub, 32, 14*14 - 6*6 + 2},
		{OpAdd, 64, 14*14 - 6*6 + 2},
		{OpMul, 16, 20*20 - 12*12},
		{OpMul, 64, 14*14 - 6*6},
	}
	for _, tc := range tests {
		vs := GenerateOp(tc.op, tc.width, float.RoundTowardZero, 0, 1)
		require.Len(t, vs, tc.want, "%s %d", tc.op, tc.width)
		require.Len(t, GenerateOp(tc.op, tc.width, float.RoundTowardZero, 10, 1), tc.want+10)
	}
}

func TestGenerateRandomNormals(t *testing.T) {
	for _, width := range []int{16, 32, 64} {
		f := float.FormatOf(width)
		fixed := len(Generate(width, float.RoundNearestEven, 0, 7))
		vs := Generate(width, float.RoundNearestEven, 500, 7)
		for _, v := range vs[fixed:] {
			require.Equal(t, float.KindNormal, f.KindOf(v.A), "%d %#x", width, v.A)
			require.Equal(t, float.KindNormal, f.KindOf(v.B), "%d %#x", width, v.B)
			require.Equal(t, OpAdd, v.Op)
			require.Equal(t, float.RoundNearestEven, v.Mode)
			require.False(t, v.HasWant)
		}

		again := Generate(width, float.RoundNearestEven, 500, 7)
		require.Equal(t, vs, again, "same seed must give the same vectors")
	}
}

func TestGenerateFixedPairsScale(t *testing.T) {
	vs := Generate(32, float.RoundNearestEven, 0, 1)
	last := vs[len(vs)-1]
	require.Equal(t, uint64(0x5a630000), last.A)
	require.Equal(t, uint64(0xdbdb0000), last.B)
}
