package vectors

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"fpmodel/float"
)

func TestSpecial(t *testing.T) {
	tests := []struct {
		width int
		name  string
		want  uint64
	}{
		{16, "+zero", 0x0000},
		{16, "-zero", 0x8000},
		{16, "+inf", 0x7c00},
		{16, "-inf", 0xfc00},
		{16, "qnan", 0x7e00},
		{16, "-qnan", 0xfe00},
		{16, "snan", 0x7c01},
		{16, "-snan", 0xfc01},
		{32, "+inf", 0x7f800000},
		{32, "-snan", 0xff800001},
		{64, "qnan", 0x7ff8000000000000},
		{64, "-zero", 0x8000000000000000},
	}
	for _, tc := range tests {
		got, err := Special(tc.width, tc.name)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%d %s", tc.width, tc.name)
	}

	_, err := Special(16, "nan")
	require.Error(t, err)

	for _, name := range SpecialNames {
		_, err := Special(32, name)
		require.NoError(t, err, name)
	}
}

func TestCanonicalize(t *testing.T) {
	require.Equal(t, uint64(0x7e00), Canonicalize(0xfc01, 16))
	require.Equal(t, uint64(0x7e00), Canonicalize(0x7fff, 16))
	require.Equal(t, uint64(0x0000), Canonicalize(0x8000, 16))
	require.Equal(t, uint64(0xfc00), Canonicalize(0xfc00, 16))
	require.Equal(t, uint64(0x7fc00000), Canonicalize(0xffc00001, 32))
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		line string
		want Vector
	}{
		{
			"add 16 rne 0x3c00 0x3c00 = 0x4000",
			Vector{Op: OpAdd, Width: 16, Mode: float.RoundNearestEven, A: 0x3c00, B: 0x3c00, Want: 0x4000, HasWant: true},
		},
		{
			"sub 32 RTZ 1065353216 0b0",
			Vector{Op: OpSub, Width: 32, Mode: float.RoundTowardZero, A: 0x3f800000},
		},
		{
			"fma 64 rpi 0x3ff0000000000000 0x4000000000000000 +inf",
			Vector{Op: OpFMA, Width: 64, Mode: float.RoundTowardPositive, A: 0x3ff0000000000000, B: 0x4000000000000000, C: 0x7ff0000000000000},
		},
		{
			"sqrt 16 rna 0o36000 = 0x3c00",
			Vector{Op: OpSqrt, Width: 16, Mode: float.RoundNearestAwayFromZero, A: 0x3c00, Want: 0x3c00, HasWant: true},
		},
		{
			"cmp 16 rne 0xbc00 0x3c00 = -1",
			Vector{Op: OpCmp, Width: 16, Mode: float.RoundNearestEven, A: 0xbc00, B: 0x3c00, Want: ^uint64(0), HasWant: true},
		},
		{
			"classify 32 rni -qnan = 0x100",
			Vector{Op: OpClassify, Width: 32, Mode: float.RoundTowardNegative, A: 0xffc00000, Want: 0x100, HasWant: true},
		},
	}
	for _, tc := range tests {
		got, err := ParseVector(tc.line)
		require.NoError(t, err, tc.line)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseVector(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestParseVectorErrors(t *testing.T) {
	for _, line := range []string{
		"add 16 rne",
		"pow 16 rne 0x3c00 0x3c00",
		"add 24 rne 0x3c00 0x3c00",
		"add 16 up 0x3c00 0x3c00",
		"add 16 rne 0x3c00",
		"add 16 rne 0x3c00 0x10000",
		"add 16 rne 0x3c00 0x3c00 0x4000",
		"add 16 rne 0x3c00 0x3c00 = ",
		"cmp 16 rne 0x3c00 0x3c00 = 2",
		"sqrt 16 rne nan",
	} {
		_, err := ParseVector(line)
		require.Error(t, err, line)
	}
}

func TestVectorString(t *testing.T) {
	for _, line := range []string{
		"add 16 rne 0x3c00 0x3c00 = 0x4000",
		"mul 32 rpi 0x3f800000 0xc0000000",
		"fms 64 rna 0x3ff0000000000000 0x0000000000000001 0x7ff8000000000000 = 0x7ff8000000000000",
		"cmp 16 rtz 0x3c00 0x7e00 = 0",
		"cmp 16 rtz 0xbc00 0x3c00 = -1",
		"classify 16 rni 0xfc00 = 0x080",
		"invsqrt 32 rne 0x40800000",
	} {
		v, err := ParseVector(line)
		require.NoError(t, err, line)
		require.Equal(t, line, v.String())
	}
}

const sample = `# fp16 smoke vectors
add 16 rne 0x3c00 0x3c00 = 0x4000

sub 16 rne 0x4000 0x3c00 = 0x3c00   # 2 - 1
mul 16 rtz 0x4000 0x4200 = 0x4600
cmp 16 rne 0x7e00 0x3c00 = 0
`

func TestRead(t *testing.T) {
	vs, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, vs, 4)
	require.Equal(t, OpSub, vs[1].Op)
	require.Equal(t, uint64(0x3c00), vs[1].Want)

	_, err = Read(strings.NewReader("add 16 rne 0x3c00 0x3c00\nbogus\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestWriteOpen(t *testing.T) {
	vs := Generate(16, float.RoundNearestEven, 50, 1)
	for i := range vs {
		vs[i].Want = float.Add(vs[i].A, vs[i].B, 16, float.RoundNearestEven)
		vs[i].HasWant = true
	}

	dir := t.TempDir()
	for _, name := range []string{"plain.txt", "vectors.zst", "vectors.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Write(path, vs))
			got, err := Open(path)
			require.NoError(t, err)
			if diff := cmp.Diff(vs, got); diff != "" {
				t.Errorf("roundtrip through %s mismatch (-want +got):\n%s", name, diff)
			}
		})
	}
}

func TestCompressedStreams(t *testing.T) {
	var text bytes.Buffer
	require.NoError(t, Encode(&text, Generate(32, float.RoundTowardZero, 200, 2)))

	for _, name := range []string{"x.zst", "x.lz4"} {
		var packed bytes.Buffer
		w, err := NewWriter(&packed, name)
		require.NoError(t, err)
		_, err = w.Write(text.Bytes())
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.Less(t, packed.Len(), text.Len(), name)

		r, err := NewReader(&packed, name)
		require.NoError(t, err)
		var out bytes.Buffer
		_, err = out.ReadFrom(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, text.String(), out.String(), name)
	}
}
