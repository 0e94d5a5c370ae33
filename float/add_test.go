package float

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddHalf(t *testing.T) {
	tests := []struct {
		a, b uint64
		mode RoundingMode
		want uint64
	}{
		{0x3c00, 0x3c00, RoundNearestEven, 0x4000},    // 1 + 1
		{0x4000, 0xbc00, RoundNearestEven, 0x3c00},    // 2 - 1
		{0x3c00, 0xbc00, RoundNearestEven, 0x0000},    // 1 - 1
		{0x3c00, 0xbc00, RoundTowardNegative, 0x8000}, // 1 - 1 under RNI
		{0x0000, 0x8000, RoundNearestEven, 0x0000},    // +0 + -0
		{0x8000, 0x8000, RoundNearestEven, 0x8000},    // -0 + -0
		{0x0000, 0x1234, RoundNearestEven, 0x1234},    // zero identity
		{0x8000, 0x0001, RoundNearestEven, 0x0001},    // zero identity keeps denormals
		{0x7c00, 0x3c00, RoundNearestEven, 0x7c00},    // Inf + 1
		{0x3c00, 0xfc00, RoundNearestEven, 0xfc00},    // 1 + -Inf
		{0x7c00, 0xfc00, RoundNearestEven, 0x7e00},    // Inf - Inf
		{0x7c01, 0x3c00, RoundNearestEven, 0x7e00},    // sNaN + 1
		{0x3c00, 0xfe00, RoundNearestEven, 0x7e00},    // 1 + -qNaN
		{0x7bff, 0x7bff, RoundNearestEven, 0x7c00},    // overflow
		{0x7bff, 0x7bff, RoundTowardZero, 0x7c00},     // the adder overflows to Inf in every mode
		{0x0001, 0x0001, RoundNearestEven, 0x0000},    // denormal result flushes
		{0x0400, 0x8001, RoundNearestEven, 0x0000},    // normal - denormal below the normal range
		{0x0400, 0x0001, RoundNearestEven, 0x0401},    // smallest normal + smallest denormal
		{0x3c00, 0x1000, RoundNearestEven, 0x3c00},    // 1 + 2^-11, tie to even
		{0x3c00, 0x1000, RoundTowardZero, 0x3c00},
		{0x3c00, 0x1000, RoundTowardPositive, 0x3c01},
		{0x3c00, 0x1000, RoundTowardNegative, 0x3c00},
		{0x3c00, 0x1000, RoundNearestAwayFromZero, 0x3c01},
		{0xbc00, 0x9000, RoundTowardNegative, 0xbc01}, // -1 - 2^-11
		{0xbc00, 0x9000, RoundTowardPositive, 0xbc00},
		{0x3c01, 0x1000, RoundNearestEven, 0x3c02}, // tie with odd LSB rounds up
		{0x3bff, 0x1000, RoundNearestEven, 0x3c00}, // carry out of the mantissa
		{0x4000, 0x3c00, RoundNearestEven, 0x4200}, // 2 + 1
		{0xc540, 0x2cab, RoundNearestEven, 0xc52d}, // -5.25 + 0.0729
		{0xc540, 0x2cab, RoundTowardPositive, 0xc52d},
		{0xc540, 0x2cab, RoundTowardNegative, 0xc52e},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%04x+%04x/%v", tc.a, tc.b, tc.mode), func(t *testing.T) {
			got := Add(tc.a, tc.b, 16, tc.mode)
			require.Equal(t, tc.want, got, "want %#04x, got %#04x", tc.want, got)
		})
	}
}

func TestSubFlipsSign(t *testing.T) {
	require.Equal(t, uint64(0x3c00), Sub(0x4000, 0x3c00, 16, RoundNearestEven))
	require.Equal(t, uint64(0xbc00), Sub(0x3c00, 0x4000, 16, RoundNearestEven))
	require.Equal(t, uint64(0x40000000), Sub(0x3f800000, 0xbf800000, 32, RoundNearestEven))
	require.Equal(t, uint64(0x8000000000000000), Sub(0x3ff0000000000000, 0x3ff0000000000000, 64, RoundTowardNegative))
}

func TestAddSpecials(t *testing.T) {
	for _, f := range []Format{Half, Single, Double} {
		nan := f.CanonicalNaN()
		snan := f.ExpAllOnes()<<uint(f.M) | 1
		one := uint64(f.Bias) << uint(f.M)
		for _, mode := range Modes {
			require.Equal(t, nan, Add(snan, one, f.Width, mode), "%v %v", f, mode)
			require.Equal(t, nan, Add(one, nan|1<<f.SignShift(), f.Width, mode), "%v %v", f, mode)
			require.Equal(t, nan, Add(f.Inf(false), f.Inf(true), f.Width, mode), "%v %v", f, mode)
			require.Equal(t, f.Inf(true), Add(f.Inf(true), f.Inf(true), f.Width, mode), "%v %v", f, mode)
			require.Equal(t, f.Inf(false), Add(f.MaxFinite(false), f.Inf(false), f.Width, mode), "%v %v", f, mode)
			require.Equal(t, f.Inf(false), Add(f.MaxFinite(false), f.MaxFinite(false), f.Width, mode), "%v %v", f, mode)
			require.Equal(t, one, Add(f.Zero(true), one, f.Width, mode), "%v %v", f, mode)
		}
	}
}

func TestAddCommutes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, f := range []Format{Half, Single, Double} {
		for _, mode := range Modes {
			for i := 0; i < 2000; i++ {
				a := rng.Uint64() & f.WidthMask()
				b := rng.Uint64() & f.WidthMask()
				require.Equal(t, Add(a, b, f.Width, mode), Add(b, a, f.Width, mode),
					"%v %v a=%#x b=%#x", f, mode, a, b)
			}
		}
	}
}

func TestAddModeOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, f := range []Format{Half, Single, Double} {
		for i := 0; i < 5000; i++ {
			a := rng.Uint64() & f.WidthMask()
			b := rng.Uint64() & f.WidthMask()
			down := Add(a, b, f.Width, RoundTowardNegative)
			zero := Add(a, b, f.Width, RoundTowardZero)
			up := Add(a, b, f.Width, RoundTowardPositive)
			if f.IsNaN(zero) {
				continue
			}
			require.LessOrEqual(t, Compare(down, zero, f.Width), 0, "%v a=%#x b=%#x", f, a, b)
			require.LessOrEqual(t, Compare(zero, up, f.Width), 0, "%v a=%#x b=%#x", f, a, b)
		}
	}
}

// With 32 guard bits no fp16 alignment loses bits, so the adder must agree
// with a single correct rounding of the exact sum whenever that sum is in the
// normal range.
func TestAddHalfExact(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	minNormal := math.Ldexp(1, -14)
	checked := 0
	for i := 0; i < 20000; i++ {
		a := uint64(rng.Intn(1 << 16))
		b := uint64(rng.Intn(1 << 16))
		if Half.IsNaN(a) || Half.IsNaN(b) || Half.KindOf(a) == KindInf || Half.KindOf(b) == KindInf {
			continue
		}
		exact := ToFloat64(a, 16) + ToFloat64(b, 16)
		if math.Abs(exact) < minNormal || math.Abs(exact) > 65504 {
			continue
		}
		for _, mode := range Modes {
			want := RoundFloat64(exact, 16, mode)
			require.Equal(t, want, Add(a, b, 16, mode), "a=%#04x b=%#04x mode=%v", a, b, mode)
		}
		checked++
	}
	require.Greater(t, checked, 1000)
}

func TestAddMatchesHost(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 20000; i++ {
		a := Single.Pack(rng.Intn(2) == 1, uint64(64+rng.Intn(127)), rng.Uint64())
		b := Single.Pack(rng.Intn(2) == 1, uint64(64+rng.Intn(127)), rng.Uint64())
		host := uint64(math.Float32bits(math.Float32frombits(uint32(a)) + math.Float32frombits(uint32(b))))
		if Single.KindOf(host) != KindNormal {
			continue
		}
		require.Equal(t, host, AddEx(a, b, 32, RoundNearestEven, 200), "a=%#08x b=%#08x", a, b)
	}

	for i := 0; i < 20000; i++ {
		a := Double.Pack(rng.Intn(2) == 1, uint64(512+rng.Intn(150)), rng.Uint64())
		b := Double.Pack(rng.Intn(2) == 1, uint64(512+rng.Intn(150)), rng.Uint64())
		host := math.Float64bits(math.Float64frombits(a) + math.Float64frombits(b))
		if Double.KindOf(host) != KindNormal {
			continue
		}
		require.Equal(t, host, AddEx(a, b, 64, RoundNearestEven, 190), "a=%#016x b=%#016x", a, b)
	}
}

func TestAddPrecisionTooLarge(t *testing.T) {
	require.Panics(t, func() { AddEx(0x3c00, 0x3c00, 16, RoundNearestEven, 245) })
	require.Panics(t, func() { AddEx(0x3c00, 0x3c00, 16, RoundNearestEven, -1) })
	require.NotPanics(t, func() { AddEx(0x3c00, 0x3c00, 16, RoundNearestEven, 244) })
	require.Panics(t, func() { Add(0x3c00, 0x3c00, 16, RoundingMode(5)) })
	require.Panics(t, func() { Add(0x3c00, 0x3c00, 24, RoundNearestEven) })
}

func TestAddAcrossFormats(t *testing.T) {
	for _, f := range []Format{Half, Single, Double} {
		one := f.Pack(false, uint64(f.Bias), 0)
		two := f.Pack(false, uint64(f.Bias+1), 0)
		nextUp := f.Pack(false, uint64(f.Bias), 1)
		halfUlp := f.Pack(false, uint64(f.Bias-f.M-1), 0)

		require.Equal(t, two, Add(one, one, f.Width, RoundNearestEven), "%v", f)
		require.Equal(t, f.Zero(false), Sub(one, one, f.Width, RoundNearestEven), "%v", f)
		require.Equal(t, one, Add(one, halfUlp, f.Width, RoundNearestEven), "%v", f)
		require.Equal(t, nextUp, Add(one, halfUlp, f.Width, RoundNearestAwayFromZero), "%v", f)
		require.Equal(t, nextUp, Add(one, halfUlp, f.Width, RoundTowardPositive), "%v", f)
		require.Equal(t, one, Add(one, halfUlp, f.Width, RoundTowardZero), "%v", f)
	}
}
