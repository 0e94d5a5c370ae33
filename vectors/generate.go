package vectors

import (
	"math/rand"

	"fpmodel/float"
)

var generatedSpecials = []string{"+zero", "-zero", "+inf", "-inf", "+qnan", "-qnan", "+snan", "-snan"}

// Normal and denormal operands paired with every special value.
var addTable = map[int][]uint64{
	16: {
		0x3c00, // 1.0
		0xc000, // -2.0
		0x06f3,
		0x0e82,
		0x02ab, // denormal
		0x82ab, // negative denormal
		0x0001, // smallest denormal
	},
	32: {0x3f800000, 0xc0000000, 0x40000000, 0x00400001, 0x80400001, 0x00000001},
	64: {0x3ff0000000000000, 0xc000000000000000, 0x4000000000000000, 0x0008000000000001, 0x8008000000000001, 0x0000000000000001},
}

var mulTable = map[int][]uint64{
	16: {
		0x3c00, // 1.0
		0xc000, // -2.0
		0x4000, // 2.0
		0x4200, // 3.0
		0x3800, // 0.5
		0x3400, // 0.25
		0xd6b8,
		0x8c61,
		0x06f3,
		0x0e82,
		0x03ff, // largest denormal
		0x0001, // smallest denormal
	},
	32: {0x3f800000, 0xc0000000, 0x40000000, 0x3f000000, 0x007fffff, 0x00000001},
	64: {0x3ff0000000000000, 0xc000000000000000, 0x4000000000000000, 0x3fe0000000000000, 0x000fffffffffffff, 0x0000000000000001},
}

// fp16 pairs scaled into the top bits of wider formats.
var fixedPairs = [][2]uint64{
	{0xc540, 0x2cab},
	{0x5a63, 0xdbdb},
}

// Generate returns the add vectors for one width and mode: every special
// value against every special and table value in both orders, the fixed
// normal pairs and randomCount random pairs of normal numbers.
func Generate(width int, mode float.RoundingMode, randomCount int, seed int64) []Vector {
	return GenerateOp(OpAdd, width, mode, randomCount, seed)
}

// GenerateOp is Generate for add, sub or mul.
func GenerateOp(op Op, width int, mode float.RoundingMode, randomCount int, seed int64) []Vector {
	f := float.FormatOf(width)
	var vs []Vector
	add := func(a, b uint64) {
		vs = append(vs, Vector{Op: op, Width: width, Mode: mode, A: a, B: b})
	}

	var specials []uint64
	for _, name := range generatedSpecials {
		v, err := Special(width, name)
		if err != nil {
			panic(err)
		}
		specials = append(specials, v)
	}
	table := addTable[width]
	if op == OpMul {
		table = mulTable[width]
	}

	all := append(append([]uint64{}, specials...), table...)
	for i, a := range all {
		for j, b := range all {
			if i < len(specials) || j < len(specials) {
				add(a, b)
			}
		}
	}

	if op != OpMul {
		for _, p := range fixedPairs {
			shift := uint(width - 16)
			add(p[0]<<shift, p[1]<<shift)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	normal := func() uint64 {
		return f.Pack(rng.Intn(2) == 1, uint64(1+rng.Intn(int(f.ExpAllOnes())-1)), rng.Uint64())
	}
	for i := 0; i < randomCount; i++ {
		add(normal(), normal())
	}
	return vs
}
