// Package apint provides a fixed-capacity unsigned integer used to hold
// intermediate mantissas that do not fit in a machine word.
package apint

import (
	"github.com/holiman/uint256"
)

// Capacity is the number of bits held by a Uint256.
const Capacity = 256

const words = Capacity / 64

// Uint256 is an unsigned integer of Capacity bits with value semantics.
// The zero value is 0. Every method works on a copy, so results never
// alias their operands.
type Uint256 struct {
	v uint256.Int // little-endian by word index
}

func FromUint64(x uint64) Uint256 {
	var z Uint256
	z.v.SetUint64(x)
	return z
}

// Bit returns bit i, or 0 for any i outside [0, Capacity).
func (x Uint256) Bit(i int) uint {
	if i < 0 || i >= Capacity {
		return 0
	}
	return uint(x.v[i/64]>>(uint(i)%64)) & 1
}

// AnyBitSetUpTo reports whether any of the bits 0..=max is set.
// It returns false for max < 0.
func (x Uint256) AnyBitSetUpTo(max int) bool {
	if max < 0 {
		return false
	}
	if max >= Capacity {
		max = Capacity - 1
	}
	return !x.And(Mask(max + 1)).IsZero()
}

// Mask returns a value with the low n bits set.
func Mask(n int) Uint256 {
	var m Uint256
	if n <= 0 {
		return m
	}
	if n >= Capacity {
		m.v.SetAllOne()
		return m
	}
	m.v.Lsh(uint256.NewInt(1), uint(n))
	m.v.SubUint64(&m.v, 1)
	return m
}

func (x Uint256) IsZero() bool {
	return x.v.IsZero()
}

// BitLen returns the number of bits needed to represent x; 0 for x == 0.
func (x Uint256) BitLen() int {
	return x.v.BitLen()
}

// Uint64 truncates x to its low 64 bits.
func (x Uint256) Uint64() uint64 {
	return x.v.Uint64()
}

func (x Uint256) And(y Uint256) Uint256 {
	var z Uint256
	z.v.And(&x.v, &y.v)
	return z
}

// Lsh returns x << n. Bits shifted past Capacity are lost; n >= Capacity gives 0.
func (x Uint256) Lsh(n int) Uint256 {
	if n < 0 {
		panic("apint: negative shift")
	}
	var z Uint256
	if n >= Capacity {
		return z
	}
	z.v.Lsh(&x.v, uint(n))
	return z
}

// Rsh returns x >> n; n >= Capacity gives 0.
func (x Uint256) Rsh(n int) Uint256 {
	if n < 0 {
		panic("apint: negative shift")
	}
	var z Uint256
	if n >= Capacity {
		return z
	}
	z.v.Rsh(&x.v, uint(n))
	return z
}

// Add returns x + y modulo 2^Capacity.
func (x Uint256) Add(y Uint256) Uint256 {
	var z Uint256
	z.v.Add(&x.v, &y.v)
	return z
}

func (x Uint256) AddUint64(y uint64) Uint256 {
	var z Uint256
	z.v.AddUint64(&x.v, y)
	return z
}

// Sub returns x - y modulo 2^Capacity.
func (x Uint256) Sub(y Uint256) Uint256 {
	var z Uint256
	z.v.Sub(&x.v, &y.v)
	return z
}

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x Uint256) Cmp(y Uint256) int {
	return x.v.Cmp(&y.v)
}

// MulUint64 returns the full 128-bit product a * b.
func MulUint64(a, b uint64) Uint256 {
	var z Uint256
	z.v.Mul(uint256.NewInt(a), uint256.NewInt(b))
	return z
}

// Text formats x in the given base (2, 8, 10 or 16) without a prefix.
func (x Uint256) Text(base int) string {
	return x.v.ToBig().Text(base)
}

func (x Uint256) String() string {
	return "0x" + x.Text(16)
}
