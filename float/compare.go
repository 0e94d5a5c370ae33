package float

// Compare returns -1 if a < b, +1 if a > b and 0 otherwise. NaN operands
// are unordered and compare as 0, and +0 equals -0.
func Compare(a, b uint64, width int) int {
	f := FormatOf(width)
	if f.IsNaN(a) || f.IsNaN(b) {
		return 0
	}

	sign_a, _, _ := f.Unpack(a)
	sign_b, _, _ := f.Unpack(b)
	magnitude := f.WidthMask() >> 1
	mag_a, mag_b := a&magnitude, b&magnitude

	switch {
	case mag_a == 0 && mag_b == 0:
		return 0
	case sign_a && !sign_b:
		return -1
	case !sign_a && sign_b:
		return 1
	}

	// Same sign: the encodings order like the magnitudes, reversed for negatives.
	c := cmpUint(mag_a, mag_b)
	if sign_a {
		return -c
	}
	return c
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
