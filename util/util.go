package util

import (
	"fmt"
	"strconv"
	"strings"

	"fpmodel/float"
)

// Literal is the notation of an integer literal on the command line or in a
// vector file.
type Literal int

const (
	Dec Literal = iota
	Hex
	Bin
	Oct
)

func (l Literal) Prefix() string {
	switch l {
	case Hex:
		return "0x"
	case Bin:
		return "0b"
	case Oct:
		return "0o"
	}
	return ""
}

func (l Literal) String() string {
	return [...]string{"dec", "hex", "bin", "oct"}[l]
}

// DetectFormat returns the notation of s from its prefix. Anything without
// a 0x, 0b or 0o prefix is decimal.
func DetectFormat(s string) Literal {
	switch strings.ToLower(s[:min(2, len(s))]) {
	case "0x":
		return Hex
	case "0b":
		return Bin
	case "0o":
		return Oct
	}
	return Dec
}

// ParseBits parses a width-bit pattern written in any supported notation.
func ParseBits(s string, width int) (uint64, error) {
	f := float.FormatOf(width)
	kind := DetectFormat(s)

	var base int
	digits := s[len(kind.Prefix()):]
	switch kind {
	case Hex:
		base = 16
	case Bin:
		base = 2
	case Oct:
		base = 8
	default:
		base = 10
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), base, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	if v&^f.WidthMask() != 0 {
		return 0, fmt.Errorf("%s does not fit in %d bits", s, width)
	}
	return v, nil
}

// Result is a bit pattern rendered in every notation.
type Result struct {
	Value string
	Hex   string
	Bin   string
	Dec   string
	Oct   string
}

func Render(bits uint64, width int) Result {
	f := float.FormatOf(width)
	bits &= f.WidthMask()
	return Result{
		Value: strconv.FormatFloat(float.ToFloat64(bits, width), 'g', -1, 64),
		Hex:   fmt.Sprintf("%0*x", width/4, bits),
		Bin:   fmt.Sprintf("%0*b", width, bits),
		Dec:   strconv.FormatUint(bits, 10),
		Oct:   strconv.FormatUint(bits, 8),
	}
}

// In returns the pattern in the given notation, with its prefix.
func (r Result) In(l Literal) string {
	switch l {
	case Hex:
		return l.Prefix() + r.Hex
	case Bin:
		return l.Prefix() + r.Bin
	case Oct:
		return l.Prefix() + r.Oct
	}
	return r.Dec
}

var printDigits = map[int]int{16: 5, 32: 10, 64: 18}

// FormatValue prints the value of a bit pattern in fixed and scientific
// notation, separated by a tab.
func FormatValue(bits uint64, width int) string {
	v := float.ToFloat64(bits, width)
	d := printDigits[float.FormatOf(width).Width]
	return fmt.Sprintf("%.*f\t%.*e", d, v, d, v)
}
