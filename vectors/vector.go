package vectors

import (
	"fmt"
	"strconv"
	"strings"

	"fpmodel/float"
	"fpmodel/util"
)

type Op string

const (
	OpAdd      Op = "add"
	OpSub      Op = "sub"
	OpMul      Op = "mul"
	OpDiv      Op = "div"
	OpFMA      Op = "fma"
	OpFMS      Op = "fms"
	OpSqrt     Op = "sqrt"
	OpRecip    Op = "recip"
	OpInvSqrt  Op = "invsqrt"
	OpCmp      Op = "cmp"
	OpClassify Op = "classify"
)

var arity = map[Op]int{
	OpAdd: 2, OpSub: 2, OpMul: 2, OpDiv: 2,
	OpFMA: 3, OpFMS: 3,
	OpSqrt: 1, OpRecip: 1, OpInvSqrt: 1,
	OpCmp: 2, OpClassify: 1,
}

// Arity returns the number of operands of op, or 0 for an unknown op.
func (o Op) Arity() int {
	return arity[o]
}

// Arithmetic reports whether op produces a floating-point bit pattern.
func (o Op) Arithmetic() bool {
	return o != OpCmp && o != OpClassify && o.Arity() > 0
}

// Vector is a single test case. For cmp the result is -1, 0 or 1 stored as
// a two's complement uint64; for classify it is the packed flag word.
type Vector struct {
	Op      Op
	Width   int
	Mode    float.RoundingMode
	A, B, C uint64
	Want    uint64
	HasWant bool
}

// Operands returns the operands the op actually uses.
func (v Vector) Operands() []uint64 {
	return []uint64{v.A, v.B, v.C}[:v.Op.Arity()]
}

// ParseVector parses one line of the form
//
//	op width mode a [b [c]] [= want]
//
// Operands and want accept any literal notation, and operands may also be
// special value names. A cmp result is a signed decimal.
func ParseVector(line string) (Vector, error) {
	var v Vector
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return v, fmt.Errorf("vector %q: too few fields", line)
	}

	v.Op = Op(fields[0])
	n := v.Op.Arity()
	if n == 0 {
		return v, fmt.Errorf("vector %q: unknown op %q", line, fields[0])
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil || (width != 16 && width != 32 && width != 64) {
		return v, fmt.Errorf("vector %q: bad width %q", line, fields[1])
	}
	v.Width = width
	if v.Mode, err = float.ParseRoundingMode(fields[2]); err != nil {
		return v, fmt.Errorf("vector %q: %w", line, err)
	}

	rest := fields[3:]
	if len(rest) < n {
		return v, fmt.Errorf("vector %q: %s takes %d operands", line, v.Op, n)
	}
	operands := make([]uint64, 3)
	for i := 0; i < n; i++ {
		if operands[i], err = parseOperand(rest[i], width); err != nil {
			return v, fmt.Errorf("vector %q: %w", line, err)
		}
	}
	v.A, v.B, v.C = operands[0], operands[1], operands[2]

	switch rest = rest[n:]; {
	case len(rest) == 0:
	case len(rest) == 2 && rest[0] == "=":
		if v.Want, err = parseResult(v.Op, rest[1], width); err != nil {
			return v, fmt.Errorf("vector %q: %w", line, err)
		}
		v.HasWant = true
	default:
		return v, fmt.Errorf("vector %q: trailing fields %q", line, rest)
	}
	return v, nil
}

// parseOperand accepts a literal or one of SpecialNames.
func parseOperand(s string, width int) (uint64, error) {
	if strings.ContainsAny(s[:1], "+-qs") {
		return Special(width, s)
	}
	return util.ParseBits(s, width)
}

func parseResult(op Op, s string, width int) (uint64, error) {
	switch op {
	case OpCmp:
		c, err := strconv.ParseInt(s, 10, 8)
		if err != nil || c < -1 || c > 1 {
			return 0, fmt.Errorf("bad compare result %q", s)
		}
		return uint64(c), nil
	case OpClassify:
		return util.ParseBits(s, 16)
	}
	return util.ParseBits(s, width)
}

// FormatResult renders a result of op the way ParseVector reads it.
func FormatResult(op Op, result uint64, width int) string {
	switch op {
	case OpCmp:
		return strconv.FormatInt(int64(result), 10)
	case OpClassify:
		return fmt.Sprintf("0x%03x", result)
	}
	return "0x" + util.Render(result, width).Hex
}

func (v Vector) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %v", v.Op, v.Width, v.Mode)
	for _, x := range v.Operands() {
		b.WriteString(" 0x" + util.Render(x, v.Width).Hex)
	}
	if v.HasWant {
		b.WriteString(" = " + FormatResult(v.Op, v.Want, v.Width))
	}
	return b.String()
}
