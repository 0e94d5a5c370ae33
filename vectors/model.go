package vectors

import (
	"errors"
	"fmt"

	"fpmodel/float"
)

// ErrUnsupported is returned by a model that does not implement an op.
var ErrUnsupported = errors.New("operation not supported by model")

type Model interface {
	Name() string
	Eval(v Vector) (uint64, error)
}

// DefaultPrecision selects the width's default adder precision.
const DefaultPrecision = -1

// BitAccurate evaluates vectors with the bit-accurate adder and multiplier.
// Precision is the adder's guard-bit count; a negative value selects the
// width's default, and zero is a valid precision.
type BitAccurate struct {
	Precision int
}

func (m BitAccurate) Name() string {
	if m.Precision < 0 {
		return "bit-accurate"
	}
	return fmt.Sprintf("bit-accurate/p%d", m.Precision)
}

func (m BitAccurate) Eval(v Vector) (uint64, error) {
	precision := m.Precision
	if precision < 0 {
		precision = float.FormatOf(v.Width).DefaultPrecision
	}
	switch v.Op {
	case OpAdd:
		return float.AddEx(v.A, v.B, v.Width, v.Mode, precision), nil
	case OpSub:
		return float.SubEx(v.A, v.B, v.Width, v.Mode, precision), nil
	case OpMul:
		return float.Mul(v.A, v.B, v.Width, v.Mode), nil
	case OpCmp:
		return uint64(int64(float.Compare(v.A, v.B, v.Width))), nil
	case OpClassify:
		return uint64(float.Classify(v.A, v.Width).Pack()), nil
	}
	return 0, fmt.Errorf("%s: %s: %w", m.Name(), v.Op, ErrUnsupported)
}

// Native evaluates vectors on the host FPU.
type Native struct{}

func (Native) Name() string { return "native" }

func (m Native) Eval(v Vector) (uint64, error) {
	switch v.Op {
	case OpAdd:
		return float.NativeAdd(v.A, v.B, v.Width, v.Mode), nil
	case OpSub:
		return float.NativeSub(v.A, v.B, v.Width, v.Mode), nil
	case OpMul:
		return float.NativeMul(v.A, v.B, v.Width, v.Mode), nil
	case OpDiv:
		return float.NativeDiv(v.A, v.B, v.Width, v.Mode), nil
	case OpFMA:
		return float.NativeFMA(v.A, v.B, v.C, v.Width, v.Mode), nil
	case OpFMS:
		return float.NativeFMS(v.A, v.B, v.C, v.Width, v.Mode), nil
	case OpSqrt:
		return float.NativeSqrt(v.A, v.Width, v.Mode), nil
	case OpRecip:
		return float.NativeRecip(v.A, v.Width, v.Mode), nil
	case OpInvSqrt:
		return float.NativeInvSqrt(v.A, v.Width, v.Mode), nil
	case OpCmp:
		return uint64(int64(float.Compare(v.A, v.B, v.Width))), nil
	case OpClassify:
		return uint64(float.Classify(v.A, v.Width).Pack()), nil
	}
	return 0, fmt.Errorf("%s: %s: %w", m.Name(), v.Op, ErrUnsupported)
}
