package complexnum

import (
	"strings"

	"numkit/domain/core"
)

// Operation names a complex-number operation reachable through Evaluate
type Operation string

const (
	OperationAdd       Operation = "add"
	OperationSubtract  Operation = "subtract"
	OperationMultiply  Operation = "multiply"
	OperationDivide    Operation = "divide"
	OperationMagnitude Operation = "magnitude"
	OperationPhase     Operation = "phase"
	OperationConjugate Operation = "conjugate"
	OperationToPolar   Operation = "to_polar"
	OperationFromPolar Operation = "from_polar"
)

// arity is the number of real arguments each operation takes. Binary
// operations take re1 im1 re2 im2, unary ones re im, from_polar r θ.
var arity = map[Operation]int{
	OperationAdd:       4,
	OperationSubtract:  4,
	OperationMultiply:  4,
	OperationDivide:    4,
	OperationMagnitude: 2,
	OperationPhase:     2,
	OperationConjugate: 2,
	OperationToPolar:   2,
	OperationFromPolar: 2,
}

// Operations lists every operation in display order
func Operations() []Operation {
	return []Operation{
		OperationAdd,
		OperationSubtract,
		OperationMultiply,
		OperationDivide,
		OperationMagnitude,
		OperationPhase,
		OperationConjugate,
		OperationToPolar,
		OperationFromPolar,
	}
}

// ParseOperation resolves an operation name; dashes and case are ignored
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if _, ok := arity[op]; ok {
		return op, nil
	}
	return "", core.NewInvalidArgumentError("unknown complex operation %q", name)
}

// Number is the JSON form of a complex result
type Number struct {
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
	Text      string  `json:"text"`
}

func numberOf(z complex128) *Number {
	return &Number{Real: real(z), Imaginary: imag(z), Text: Format(z)}
}

// Outcome holds exactly one of a complex, scalar or polar result
type Outcome struct {
	Complex *Number  `json:"complex,omitempty"`
	Scalar  *float64 `json:"scalar,omitempty"`
	Polar   *Polar   `json:"polar,omitempty"`
}

// Evaluate applies an operation to positional real arguments. Results that
// overflow float64 are rejected.
func Evaluate(op Operation, args []float64) (*Outcome, error) {
	want, ok := arity[op]
	if !ok {
		return nil, core.NewInvalidArgumentError("unknown complex operation %q", op)
	}
	if len(args) != want {
		return nil, core.NewInvalidArgumentError("%s takes %d arguments, got %d", op, want, len(args))
	}

	if op == OperationFromPolar {
		z, err := FromPolar(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return complexOutcome(op, z)
	}

	a, err := New(args[0], args[1])
	if err != nil {
		return nil, err
	}

	switch op {
	case OperationMagnitude:
		return scalarOutcome(op, Magnitude(a))
	case OperationPhase:
		return scalarOutcome(op, Phase(a))
	case OperationConjugate:
		return complexOutcome(op, Conjugate(a))
	case OperationToPolar:
		p := ToPolar(a)
		if !finite(p.Magnitude) {
			return nil, core.NewInvalidArgumentError("%s overflows for arguments %v", op, args)
		}
		return &Outcome{Polar: &p}, nil
	}

	b, err := New(args[2], args[3])
	if err != nil {
		return nil, err
	}
	switch op {
	case OperationAdd:
		return complexOutcome(op, Add(a, b))
	case OperationSubtract:
		return complexOutcome(op, Subtract(a, b))
	case OperationMultiply:
		return complexOutcome(op, Multiply(a, b))
	default:
		z, err := Divide(a, b)
		if err != nil {
			return nil, err
		}
		return complexOutcome(op, z)
	}
}

func complexOutcome(op Operation, z complex128) (*Outcome, error) {
	if !IsFinite(z) {
		return nil, core.NewInvalidArgumentError("%s overflows float64", op)
	}
	return &Outcome{Complex: numberOf(z)}, nil
}

func scalarOutcome(op Operation, v float64) (*Outcome, error) {
	if !finite(v) {
		return nil, core.NewInvalidArgumentError("%s overflows float64", op)
	}
	return &Outcome{Scalar: &v}, nil
}
