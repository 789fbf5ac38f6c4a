package arithmetic

import (
	"math"
	"strings"

	"numkit/domain/core"

	"golang.org/x/exp/constraints"
)

// Number is any built-in integer or floating point type
type Number interface {
	constraints.Integer | constraints.Float
}

func Add[T Number](a, b T) T      { return a + b }
func Subtract[T Number](a, b T) T { return a - b }
func Multiply[T Number](a, b T) T { return a * b }

// Divide returns a/b as a float64. A zero divisor fails with ErrDivisionByZero
// for every numeric type, floats included.
func Divide[T Number](a, b T) (float64, error) {
	if b == 0 {
		return 0, core.ErrDivisionByZero
	}
	return float64(a) / float64(b), nil
}

// Power raises base to a non-negative integer exponent. Integer results wrap
// on overflow like ordinary multiplication.
func Power[T Number](base T, exponent int) (T, error) {
	if exponent < 0 {
		return 0, core.NewInvalidArgumentError("negative exponent %d not supported", exponent)
	}
	result := T(1)
	for ; exponent > 0; exponent >>= 1 {
		if exponent&1 == 1 {
			result *= base
		}
		base *= base
	}
	return result, nil
}

// maxFactorial is the largest n whose factorial fits in an int64
const maxFactorial = 20

// Factorial returns n! for 0 <= n <= 20
func Factorial(n int) (int64, error) {
	if n < 0 {
		return 0, core.NewInvalidArgumentError("factorial not defined for negative number %d", n)
	}
	if n > maxFactorial {
		return 0, core.NewInvalidArgumentError("factorial of %d overflows int64", n)
	}
	result := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		result *= i
	}
	return result, nil
}

func abs[T constraints.Integer](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD[T constraints.Integer](a, b T) T {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|; zero if either is zero
func LCM[T constraints.Integer](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	return abs(a/GCD(a, b)) * abs(b)
}

// IsPrime reports whether n is prime using 6k±1 trial division
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := int64(5); i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// Operation names a binary (or unary, for factorial) integer operation
type Operation string

const (
	OperationAdd       Operation = "add"
	OperationSubtract  Operation = "subtract"
	OperationMultiply  Operation = "multiply"
	OperationDivide    Operation = "divide"
	OperationPower     Operation = "power"
	OperationGCD       Operation = "gcd"
	OperationLCM       Operation = "lcm"
	OperationFactorial Operation = "factorial"
)

// Operations lists the operations accepted by Apply
func Operations() []Operation {
	return []Operation{
		OperationAdd,
		OperationSubtract,
		OperationMultiply,
		OperationDivide,
		OperationPower,
		OperationGCD,
		OperationLCM,
		OperationFactorial,
	}
}

// ParseOperation resolves an operation name, case-insensitively
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Operations() {
		if op == known {
			return op, nil
		}
	}
	return "", core.NewInvalidArgumentError("unknown arithmetic operation %q", name)
}

// Apply evaluates op on a and b. Factorial only reads a. Results that do not
// fit in an int64 fail with ErrOverflow instead of wrapping.
func Apply(op Operation, a, b int64) (float64, error) {
	var (
		v  int64
		ok = true
	)
	switch op {
	case OperationAdd:
		v, ok = addInt64(a, b)
	case OperationSubtract:
		v, ok = subInt64(a, b)
	case OperationMultiply:
		v, ok = mulInt64(a, b)
	case OperationDivide:
		return Divide(a, b)
	case OperationPower:
		if b < 0 {
			return 0, core.NewInvalidArgumentError("negative exponent %d not supported", b)
		}
		v, ok = powInt64(a, b)
	case OperationGCD:
		if a == math.MinInt64 || b == math.MinInt64 {
			ok = false
		} else {
			v = GCD(a, b)
		}
	case OperationLCM:
		v, ok = lcmInt64(a, b)
	case OperationFactorial:
		if a > maxFactorial {
			return 0, core.NewOverflowError("factorial of %d overflows int64", a)
		}
		f, err := Factorial(int(a))
		return float64(f), err
	default:
		return 0, core.NewInvalidArgumentError("unknown arithmetic operation %q", op)
	}
	if !ok {
		return 0, core.NewOverflowError("%s(%d, %d) overflows int64", op, a, b)
	}
	return float64(v), nil
}
