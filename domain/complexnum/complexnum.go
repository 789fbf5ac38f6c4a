package complexnum

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"numkit/domain/core"
)

// New builds a complex number from cartesian parts. Both parts must be finite.
func New(re, im float64) (complex128, error) {
	if !finite(re) {
		return 0, core.NewInvalidArgumentError("real part must be a finite number")
	}
	if !finite(im) {
		return 0, core.NewInvalidArgumentError("imaginary part must be a finite number")
	}
	return complex(re, im), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFinite reports whether both parts of z are finite
func IsFinite(z complex128) bool {
	return finite(real(z)) && finite(imag(z))
}

func Add(a, b complex128) complex128      { return a + b }
func Subtract(a, b complex128) complex128 { return a - b }
func Multiply(a, b complex128) complex128 { return a * b }

// Divide returns a/b. A zero divisor fails with ErrDivisionByZero.
func Divide(a, b complex128) (complex128, error) {
	if b == 0 {
		return 0, core.ErrDivisionByZero
	}
	return a / b, nil
}

// Magnitude returns |z|
func Magnitude(z complex128) float64 {
	return cmplx.Abs(z)
}

// Phase returns the argument of z in radians, in [-π, π]
func Phase(z complex128) float64 {
	return cmplx.Phase(z)
}

func Conjugate(z complex128) complex128 {
	return cmplx.Conj(z)
}

// Polar is the polar form of a complex number
type Polar struct {
	Magnitude float64 `json:"magnitude"`
	Phase     float64 `json:"phase"`
}

// ToPolar converts z to polar form
func ToPolar(z complex128) Polar {
	r, theta := cmplx.Polar(z)
	return Polar{Magnitude: r, Phase: theta}
}

// FromPolar builds a complex number from a magnitude and a phase in radians
func FromPolar(magnitude, phase float64) (complex128, error) {
	if !finite(magnitude) || !finite(phase) {
		return 0, core.NewInvalidArgumentError("polar magnitude and phase must be finite numbers")
	}
	return cmplx.Rect(magnitude, phase), nil
}

// Format renders z canonically: "3+4i", "3-i", "-i", "5i", "7", "0"
func Format(z complex128) string {
	re, im := real(z), imag(z)
	if im == 0 {
		return formatFloat(re)
	}

	var b strings.Builder
	if re != 0 {
		b.WriteString(formatFloat(re))
		if im > 0 {
			b.WriteByte('+')
		}
	}
	switch im {
	case 1:
	case -1:
		b.WriteByte('-')
	default:
		b.WriteString(formatFloat(im))
	}
	b.WriteByte('i')
	return b.String()
}

func formatFloat(f float64) string {
	if f == 0 {
		// drop the sign of -0
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
