package arithmetic

import (
	"math"
	"math/bits"
)

// The checked helpers report ok=false instead of wrapping when the exact
// result does not fit in an int64.

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (a >= 0 && b < 0 && c < 0) || (a < 0 && b > 0 && c >= 0) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	negative := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint64(a), absUint64(b))
	if hi != 0 {
		return 0, false
	}
	if negative {
		if lo > 1<<63 {
			return 0, false
		}
		// two's complement covers lo == 1<<63 (math.MinInt64)
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// powInt64 raises base to a non-negative exponent by squaring. Every
// intermediate product is checked, so huge exponents stop after at most 63
// rounds.
func powInt64(base, exponent int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for exponent > 0 {
		if exponent&1 == 1 {
			if result, ok = mulInt64(result, base); !ok {
				return 0, false
			}
		}
		exponent >>= 1
		if exponent > 0 {
			if base, ok = mulInt64(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// lcmInt64 is LCM with overflow reporting; math.MinInt64 has no int64
// magnitude and is reported as overflow.
func lcmInt64(a, b int64) (int64, bool) {
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	return mulInt64(abs(a/GCD(a, b)), abs(b))
}
