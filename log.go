package fastmath

import (
	"math"
	"math/bits"
)

// Quadratic correction for the mantissa contribution, fitted to
// minimise the worst-case absolute error of Log2Raw over a binade.
const (
	log2A = -0.6296735
	log2B = 1.466967
)

// Log2 returns a fast approximation of the base-2 logarithm of x.
//
// The maximum absolute error across all positive inputs, subnormals
// included, is below 0.009; the maximum relative error is below 0.022.
// The result is exact when x is a power of two, and the approximation
// never inverts ordering: x1 <= x2 implies Log2(x1) <= Log2(x2).
//
// Special cases are:
//
//	Log2(±0) = -Inf
//	Log2(x < 0) = NaN
//	Log2(+Inf) = +Inf
//	Log2(NaN) = NaN
//
// See [Log2Raw] for a faster variant restricted to positive, finite,
// normal inputs.
func Log2(x float32) float32 {
	sign, exp, signif := Decompose(x)
	switch {
	case exp == 0 && signif == 0:
		return float32(math.Inf(-1))
	case sign != 0:
		return float32(math.NaN())
	case exp == 0:
		return log2Subnormal(signif)
	case exp == expMask:
		// +Inf and NaN propagate unchanged.
		return x
	default:
		return Log2Raw(x)
	}
}

// log2Subnormal renormalises a subnormal significand into [1, 2) and
// folds the shift back into the exponent term.
func log2Subnormal(signif uint32) float32 {
	shift := uint32(bits.LeadingZeros32(signif)) - expBits

	return -126 - float32(shift) + Log2Raw(Recompose(0, expBias, signif<<shift))
}

// Log2Raw returns a fast approximation of the base-2 logarithm of a
// positive, finite, normal x. It is the branch-free hot path behind
// [Log2].
//
// The precondition is a contract, not a checked invariant: violating it
// yields an unspecified numeric result, never a panic. Error bounds
// match [Log2].
func Log2Raw(x float32) float32 {
	_, exp, signif := Decompose(x)

	// Round the exponent to the nearest half binade using the top
	// significand bit, leaving a remainder t in [-0.25, 0.5) where the
	// quadratic is tightest.
	highBit := (signif >> (signifBits - 1)) & 1
	addExp := int32(exp+highBit) - expBias
	t := Recompose(0, expBias^highBit, signif) - 1

	return float32(addExp) + t*(log2B+log2A*t)
}

// Log21p returns a fast approximation of log2(1 + x). For small |x| it
// evaluates a short series directly, avoiding the cancellation that
// makes Log2(1+x) lose its leading digits near zero.
//
// The maximum relative error is below 0.03 for x in (-1, +Inf).
//
// Special cases are:
//
//	Log21p(±0) = ±0
//	Log21p(-1) = -Inf
//	Log21p(x < -1) = NaN
//	Log21p(+Inf) = +Inf
//	Log21p(NaN) = NaN
func Log21p(x float32) float32 {
	if Abs(x) < seriesCutoff {
		return math.Log2E * x * (1 - 0.5*x)
	}

	return Log2(1 + x)
}
