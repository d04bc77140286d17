package fastmath

import "math"

// atanN2 is the quadratic coefficient from Rajan, Wang, Inkol and
// Joyal, "Efficient Approximations for the Arctangent Function",
// IEEE Signal Processing Magazine 23(3), 2006.
const atanN2 = 0.273

// AtanRaw returns a fast approximation of the inverse tangent of x,
// valid for |x| <= 1. Outside that range it returns an unspecified
// numeric result, never a panic; use [Atan] when range reduction
// matters.
//
// The polynomial is odd in x, so AtanRaw(-x) == -AtanRaw(x) bit for
// bit.
func AtanRaw(x float32) float32 {
	return (math.Pi/4 + atanN2 - atanN2*Abs(x)) * x
}

// Atan returns a fast approximation of the inverse tangent of x.
//
// The maximum absolute error across the whole domain is below 0.0038.
// Odd symmetry is exact: Atan(-x) and -Atan(x) carry the same bit
// pattern for every x.
//
// Special cases are:
//
//	Atan(±0) = ±0
//	Atan(±Inf) = ±π/2
//	Atan(NaN) = NaN
func Atan(x float32) float32 {
	if Abs(x) > 1 {
		// atan(x) = sign(x)*π/2 - atan(1/x); NaN never reaches here
		// because the comparison fails for it.
		return Copysign(math.Pi/2, x) - AtanRaw(1/x)
	}

	return AtanRaw(x)
}

// Atan2 returns a fast approximation of the four-quadrant inverse
// tangent of y/x.
//
// The maximum absolute error across all input pairs is below 0.0038.
// Quadrant selection follows the usual conventions, signed zeros
// included.
//
// Special cases are:
//
//	Atan2(NaN, x) = NaN
//	Atan2(y, NaN) = NaN
//	Atan2(±0, x >= +0) = ±0
//	Atan2(±0, x <= -0) = ±π
//	Atan2(±y, +Inf) = ±0 for finite y
//	Atan2(±y, -Inf) = ±π for finite y
//	Atan2(±Inf, x) = ±π/2 for finite x
//	Atan2(±Inf, +Inf) = ±π/4
//	Atan2(±Inf, -Inf) = ±3π/4
func Atan2(y, x float32) float32 {
	switch {
	case Abs(y) < Abs(x):
		// x dominates, so y/x is in (-1, 1); bias by the half-plane.
		var bias float32
		if x < 0 {
			bias = math.Pi
		}

		return Copysign(bias, y) + AtanRaw(y/x)
	case x == 0:
		switch {
		case y == 0:
			if sign, _, _ := Decompose(x); sign != 0 {
				return Copysign(math.Pi, y)
			}

			return Copysign(0, y)
		case isNaN(y):
			return y
		default:
			return Copysign(math.Pi/2, y)
		}
	case isInf(y) && isInf(x):
		// Both infinite: the answer is a fixed multiple of π/4.
		return Copysign(math.Pi/2-Copysign(math.Pi/4, x), y)
	default:
		// |y| >= |x| > 0, so x/y is in [-1, 1]; a NaN in either
		// argument falls through AtanRaw and propagates.
		return Copysign(math.Pi/2, y) - AtanRaw(x/y)
	}
}
