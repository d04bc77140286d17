package fastmath

// Rational approximation of tanh derived from Lambert's continued
// fraction, truncated to a degree-7 numerator over a degree-6
// denominator.

func tanhNum(x float32) float32 {
	x2 := x * x

	return (((x2+378)*x2+17325)*x2 + 135135) * x
}

func tanhDen(x float32) float32 {
	x2 := x * x

	return ((28*x2+3150)*x2+62370)*x2 + 135135
}

// TanhRaw returns a fast approximation of the hyperbolic tangent of x.
// For large |x| the result may land slightly outside [-1, 1], and NaN
// and infinite inputs are not handled; use [Tanh] when that matters.
func TanhRaw(x float32) float32 {
	return tanhNum(x) / tanhDen(x)
}

// Tanh returns a fast approximation of the hyperbolic tangent of x.
//
// The maximum absolute error across the whole domain is below 1e-4,
// and the result always lies in [-1, 1].
//
// Special cases are:
//
//	Tanh(±0) = ±0
//	Tanh(±Inf) = ±1
//	Tanh(NaN) = NaN
func Tanh(x float32) float32 {
	if isNaN(x) {
		return x
	}

	// The numerator grows as x^7 and overflows before the denominator;
	// by then the true result is ±1 to full precision.
	num := tanhNum(x)
	if isInf(num) {
		return Copysign(1, num)
	}

	result := num / tanhDen(x)
	switch {
	case result > 1:
		return 1
	case result < -1:
		return -1
	default:
		return result
	}
}
