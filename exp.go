package fastmath

import "math"

// The exponential paths build the result's bit pattern directly: the
// integer part of x*2^23*log2(base) lands in the exponent field and a
// quadratic in the remaining fraction corrects the significand. The
// coefficients are pre-scaled by 2^-23 so the fraction can stay in
// integer form.
const (
	exp2Neg23 = 1.1920929e-7

	expC0 = 0.3371894346 * exp2Neg23 * exp2Neg23
	expC1 = 0.657636276 * exp2Neg23
	expC2 = 1.00172476

	expFloorMask = -1 << signifBits
)

// Saturation limits: 2^x overflows float32 from x = 128 upward and
// flushes to zero from x = -127 downward; the base-e limits divide
// those by log2(e).
const (
	exp2Upper = 128
	exp2Lower = -127
	expUpper  = 128 / math.Log2E
	expLower  = -127 / math.Log2E
)

// seriesCutoff bounds the region where Expm1, Exp2m1 and Log21p use a
// short series instead of the full function.
const seriesCutoff = 0.25

func expRaw(x, log2Base float32) float32 {
	mul := int32(log2Base * (1 << signifBits) * x)
	floor := mul & expFloorMask
	frac := float32(mul - floor)

	approx := (expC0*frac+expC1)*frac + expC2

	// The wrapping add slides the quadratic's bit pattern up or down
	// by whole binades.
	return math.Float32frombits(math.Float32bits(approx) + uint32(floor))
}

// Exp2Raw returns a fast approximation of 2**x for |x| <= 151. Outside
// that range it returns an unspecified numeric result, never a panic;
// use [Exp2] when saturation and NaN handling matter.
func Exp2Raw(x float32) float32 {
	return expRaw(x, 1)
}

// ExpRaw returns a fast approximation of e**x for |x| <= 104. Outside
// that range it returns an unspecified numeric result, never a panic;
// use [Exp] when saturation and NaN handling matter.
func ExpRaw(x float32) float32 {
	return expRaw(x, math.Log2E)
}

// Exp2 returns a fast approximation of 2**x.
//
// The relative error stays below 0.002 wherever the true result is a
// normal float32; in the subnormal result range (x < -126) it can reach
// 1. Inputs at or below -127 flush to zero, inputs at or above 128
// saturate to +Inf.
//
// Special cases are:
//
//	Exp2(-Inf) = 0
//	Exp2(+Inf) = +Inf
//	Exp2(NaN) = NaN
func Exp2(x float32) float32 {
	switch {
	case x <= exp2Lower:
		return 0
	case x < exp2Upper:
		return Exp2Raw(x)
	default:
		// Overflows to +Inf; the addition also propagates NaN without
		// a dedicated branch.
		return x + float32(math.Inf(1))
	}
}

// Exp returns a fast approximation of e**x.
//
// The relative error stays below 0.002 wherever the true result is a
// normal float32; in the subnormal result range (x < -126 ln 2) it can
// reach 1. Inputs at or below -127/log2(e) flush to zero, inputs at or
// above 128/log2(e) saturate to +Inf.
//
// Special cases are:
//
//	Exp(-Inf) = 0
//	Exp(+Inf) = +Inf
//	Exp(NaN) = NaN
func Exp(x float32) float32 {
	switch {
	case x <= expLower:
		return 0
	case x < expUpper:
		return ExpRaw(x)
	default:
		return x + float32(math.Inf(1))
	}
}

// expm1Series evaluates exp(u)-1 as u + u²/2 + u³/6 + u⁴/24, accurate
// to about 3e-5 relative for |u| < 0.25.
func expm1Series(u float32) float32 {
	return u * (1 + u*(0.5+u*(1.0/6+u*(1.0/24))))
}

// Expm1 returns a fast approximation of e**x - 1 that keeps its
// relative accuracy near zero, where Exp(x) - 1 would cancel.
//
// The maximum relative error is below 0.01.
//
// Special cases are:
//
//	Expm1(±0) = ±0
//	Expm1(-Inf) = -1
//	Expm1(+Inf) = +Inf
//	Expm1(NaN) = NaN
func Expm1(x float32) float32 {
	if Abs(x) < seriesCutoff {
		return expm1Series(x)
	}

	return Exp(x) - 1
}

// Exp2m1 returns a fast approximation of 2**x - 1 that keeps its
// relative accuracy near zero, where Exp2(x) - 1 would cancel.
//
// The maximum relative error is below 0.01.
//
// Special cases are:
//
//	Exp2m1(±0) = ±0
//	Exp2m1(-Inf) = -1
//	Exp2m1(+Inf) = +Inf
//	Exp2m1(NaN) = NaN
func Exp2m1(x float32) float32 {
	u := math.Ln2 * x
	if Abs(u) < seriesCutoff {
		return expm1Series(u)
	}

	return Exp2(x) - 1
}
