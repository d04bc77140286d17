package fastmath

import "math"

// IEEE-754 single precision layout.
const (
	expBits    = 8
	signifBits = 23

	expMask    = 1<<expBits - 1
	signifMask = 1<<signifBits - 1

	signShift = expBits + signifBits
	expBias   = 127
)

// Decompose splits x into its raw IEEE-754 fields: sign bit, biased
// exponent and significand. NaN payloads pass through untouched.
func Decompose(x float32) (sign, exp, signif uint32) {
	bits := math.Float32bits(x)
	return bits >> signShift, (bits >> signifBits) & expMask, bits & signifMask
}

// Recompose assembles a float32 from raw IEEE-754 fields. It is the
// inverse of [Decompose]: Recompose(Decompose(x)) reproduces x bit for
// bit. Each field is masked to its width, so out-of-range values cannot
// spill into neighbouring fields.
func Recompose(sign, exp, signif uint32) float32 {
	bits := (sign&1)<<signShift | (exp&expMask)<<signifBits | signif&signifMask
	return math.Float32frombits(bits)
}

// Abs returns the absolute value of x by clearing the sign bit.
// It is branch-free and maps NaN to NaN.
func Abs(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << signShift))
}

// Copysign returns a value with the magnitude of x and the sign of y.
func Copysign(x, y float32) float32 {
	const sign = 1 << signShift
	return math.Float32frombits(math.Float32bits(x)&^sign | math.Float32bits(y)&sign)
}

// Signum returns ±1 carrying the sign bit of x. Signed zeros keep
// their sign: Signum(0) is 1 and Signum(-0) is -1. Signum(NaN) is NaN.
func Signum(x float32) float32 {
	if isNaN(x) {
		return x
	}

	sign, _, _ := Decompose(x)

	return Recompose(sign, expBias, 0)
}

func isNaN(x float32) bool {
	return x != x
}

func isInf(x float32) bool {
	return x > math.MaxFloat32 || x < -math.MaxFloat32
}
