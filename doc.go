// Package fastmath provides fast float32 approximations of common
// transcendental functions: base-2 logarithm, exponentials, inverse
// tangent and hyperbolic tangent.
//
// Every function is a pure, allocation-free scalar computation built on
// IEEE-754 bit manipulation plus a small polynomial or rational
// correction. The trade is a documented, bounded error for a fraction
// of the standard library's latency, which suits inner loops in audio,
// graphics, signal processing and ML inference code.
//
// Each checked function has a faster Raw companion that skips input
// classification:
//
//   - The full functions (Log2, Exp, Exp2, Atan, Atan2, Tanh) accept
//     every float32 and follow the special-case tables in their doc
//     comments.
//   - The Raw variants (Log2Raw, ExpRaw, Exp2Raw, AtanRaw, TanhRaw)
//     impose a precondition on the caller. Violating it produces an
//     unspecified numeric value, never a panic, so they stay safe to
//     call on untrusted data that merely loses meaning out of range.
//
// # Accuracy
//
// Log2: absolute error < 0.009, relative error < 0.022, exact at
// powers of two.
//
// Exp, Exp2: relative error < 0.002 for normal results.
//
// Atan, Atan2: absolute error < 0.0038.
//
// Tanh: absolute error < 1e-4.
//
// # Usage
//
// Drop-in use in a hot loop, here converting an amplitude ratio to a
// logarithmic scale:
//
//	for i, v := range spectrum {
//	    dB[i] = 6.0205999 * fastmath.Log2(v)
//	}
//
// When inputs are known to be positive and normal, the raw variant
// removes the classification branches as well:
//
//	for i, v := range spectrum {
//	    dB[i] = 6.0205999 * fastmath.Log2Raw(v)
//	}
package fastmath
