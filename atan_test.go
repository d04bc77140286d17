package fastmath

import (
	"math"
	"math/rand"
	"testing"
)

func TestAtanEdgeCases(t *testing.T) {
	if got := Atan(float32(math.NaN())); !isNaN(got) {
		t.Fatalf("Atan(NaN) mismatch: got %v want NaN", got)
	}

	if got, want := Atan(float32(math.Inf(1))), float32(math.Pi/2); got != want {
		t.Fatalf("Atan(+Inf) mismatch: got %v want %v", got, want)
	}

	if got, want := Atan(float32(math.Inf(-1))), float32(-math.Pi/2); got != want {
		t.Fatalf("Atan(-Inf) mismatch: got %v want %v", got, want)
	}

	if got := math.Float32bits(Atan(0)); got != 0 {
		t.Fatalf("Atan(0) mismatch: got %#08x want +0", got)
	}

	negZero := float32(math.Copysign(0, -1))
	if got := math.Float32bits(Atan(negZero)); got != 1<<signShift {
		t.Fatalf("Atan(-0) mismatch: got %#08x want -0", got)
	}

	// The two reduction branches meet at |x| = 1 close to ±pi/4.
	if got := Atan(1); Abs(got-math.Pi/4) >= 1e-6 {
		t.Fatalf("Atan(1) mismatch: got %v want ~pi/4", got)
	}

	if got := Atan(-1); Abs(got+math.Pi/4) >= 1e-6 {
		t.Fatalf("Atan(-1) mismatch: got %v want ~-pi/4", got)
	}
}

func TestAtanAccuracy(t *testing.T) {
	const prec = 1 << 16
	for j := -5; j <= 5; j++ {
		scale := float32(math.Ldexp(1, 20*j))
		for i := 0; i <= prec; i++ {
			x := (1 + float32(i)/prec) * scale
			got := Atan(x)
			want := math.Atan(float64(x))
			if abs := math.Abs(float64(got) - want); abs >= 0.0038 {
				t.Fatalf("Atan(%v) absolute error %v: got %v want %v", x, abs, got, want)
			}
		}
	}
}

// Negating the input must negate the output bit for bit; every branch
// of the reduction is sign-symmetric.
func TestAtanOddSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1e5; i++ {
		x := math.Float32frombits(rng.Uint32() &^ (1 << signShift))
		if isNaN(x) {
			continue
		}

		pos := Atan(x)
		neg := Atan(-x)
		if math.Float32bits(-pos) != math.Float32bits(neg) {
			t.Fatalf("Atan odd symmetry mismatch at %v: got %v and %v", x, pos, neg)
		}
	}
}

func TestAtanDenormals(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for n := 0; n < 300; n++ {
		x := Recompose(0, 1, rng.Uint32()&signifMask)
		for step := 0; step < 23; step++ {
			if x <= 0 {
				t.Fatalf("ladder left the positive range at %v", x)
			}

			got := Atan(x)
			want := math.Atan(float64(x))
			if abs := math.Abs(float64(got) - want); abs >= 0.0038 {
				t.Fatalf("Atan(%v) absolute error %v: got %v want %v", x, abs, got, want)
			}

			x /= 2
		}
	}
}

func TestAtan2SpecialCases(t *testing.T) {
	var (
		negZero = float32(math.Copysign(0, -1))
		inf     = float32(math.Inf(1))
		pi      = float32(math.Pi)
		halfPi  = float32(math.Pi / 2)
	)

	tests := []struct {
		y, x, want float32
	}{
		// Zero y: the sign of y picks the side of the axis, the sign
		// of x picks 0 versus pi.
		{0, 3, 0},
		{negZero, 3, negZero},
		{0, -3, pi},
		{negZero, -3, -pi},
		{0, 0, 0},
		{negZero, 0, negZero},
		{0, negZero, pi},
		{negZero, negZero, -pi},

		// Zero x with nonzero y resolves to the vertical axis.
		{2, 0, halfPi},
		{-2, 0, -halfPi},
		{2, negZero, halfPi},
		{-2, negZero, -halfPi},

		// One infinite argument dominates the other.
		{3, inf, 0},
		{-3, inf, negZero},
		{3, -inf, pi},
		{-3, -inf, -pi},
		{inf, 3, halfPi},
		{-inf, 3, -halfPi},
		{inf, -3, halfPi},
		{-inf, -3, -halfPi},

		// Two infinite arguments land on the diagonals.
		{inf, inf, math.Pi / 4},
		{-inf, inf, -math.Pi / 4},
		{inf, -inf, 3 * math.Pi / 4},
		{-inf, -inf, -3 * math.Pi / 4},
	}

	for _, tt := range tests {
		got := Atan2(tt.y, tt.x)
		if math.Float32bits(got) != math.Float32bits(tt.want) {
			t.Fatalf("Atan2(%v, %v) mismatch: got %v want %v", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestAtan2NaN(t *testing.T) {
	nan := float32(math.NaN())
	if got := Atan2(nan, 1); !isNaN(got) {
		t.Fatalf("Atan2(NaN, 1) mismatch: got %v want NaN", got)
	}

	if got := Atan2(1, nan); !isNaN(got) {
		t.Fatalf("Atan2(1, NaN) mismatch: got %v want NaN", got)
	}

	if got := Atan2(nan, 0); !isNaN(got) {
		t.Fatalf("Atan2(NaN, 0) mismatch: got %v want NaN", got)
	}
}

func TestAtan2OddSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1e5; i++ {
		y := math.Float32frombits(rng.Uint32())
		x := math.Float32frombits(rng.Uint32())
		if isNaN(y) || isNaN(x) {
			continue
		}

		pos := Atan2(y, x)
		neg := Atan2(-y, x)
		if math.Float32bits(-pos) != math.Float32bits(neg) {
			t.Fatalf("Atan2 odd symmetry mismatch at (%v, %v): got %v and %v", y, x, pos, neg)
		}
	}
}

func TestAtan2Accuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 1e5; i++ {
		y := math.Float32frombits(rng.Uint32())
		x := math.Float32frombits(rng.Uint32())
		if isNaN(y) || isNaN(x) || isInf(y) || isInf(x) {
			continue
		}

		got := Atan2(y, x)
		want := math.Atan2(float64(y), float64(x))
		if abs := math.Abs(float64(got) - want); abs >= 0.0038 {
			t.Fatalf("Atan2(%v, %v) absolute error %v: got %v want %v", y, x, abs, got, want)
		}
	}
}

// Against the stdlib on a grid of awkward values, allowing the 2pi
// offset where the two disagree about which side of the cut a signed
// zero sits on.
func TestAtan2VersusStdlib(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	values := []float32{-2, -1, negZero, 0, 1, 2, float32(math.Inf(1)), float32(math.Inf(-1)), float32(math.NaN())}

	for _, y := range values {
		for _, x := range values {
			got := Atan2(y, x)
			want := math.Atan2(float64(y), float64(x))
			if gotNaN, wantNaN := isNaN(got), math.IsNaN(want); gotNaN != wantNaN {
				t.Fatalf("Atan2(%v, %v) NaN mismatch: got %v want %v", y, x, got, want)
			}

			if math.IsNaN(want) {
				continue
			}

			d := float64(got) - want
			if !(math.Abs(d) < 0.0038 || math.Abs(d-2*math.Pi) < 0.0038 || math.Abs(d+2*math.Pi) < 0.0038) {
				t.Fatalf("Atan2(%v, %v) mismatch: got %v want %v", y, x, got, want)
			}
		}
	}
}
