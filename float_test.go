package fastmath

import (
	"math"
	"math/rand"
	"testing"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name   string
		x      float32
		sign   uint32
		exp    uint32
		signif uint32
	}{
		{"one", 1, 0, 127, 0},
		{"onePointFive", 1.5, 0, 127, 1 << 22},
		{"onePointTwoFive", 1.25, 0, 127, 1 << 21},
		{"half", 0.5, 0, 126, 0},
		{"two", 2, 0, 128, 0},
		{"minusTwo", -2, 1, 128, 0},
		{"minusHalf", -0.5, 1, 126, 0},
		{"zero", 0, 0, 0, 0},
		{"maxFloat", math.MaxFloat32, 0, 254, signifMask},
		{"minNormal", 1.1754944e-38, 0, 1, 0},
		{"smallestSubnormal", math.SmallestNonzeroFloat32, 0, 0, 1},
		{"plusInf", float32(math.Inf(1)), 0, 255, 0},
		{"minusInf", float32(math.Inf(-1)), 1, 255, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sign, exp, signif := Decompose(tt.x)
			if sign != tt.sign || exp != tt.exp || signif != tt.signif {
				t.Fatalf("Decompose(%v) mismatch: got (%d, %d, %d) want (%d, %d, %d)",
					tt.x, sign, exp, signif, tt.sign, tt.exp, tt.signif)
			}
		})
	}
}

func TestDecomposeNegativeZero(t *testing.T) {
	sign, exp, signif := Decompose(float32(math.Copysign(0, -1)))
	if sign != 1 || exp != 0 || signif != 0 {
		t.Fatalf("Decompose(-0) mismatch: got (%d, %d, %d) want (1, 0, 0)", sign, exp, signif)
	}
}

func TestRecomposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1e5; i++ {
		bits := rng.Uint32()
		sign, exp, signif := Decompose(math.Float32frombits(bits))
		if got := math.Float32bits(Recompose(sign, exp, signif)); got != bits {
			t.Fatalf("Recompose(Decompose(%#08x)) mismatch: got %#08x", bits, got)
		}
	}
}

func TestRecomposeMasking(t *testing.T) {
	// Oversized fields must not spill into their neighbours.
	if got := math.Float32bits(Recompose(2, 0, 0)); got != 0 {
		t.Fatalf("Recompose(2, 0, 0) mismatch: got %#08x want 0", got)
	}

	if got, want := Recompose(0, expBias+1<<expBits, 0), float32(1); got != want {
		t.Fatalf("Recompose exp masking mismatch: got %v want %v", got, want)
	}

	if got, want := Recompose(0, expBias, 1<<signifBits|1<<21), float32(1.25); got != want {
		t.Fatalf("Recompose signif masking mismatch: got %v want %v", got, want)
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{0, 0},
		{1.5, 1.5},
		{-1.5, 1.5},
		{-math.MaxFloat32, math.MaxFloat32},
		{-math.SmallestNonzeroFloat32, math.SmallestNonzeroFloat32},
		{float32(math.Inf(-1)), float32(math.Inf(1))},
	}

	for _, tt := range tests {
		if got := Abs(tt.x); got != tt.want {
			t.Fatalf("Abs(%v) mismatch: got %v want %v", tt.x, got, tt.want)
		}
	}

	if got := math.Float32bits(Abs(float32(math.Copysign(0, -1)))); got != 0 {
		t.Fatalf("Abs(-0) mismatch: got %#08x want +0", got)
	}

	if got := Abs(float32(math.NaN())); !isNaN(got) {
		t.Fatalf("Abs(NaN) mismatch: got %v want NaN", got)
	}
}

func TestCopysign(t *testing.T) {
	tests := []struct {
		x, y, want float32
	}{
		{1.5, 2, 1.5},
		{1.5, -2, -1.5},
		{-1.5, 2, 1.5},
		{-1.5, -2, -1.5},
		{float32(math.Inf(1)), -1, float32(math.Inf(-1))},
		{3, float32(math.Copysign(0, -1)), -3},
	}

	for _, tt := range tests {
		if got := Copysign(tt.x, tt.y); got != tt.want {
			t.Fatalf("Copysign(%v, %v) mismatch: got %v want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if got := math.Float32bits(Copysign(0, -1)); got != 1<<signShift {
		t.Fatalf("Copysign(0, -1) mismatch: got %#08x want -0", got)
	}
}

func TestSignum(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{2.5, 1},
		{-0.001, -1},
		{math.SmallestNonzeroFloat32, 1},
		{float32(math.Inf(1)), 1},
		{float32(math.Inf(-1)), -1},
	}

	for _, tt := range tests {
		if got := Signum(tt.x); got != tt.want {
			t.Fatalf("Signum(%v) mismatch: got %v want %v", tt.x, got, tt.want)
		}
	}

	if got := Signum(0); got != 1 {
		t.Fatalf("Signum(0) mismatch: got %v want 1", got)
	}

	if got := Signum(float32(math.Copysign(0, -1))); got != -1 {
		t.Fatalf("Signum(-0) mismatch: got %v want -1", got)
	}

	if got := Signum(float32(math.NaN())); !isNaN(got) {
		t.Fatalf("Signum(NaN) mismatch: got %v want NaN", got)
	}
}
