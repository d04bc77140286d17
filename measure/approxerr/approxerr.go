// Package approxerr sweeps a float32 approximation against a float64
// reference and reports worst-case and aggregate error.
//
// Sweep samples a configurable grid, SweepBits walks raw float32 bit
// patterns so every representable value in a range can be visited.
// Samples are reduced in fixed-size blocks, which keeps exhaustive
// walks at constant memory.
package approxerr

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Sweep and SweepBits.
var (
	ErrNilFunc       = errors.New("approxerr: function and reference must not be nil")
	ErrInvalidRange  = errors.New("approxerr: lo must be finite and less than hi")
	ErrInvalidSteps  = errors.New("approxerr: steps must be at least 2")
	ErrInvalidStride = errors.New("approxerr: stride must be positive")
	ErrLogRange      = errors.New("approxerr: log spacing requires positive bounds")
)

const (
	defaultSteps = 4096

	// Samples are buffered and reduced in blocks of this size.
	reduceBlock = 4096
)

// Config holds sweep parameters.
type Config struct {
	Lo        float64 // lower bound, inclusive; [1, 2) when Lo and Hi are both zero
	Hi        float64 // upper bound, inclusive
	Steps     int     // grid points, default 4096
	LogSpaced bool    // space points uniformly in log2(x) instead of x
}

// Result holds error statistics of one sweep. Samples where either the
// approximation or the reference produced a non-finite value are not
// measured; they are counted in Skipped. Relative error ignores points
// where the reference is exactly zero.
type Result struct {
	MaxAbs    float64 // worst absolute error
	MaxRel    float64 // worst relative error
	MeanAbs   float64 // mean absolute error
	RMS       float64 // root mean square error
	ArgMaxAbs float32 // first argument attaining MaxAbs
	ArgMaxRel float32 // first argument attaining MaxRel
	Count     int     // samples measured
	Skipped   int     // samples dropped as non-finite
}

// Sweep evaluates f against ref on a grid of Steps points across
// [Lo, Hi] and returns the accumulated error statistics. The reference
// is evaluated at the exact float32 grid point, so the result measures
// the approximation alone, not the grid rounding.
func Sweep(f func(float32) float32, ref func(float64) float64, cfg Config) (Result, error) {
	if f == nil || ref == nil {
		return Result{}, ErrNilFunc
	}

	cfg = normalizeConfig(cfg)
	if math.IsInf(cfg.Lo, 0) || math.IsInf(cfg.Hi, 0) || !(cfg.Lo < cfg.Hi) {
		return Result{}, ErrInvalidRange
	}

	if cfg.Steps < 2 {
		return Result{}, ErrInvalidSteps
	}

	if cfg.LogSpaced && cfg.Lo <= 0 {
		return Result{}, ErrLogRange
	}

	r := newReducer()
	den := float64(cfg.Steps - 1)

	if cfg.LogSpaced {
		l0 := math.Log2(cfg.Lo)
		span := math.Log2(cfg.Hi) - l0

		for i := 0; i < cfg.Steps; i++ {
			x := float32(math.Exp2(l0 + span*float64(i)/den))
			r.add(x, float64(f(x)), ref(float64(x)))
		}
	} else {
		span := cfg.Hi - cfg.Lo

		for i := 0; i < cfg.Steps; i++ {
			x := float32(cfg.Lo + span*float64(i)/den)
			r.add(x, float64(f(x)), ref(float64(x)))
		}
	}

	return r.result(), nil
}

// SweepBits walks float32 bit patterns from lo to hi inclusive,
// advancing stride patterns per step. Requires 0 <= lo < hi with hi
// finite; successive bit patterns of non-negative floats are ordered by
// value, so the walk visits every representable float32 in [lo, hi]
// when stride is 1.
func SweepBits(f func(float32) float32, ref func(float64) float64, lo, hi float32, stride int) (Result, error) {
	if f == nil || ref == nil {
		return Result{}, ErrNilFunc
	}

	if stride < 1 {
		return Result{}, ErrInvalidStride
	}

	if math.Signbit(float64(lo)) || math.IsInf(float64(hi), 0) || !(lo < hi) {
		return Result{}, ErrInvalidRange
	}

	r := newReducer()

	last := uint64(math.Float32bits(hi))
	for b := uint64(math.Float32bits(lo)); b <= last; b += uint64(stride) {
		x := math.Float32frombits(uint32(b))
		r.add(x, float64(f(x)), ref(float64(x)))
	}

	return r.result(), nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.Lo == 0 && cfg.Hi == 0 {
		cfg.Lo, cfg.Hi = 1, 2
	}

	if cfg.Steps == 0 {
		cfg.Steps = defaultSteps
	}

	return cfg
}

// reducer accumulates samples and reduces them block-wise.
type reducer struct {
	xs    []float32
	gots  []float64
	wants []float64

	neg  []float64
	diff []float64
	work []float64

	count   int
	skipped int
	sumAbs  float64
	sumSq   float64
	maxAbs  float64
	maxRel  float64
	argAbs  float32
	argRel  float32
}

func newReducer() *reducer {
	return &reducer{
		xs:    make([]float32, 0, reduceBlock),
		gots:  make([]float64, 0, reduceBlock),
		wants: make([]float64, 0, reduceBlock),
		neg:   make([]float64, reduceBlock),
		diff:  make([]float64, reduceBlock),
		work:  make([]float64, reduceBlock),
	}
}

func (r *reducer) add(x float32, got, want float64) {
	if !isFinite(got) || !isFinite(want) {
		r.skipped++
		return
	}

	r.xs = append(r.xs, x)
	r.gots = append(r.gots, got)
	r.wants = append(r.wants, want)

	if len(r.gots) == reduceBlock {
		r.flush()
	}
}

func (r *reducer) flush() {
	n := len(r.gots)
	if n == 0 {
		return
	}

	neg := r.neg[:n]
	diff := r.diff[:n]
	vecmath.ScaleBlock(neg, r.wants, -1)
	vecmath.AddBlock(diff, r.gots, neg)

	if m := vecmath.MaxAbs(diff); m > r.maxAbs {
		r.maxAbs = m

		for i, d := range diff {
			if math.Abs(d) == m {
				r.argAbs = r.xs[i]
				break
			}
		}
	}

	work := r.work[:n]
	for i, d := range diff {
		work[i] = math.Abs(d)
	}

	r.sumAbs += vecmath.Sum(work)
	r.sumSq += vecmath.DotProduct(diff, diff)

	for i, d := range diff {
		if w := r.wants[i]; w != 0 {
			work[i] = math.Abs(d) / math.Abs(w)
		} else {
			work[i] = 0
		}
	}

	if m := vecmath.MaxAbs(work); m > r.maxRel {
		r.maxRel = m

		for i, v := range work {
			if v == m {
				r.argRel = r.xs[i]
				break
			}
		}
	}

	r.count += n
	r.xs = r.xs[:0]
	r.gots = r.gots[:0]
	r.wants = r.wants[:0]
}

func (r *reducer) result() Result {
	r.flush()

	res := Result{Count: r.count, Skipped: r.skipped}
	if r.count == 0 {
		return res
	}

	n := float64(r.count)
	res.MaxAbs = r.maxAbs
	res.MaxRel = r.maxRel
	res.MeanAbs = r.sumAbs / n
	res.RMS = math.Sqrt(r.sumSq / n)
	res.ArgMaxAbs = r.argAbs
	res.ArgMaxRel = r.argRel

	return res
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
