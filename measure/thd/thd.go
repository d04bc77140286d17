// Package thd measures total harmonic distortion of waveshaping
// functions and sampled signals by spectral analysis.
//
// Measure drives a bin-centered sine through a float32 shaper and
// reports the harmonic content of the output. An ideal shaper such as
// the identity keeps THD at the numeric noise floor, while a
// saturating curve like Tanh produces a characteristic odd-order
// spectrum.
package thd

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Measure and AnalyzeSignal.
var (
	ErrNilShaper        = errors.New("thd: shaper must not be nil")
	ErrEmptySignal      = errors.New("thd: signal is empty")
	ErrInvalidFFTSize   = errors.New("thd: fft size must be a power of two")
	ErrInvalidFrequency = errors.New("thd: frequency must land on a positive bin below Nyquist")
)

const (
	defaultSampleRate   = 48000.0
	defaultFFTSize      = 4096
	defaultFrequency    = 1000.0
	defaultAmplitude    = 1.0
	defaultRangeLowerHz = 20.0
	defaultRangeUpperHz = 20000.0
	defaultRubNBuzz     = 10

	// The analysis window is a Hann window, whose main lobe reaches its
	// first minimum two bins away from the peak.
	hannFirstMinimumBins = 2
)

// Config holds THD measurement parameters.
type Config struct {
	SampleRate     float64 // sample rate in Hz, default 48000
	FFTSize        int     // analysis size, power of two, default 4096
	Frequency      float64 // test tone frequency in Hz, default 1000
	Amplitude      float64 // test tone peak amplitude, default 1
	RangeLowerFreq float64 // lowest analyzed frequency in Hz, default 20
	RangeUpperFreq float64 // highest analyzed frequency in Hz, default 20000
	CaptureBins    int     // bins summed around each peak, default from the window shape
	MaxHarmonics   int     // harmonic count limit, 0 means up to the range edge
	RubNBuzzStart  int     // first harmonic order counted as rub and buzz, default 10
}

// Result holds THD measurement results.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THDN             float64
	THD_dB           float64
	THDN_dB          float64
	OddHD            float64
	EvenHD           float64
	Noise            float64
	RubNBuzz         float64
	Harmonics        []float64
	SINAD            float64
}

// Calculator performs THD analysis on frequency-domain data.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a new THD calculator.
func NewCalculator(cfg Config) *Calculator {
	cfg = normalizeConfig(cfg)
	return &Calculator{cfg: cfg}
}

// Measure synthesizes a sine at cfg.Frequency, passes every sample
// through shaper, and analyzes the spectrum of the shaped tone. The
// tone is snapped to the nearest FFT bin so the fundamental does not
// leak across the spectrum, and the snapped frequency is reported in
// Result.FundamentalFreq.
func Measure(shaper func(float32) float32, cfg Config) (Result, error) {
	if shaper == nil {
		return Result{}, ErrNilShaper
	}

	cfg = normalizeConfig(cfg)
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}

	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if !isPowerOf2(cfg.FFTSize) {
		return Result{}, ErrInvalidFFTSize
	}

	freq := cfg.Frequency
	if freq == 0 {
		freq = defaultFrequency
	}

	amp := cfg.Amplitude
	if amp == 0 {
		amp = defaultAmplitude
	}

	n := cfg.FFTSize

	bin := 0
	if freq > 0 && freq < cfg.SampleRate/2 {
		bin = int(math.Round(freq * float64(n) / cfg.SampleRate))
	}

	if bin < 1 || bin > n/2-1 {
		return Result{}, ErrInvalidFrequency
	}

	omega := 2 * math.Pi * float64(bin) / float64(n)

	signal := make([]float64, n)
	for i := range signal {
		x := float32(amp * math.Sin(omega*float64(i)))
		signal[i] = float64(shaper(x))
	}

	cfg.Frequency = float64(bin) * cfg.SampleRate / float64(n)

	return AnalyzeSignal(signal, cfg)
}

// AnalyzeSignal measures a real-valued time-domain signal. The signal
// is Hann-windowed and zero-padded (or truncated) to the FFT size; an
// unset FFTSize defaults to the next power of two that fits.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	cfg = normalizeConfig(cfg)

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < 2 || !isPowerOf2(fftSize) {
		return Result{}, ErrInvalidFFTSize
	}

	buf := make([]float64, len(signal))
	copy(buf, signal)

	if len(buf) > fftSize {
		buf = buf[:fftSize]
	}

	vecmath.MulBlockInPlace(buf, hannWindow(len(buf)))

	inData := make([]complex128, fftSize)
	for i, v := range buf {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Result{}, err
	}

	cfg.FFTSize = fftSize
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(fftSize)
	}

	calc := Calculator{cfg: cfg}

	return calc.Calculate(out), nil
}

// Analyze is a one-shot THD analysis for a complex spectrum.
func Analyze(spectrum []complex128, cfg Config) Result {
	return NewCalculator(cfg).Calculate(spectrum)
}

// Calculate computes THD metrics from a complex spectrum.
func (c *Calculator) Calculate(spectrum []complex128) Result {
	if len(spectrum) == 0 {
		return Result{}
	}

	binCount := len(spectrum)/2 + 1
	if binCount <= 1 {
		return Result{}
	}

	re := make([]float64, binCount)
	im := make([]float64, binCount)

	for i := 0; i < binCount; i++ {
		re[i] = real(spectrum[i])
		im[i] = imag(spectrum[i])
	}

	magSquared := make([]float64, binCount)
	vecmath.Power(magSquared, re, im)

	cfg := c.cfg
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = len(spectrum)
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(cfg.FFTSize)
	}

	calc := Calculator{cfg: cfg}

	return calc.CalculateFromMagnitude(magSquared)
}

// CalculateFromMagnitude computes THD metrics from a squared-magnitude
// spectrum covering the non-negative-frequency bins [0..Nyquist].
//
//nolint:cyclop
//nolint:funlen
func (c *Calculator) CalculateFromMagnitude(magSquared []float64) Result {
	if len(magSquared) <= 1 {
		return Result{}
	}

	cfg := c.cfg
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = 2 * (len(magSquared) - 1)
	}

	if cfg.FFTSize <= 1 {
		return Result{}
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = float64(cfg.FFTSize)
	}

	binCount := len(magSquared)
	maxBin := binCount - 1

	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	if binHz <= 0 {
		return Result{}
	}

	lowerBin := clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := c.findFundamentalBin(magSquared, lowerBin, upperBin, binHz)
	if fundamentalBin < 1 || fundamentalBin > maxBin {
		return Result{}
	}

	captureBins := cfg.CaptureBins
	if captureBins <= 0 {
		captureBins = hannFirstMinimumBins
	}

	if captureBins*2 > fundamentalBin {
		captureBins = fundamentalBin / 2
	}

	fundamentalLevel := getBinValue(magSquared, fundamentalBin, captureBins)
	if fundamentalLevel <= 0 {
		return Result{
			FundamentalFreq: float64(fundamentalBin) * binHz,
		}
	}

	thdAbs := 0.0
	oddAbs := 0.0
	evenAbs := 0.0
	rubAbs := 0.0
	harmonics := make([]float64, 0, 8)

	harmonicCount := 0
	for k := 2; ; k++ {
		if cfg.MaxHarmonics > 0 && harmonicCount >= cfg.MaxHarmonics {
			break
		}

		bin := k * fundamentalBin
		if bin > upperBin || bin > maxBin {
			break
		}

		if bin < lowerBin {
			continue
		}

		value := getBinValue(magSquared, bin, captureBins)

		thdAbs += value
		if k%2 == 0 {
			evenAbs += value
		} else {
			oddAbs += value
		}

		if k >= cfg.RubNBuzzStart {
			rubAbs += value
		}

		if value > 0 {
			harmonics = append(harmonics, value/fundamentalLevel)
		}

		harmonicCount++
	}

	totalAbs := 0.0
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += sqrtPositive(magSquared[i])
	}

	thdnAbs := totalAbs - fundamentalLevel
	if thdnAbs < 0 {
		thdnAbs = 0
	}

	noiseAbs := thdnAbs - thdAbs
	if noiseAbs < 0 {
		noiseAbs = 0
	}

	thd := thdAbs / fundamentalLevel
	thdn := thdnAbs / fundamentalLevel
	odd := oddAbs / fundamentalLevel
	even := evenAbs / fundamentalLevel
	noise := noiseAbs / fundamentalLevel
	rub := rubAbs / fundamentalLevel

	sinad := math.Inf(1)
	if thdn > 0 {
		sinad = 20 * math.Log10(1/thdn)
	}

	return Result{
		FundamentalFreq:  float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamentalLevel,
		THD:              thd,
		THDN:             thdn,
		THD_dB:           ratioToDB(thd),
		THDN_dB:          ratioToDB(thdn),
		OddHD:            odd,
		EvenHD:           even,
		Noise:            noise,
		RubNBuzz:         rub,
		Harmonics:        harmonics,
		SINAD:            sinad,
	}
}

func (c *Calculator) findFundamentalBin(magSquared []float64, lowerBin, upperBin int, binHz float64) int {
	if c.cfg.Frequency > 0 {
		bin := int(math.Round(c.cfg.Frequency / binHz))
		return clampInt(bin, lowerBin, upperBin)
	}

	bestBin := lowerBin
	bestVal := -1.0

	for i := lowerBin; i <= upperBin; i++ {
		v := magSquared[i]
		if v > bestVal {
			bestVal = v
			bestBin = i
		}
	}

	return bestBin
}

// hannWindow returns symmetric Hann coefficients of length n.
func hannWindow(n int) []float64 {
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}

	for i := range coeffs {
		coeffs[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}

	return coeffs
}

func normalizeConfig(cfg Config) Config {
	if cfg.RangeLowerFreq <= 0 {
		cfg.RangeLowerFreq = defaultRangeLowerHz
	}

	if cfg.RangeUpperFreq <= 0 {
		cfg.RangeUpperFreq = defaultRangeUpperHz
	}

	if cfg.RangeUpperFreq < cfg.RangeLowerFreq {
		cfg.RangeUpperFreq = cfg.RangeLowerFreq
	}

	if cfg.RubNBuzzStart < 1 {
		cfg.RubNBuzzStart = defaultRubNBuzz
	}

	if cfg.CaptureBins < 0 {
		cfg.CaptureBins = 0
	}

	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}

	return cfg
}

func getBinValue(magSquared []float64, bin, captureBins int) float64 {
	if bin < 0 || bin >= len(magSquared) {
		return 0
	}

	if captureBins <= 0 {
		return sqrtPositive(magSquared[bin])
	}

	loBin := max(bin-captureBins, 0)

	hiBin := bin + captureBins
	if hiBin >= len(magSquared) {
		hiBin = len(magSquared) - 1
	}

	sum := 0.0
	for i := loBin; i <= hiBin; i++ {
		sum += sqrtPositive(magSquared[i])
	}

	return sum
}

func sqrtPositive(v float64) float64 {
	if v <= 0 {
		return 0
	}

	return math.Sqrt(v)
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
