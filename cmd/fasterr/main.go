// Command fasterr prints error statistics of the fast float32
// approximations against their standard-library references.
//
// Usage:
//
//	fasterr [flags] [function-name ...]
//
// Without arguments it sweeps all known functions.
//
// Examples:
//
//	fasterr log2 atan
//	fasterr -lo 0.001 -hi 1000 -steps 65536 -log log2
//	fasterr -stride 256 -lo 1 -hi 2 log2
//	fasterr -baseline log2 exp
//	fasterr -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	fastmath "github.com/huonw/fast-math"
	"github.com/huonw/fast-math/measure/approxerr"
	"github.com/meko-christian/algo-approx"
)

type funcEntry struct {
	name     string
	fn       func(float32) float32
	ref      func(float64) float64
	lo       float64
	hi       float64
	log      bool
	baseline func(float32) float32 // algo-approx float64 composition, nil if none
}

var registry = []funcEntry{
	{"log2", fastmath.Log2, math.Log2, 1.0 / 1024, 1024, true, approxLog2},
	{"log21p", fastmath.Log21p, log21pRef, -0.9, 10, false, nil},
	{"exp", fastmath.Exp, math.Exp, -87, 88, false, approxExp},
	{"exp2", fastmath.Exp2, math.Exp2, -126, 127, false, approxExp2},
	{"expm1", fastmath.Expm1, math.Expm1, -16, 16, false, nil},
	{"exp2m1", fastmath.Exp2m1, exp2m1Ref, -16, 16, false, nil},
	{"atan", fastmath.Atan, math.Atan, -10, 10, false, nil},
	{"tanh", fastmath.Tanh, math.Tanh, -6, 6, false, nil},
}

func approxLog2(x float32) float32 {
	return float32(approx.FastLog(float64(x)) / math.Ln2)
}

func approxExp(x float32) float32 {
	return float32(approx.FastExp(float64(x)))
}

func approxExp2(x float32) float32 {
	return float32(approx.FastExp(float64(x) * math.Ln2))
}

func exp2m1Ref(x float64) float64 {
	return math.Expm1(x * math.Ln2)
}

func log21pRef(x float64) float64 {
	return math.Log1p(x) / math.Ln2
}

func main() {
	steps := flag.Int("steps", 4096, "grid points per sweep")
	lo := flag.Float64("lo", math.NaN(), "lower bound override")
	hi := flag.Float64("hi", math.NaN(), "upper bound override")
	logSpaced := flag.Bool("log", false, "force a log2-spaced grid")
	stride := flag.Int("stride", 0, "walk raw float32 bit patterns with this stride instead of a grid")
	baseline := flag.Bool("baseline", false, "also sweep the algo-approx float64 baselines")
	list := flag.Bool("list", false, "list available function names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fasterr [flags] [function-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Sweeps fast float32 approximations against the standard library\n")
		fmt.Fprintf(os.Stderr, "and prints worst-case and aggregate error per function.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, sweeps all known functions.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fasterr log2 atan\n")
		fmt.Fprintf(os.Stderr, "  fasterr -lo 0.001 -hi 1000 -steps 65536 -log log2\n")
		fmt.Fprintf(os.Stderr, "  fasterr -stride 256 -lo 1 -hi 2 log2\n")
		fmt.Fprintf(os.Stderr, "  fasterr -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names, *baseline)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching functions\n")
		os.Exit(1)
	}

	printSweeps(entries, *steps, *lo, *hi, *logSpaced, *stride)
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEntries(names []string, withBaselines bool) []funcEntry {
	byName := make(map[string]funcEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []funcEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown function %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)

		if withBaselines && e.baseline != nil {
			b := e
			b.name = e.name + " (algo-approx)"
			b.fn = e.baseline
			b.baseline = nil
			result = append(result, b)
		}
	}
	return result
}

func printSweeps(entries []funcEntry, steps int, lo, hi float64, forceLog bool, stride int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Function\tRange\tGrid\tSamples\tMax Abs\tMax Rel\tMean Abs\tRMS\tWorst At\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "--------\t-----\t----\t-------\t-------\t-------\t--------\t---\t--------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, e := range entries {
		l, h := e.lo, e.hi
		if !math.IsNaN(lo) {
			l = lo
		}
		if !math.IsNaN(hi) {
			h = hi
		}

		var (
			res  approxerr.Result
			err  error
			grid string
		)

		if stride > 0 {
			grid = "bits"
			res, err = approxerr.SweepBits(e.fn, e.ref, float32(l), float32(h), stride)
		} else {
			useLog := e.log || forceLog
			grid = "linear"
			if useLog {
				grid = "log2"
			}
			res, err = approxerr.Sweep(e.fn, e.ref, approxerr.Config{
				Lo:        l,
				Hi:        h,
				Steps:     steps,
				LogSpaced: useLog,
			})
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.name, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t[%g, %g]\t%s\t%d\t%.3g\t%.3g\t%.3g\t%.3g\t%g\n",
			e.name,
			l,
			h,
			grid,
			res.Count,
			res.MaxAbs,
			res.MaxRel,
			res.MeanAbs,
			res.RMS,
			res.ArgMaxAbs,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
