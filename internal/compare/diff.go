// Package compare implements the benchmark comparison engine: it pairs up
// base and candidate report artifacts, reconciles the measured function sets,
// computes per-metric deltas and classifies every function against a
// regression threshold.
package compare

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/stellarbit/gatediff/pkg/benchreport"
)

// Status is the classification glyph attached to one function's comparison.
type Status string

const (
	StatusRegression  Status = "🔴"
	StatusImprovement Status = "🟢"
	StatusUnchanged   Status = "⚪"
	StatusNew         Status = "🆕"
	StatusRemoved     Status = "🚮"
)

// MetricPair holds one metric's value on both sides of the comparison.
// Missing data is coerced to zero before a pair is built, so both fields are
// always non-negative.
type MetricPair struct {
	Main float64
	PR   float64
}

// change returns the fractional change from Main to PR: zero when both sides
// are zero, +Inf when a zero base gains a nonzero value.
func (p MetricPair) change() float64 {
	if p.Main == 0 {
		if p.PR == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (p.PR - p.Main) / p.Main
}

// FunctionComparison is the comparison surface for one function: the three
// metric pairs and the status derived from them.
type FunctionComparison struct {
	Name  string
	Gates MetricPair
	DAGas MetricPair
	L2Gas MetricPair

	Status Status
}

// Diff reconciles the union of function names across both reports and builds
// the ordered comparison set for one contract. It is a pure function of the
// two parsed documents: names are sorted lexicographically and profiler
// failure placeholders never appear in the result.
func Diff(base, pr *benchreport.Report, thresholdPct float64) []FunctionComparison {
	baseIdx := base.Index()
	prIdx := pr.Index()

	names := make([]string, 0, len(baseIdx)+len(prIdx))
	for _, r := range base.Results {
		names = append(names, r.Name)
	}
	for _, r := range pr.Results {
		names = append(names, r.Name)
	}
	names = lo.Uniq(names)
	names = lo.Reject(names, func(name string, _ int) bool { return excluded(name) })
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) FunctionComparison {
		baseMetrics := baseIdx[name].Metrics()
		prMetrics := prIdx[name].Metrics()

		cmp := FunctionComparison{
			Name:  name,
			Gates: MetricPair{Main: baseMetrics.Gates, PR: prMetrics.Gates},
			DAGas: MetricPair{Main: baseMetrics.DAGas, PR: prMetrics.DAGas},
			L2Gas: MetricPair{Main: baseMetrics.L2Gas, PR: prMetrics.L2Gas},
		}
		cmp.Status = classify(cmp, thresholdPct)
		return cmp
	})
}

// excluded reports whether a function name marks a profiling-time failure.
// Such entries must not surface in the comparison at all, not even as new or
// removed functions.
func excluded(name string) bool {
	return name == "" ||
		name == benchreport.RunnerErrorName ||
		strings.HasPrefix(name, "unknown_function") ||
		strings.Contains(name, "(FAILED)")
}

// classify derives the status of one function. The checks form an explicit
// dominance order: removed > new > regression > improvement > unchanged.
func classify(cmp FunctionComparison, thresholdPct float64) Status {
	pairs := [3]MetricPair{cmp.Gates, cmp.DAGas, cmp.L2Gas}

	mainAllZero, prAllZero := true, true
	for _, p := range pairs {
		if p.Main != 0 {
			mainAllZero = false
		}
		if p.PR != 0 {
			prAllZero = false
		}
	}
	if prAllZero && !mainAllZero {
		return StatusRemoved
	}
	if mainAllZero && !prAllZero {
		return StatusNew
	}

	limit := thresholdPct / 100
	improved := false
	for _, p := range pairs {
		change := p.change()
		if math.IsInf(change, 1) || change > limit {
			return StatusRegression
		}
		if change < -limit {
			improved = true
		}
	}
	if improved {
		return StatusImprovement
	}
	return StatusUnchanged
}
