// Package benchreport models the persisted benchmark artifact produced by the
// profiler and consumed by the comparison engine: one JSON document per
// contract, holding per-function gate counts and gas usage.
package benchreport

import (
	"encoding/json"
	"fmt"
	"os"
)

// Extension is the artifact filename extension. Full artifact names are
// <contractName><suffix> + Extension.
const Extension = ".benchmark.json"

// RunnerErrorName is the placeholder function name the profiler emits when a
// whole run fails. It never appears in a rendered comparison.
const RunnerErrorName = "BENCHMARK_RUNNER_ERROR"

// GasLimits holds the two gas dimensions charged for one function call.
type GasLimits struct {
	DAGas float64 `json:"daGas"`
	L2Gas float64 `json:"l2Gas"`
}

// GasUsage wraps the gas limits reported by the profiler. Teardown limits and
// other sibling fields are tolerated on disk but not used by the engine.
type GasUsage struct {
	GasLimits         *GasLimits `json:"gasLimits"`
	TeardownGasLimits *GasLimits `json:"teardownGasLimits,omitempty"`
}

// FunctionResult is one measured function inside a report.
// Every numeric field is optional on disk and defaults to zero.
type FunctionResult struct {
	Name           string             `json:"name"`
	TotalGateCount float64            `json:"totalGateCount"`
	GateCounts     map[string]float64 `json:"gateCounts,omitempty"`
	Gas            *GasUsage          `json:"gas"`
}

// Metrics are the three scalars the comparison engine works with.
type Metrics struct {
	Gates float64
	DAGas float64
	L2Gas float64
}

// Metrics extracts the comparable scalars from a result, defaulting every
// absent field to zero. A nil receiver stands for a function missing from one
// side of a comparison and yields all-zero metrics.
func (r *FunctionResult) Metrics() Metrics {
	if r == nil {
		return Metrics{}
	}
	m := Metrics{Gates: r.TotalGateCount}
	if r.Gas != nil && r.Gas.GasLimits != nil {
		m.DAGas = r.Gas.GasLimits.DAGas
		m.L2Gas = r.Gas.GasLimits.L2Gas
	}
	return m
}

// Report is the top-level artifact for one contract at one point in time.
type Report struct {
	Results []FunctionResult `json:"results"`
	// Summary fields emitted by some profiler versions; ignored here.
	Summary    map[string]float64 `json:"summary,omitempty"`
	GasSummary map[string]float64 `json:"gasSummary,omitempty"`
}

// Parse decodes a report document and verifies it carries a results list.
// A document without a "results" field is malformed; an empty list is not.
func Parse(data []byte) (*Report, error) {
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark report: %w", err)
	}
	if rep.Results == nil {
		return nil, fmt.Errorf("benchmark report has no results field")
	}
	return &rep, nil
}

// Load reads and parses a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark report: %w", err)
	}
	return Parse(data)
}

// Index returns the first result for each function name. Later duplicates are
// ignored, matching first-match-by-name lookup semantics.
func (r *Report) Index() map[string]*FunctionResult {
	idx := make(map[string]*FunctionResult, len(r.Results))
	for i := range r.Results {
		name := r.Results[i].Name
		if _, ok := idx[name]; !ok {
			idx[name] = &r.Results[i]
		}
	}
	return idx
}
