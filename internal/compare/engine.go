package compare

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/stellarbit/gatediff/pkg/benchreport"
)

// Section is one contract's slot in the final document: either its computed
// comparison set or the error that prevented it.
type Section struct {
	Contract    string
	Comparisons []FunctionComparison
	Err         error
}

// Engine runs the comparison over a discovered pair set. Pairs are processed
// strictly sequentially; a failure while loading or parsing one pair is
// confined to that contract's section and never aborts the run.
type Engine struct {
	logger       *slog.Logger
	thresholdPct float64
}

func NewEngine(logger *slog.Logger, thresholdPct float64) *Engine {
	return &Engine{logger: logger, thresholdPct: thresholdPct}
}

// Run diffs every pair in order and returns one section per pair.
func (e *Engine) Run(pairs []Pair) []Section {
	sections := make([]Section, 0, len(pairs))
	for _, p := range pairs {
		sections = append(sections, e.comparePair(p))
	}
	return sections
}

func (e *Engine) comparePair(p Pair) Section {
	base, err := benchreport.Load(p.BasePath)
	if err != nil {
		e.logger.Error("failed to load base report", "contract", p.Contract, "error", err)
		return Section{Contract: p.Contract, Err: fmt.Errorf("base report %s: %w", filepath.Base(p.BasePath), err)}
	}
	pr, err := benchreport.Load(p.PRPath)
	if err != nil {
		e.logger.Error("failed to load candidate report", "contract", p.Contract, "error", err)
		return Section{Contract: p.Contract, Err: fmt.Errorf("candidate report %s: %w", filepath.Base(p.PRPath), err)}
	}

	comparisons := Diff(base, pr, e.thresholdPct)
	e.logger.Debug("compared benchmark pair", "contract", p.Contract, "functions", len(comparisons))
	return Section{Contract: p.Contract, Comparisons: comparisons}
}
