// Package report renders a comparison run as a single markdown document.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stellarbit/gatediff/internal/compare"
)

// Marker is the first line of every rendered document. Downstream tooling
// (a PR-comment updater, typically) keys on it to locate and replace a
// previous report instead of posting a new one.
const Marker = "<!-- gatediff:benchmark-report -->"

var tableHeader = strings.Join([]string{
	"| | Function | Gates (base) | Gates (PR) | Δ Gates | DA gas (base) | DA gas (PR) | Δ DA gas | L2 gas (base) | L2 gas (PR) | Δ L2 gas |",
	"|---|---|---:|---:|---:|---:|---:|---:|---:|---:|---:|",
}, "\n")

// Renderer turns comparison sections into the final document. Sections are
// expected pre-sorted by contract name; rendering adds no ordering of its own
// beyond the row order already fixed by the engine.
type Renderer struct {
	thresholdPct float64
}

func NewRenderer(thresholdPct float64) *Renderer {
	return &Renderer{thresholdPct: thresholdPct}
}

// Render assembles the full document: marker, header, then one section per
// contract separated by blank lines. Byte-identical for identical inputs.
func (r *Renderer) Render(sections []compare.Section) string {
	var b strings.Builder
	b.WriteString(Marker)
	b.WriteString("\n## Benchmark report\n\n")
	fmt.Fprintf(&b, "Regression threshold: ±%s%%.\n",
		strconv.FormatFloat(r.thresholdPct, 'f', -1, 64))

	if len(sections) == 0 {
		b.WriteString("\nNo benchmark pairs found.\n")
		return b.String()
	}

	for _, s := range sections {
		b.WriteString("\n")
		r.renderSection(&b, s)
	}
	return b.String()
}

func (r *Renderer) renderSection(b *strings.Builder, s compare.Section) {
	fmt.Fprintf(b, "### %s\n\n", s.Contract)

	switch {
	case s.Err != nil:
		fmt.Fprintf(b, "> ⚠️ Failed to compare benchmarks: %v\n", s.Err)
	case len(s.Comparisons) == 0:
		b.WriteString("_No comparable functions._\n")
	default:
		b.WriteString(tableHeader)
		b.WriteString("\n")
		for _, cmp := range s.Comparisons {
			b.WriteString(renderRow(cmp))
			b.WriteString("\n")
		}
	}
}

func renderRow(cmp compare.FunctionComparison) string {
	cells := []string{string(cmp.Status), "`" + cmp.Name + "`"}
	for _, p := range []compare.MetricPair{cmp.Gates, cmp.DAGas, cmp.L2Gas} {
		cells = append(cells,
			compare.FormatValue(p.Main),
			compare.FormatValue(p.PR),
			compare.FormatDiff(p.Main, p.PR),
		)
	}
	return "| " + strings.Join(cells, " | ") + " |"
}
