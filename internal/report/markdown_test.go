package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarbit/gatediff/internal/compare"
)

func TestRender(t *testing.T) {
	r := NewRenderer(2.5)

	t.Run("marker is the first line, exactly once", func(t *testing.T) {
		doc := r.Render(nil)
		lines := strings.Split(doc, "\n")
		assert.Equal(t, Marker, lines[0])
		assert.Equal(t, 1, strings.Count(doc, Marker))
	})

	t.Run("empty pair set", func(t *testing.T) {
		doc := r.Render(nil)
		assert.Contains(t, doc, "No benchmark pairs found.")
		assert.Contains(t, doc, "±2.5%")
	})

	t.Run("table rows", func(t *testing.T) {
		doc := r.Render([]compare.Section{{
			Contract: "Token",
			Comparisons: []compare.FunctionComparison{
				{
					Name:   "transfer",
					Gates:  compare.MetricPair{Main: 1000, PR: 1050},
					DAGas:  compare.MetricPair{Main: 0, PR: 5},
					L2Gas:  compare.MetricPair{Main: 5, PR: 0},
					Status: compare.StatusRegression,
				},
			},
		}})
		assert.Contains(t, doc, "### Token")
		assert.Contains(t, doc, "| 🔴 | `transfer` | 1,000 | 1,050 | +50 (+5.0%) | 0 | 5 | +Inf% | 5 | 0 | -100% |")
	})

	t.Run("no comparable functions placeholder", func(t *testing.T) {
		doc := r.Render([]compare.Section{{Contract: "Empty"}})
		assert.Contains(t, doc, "### Empty")
		assert.Contains(t, doc, "_No comparable functions._")
		assert.NotContains(t, doc, "| Function |")
	})

	t.Run("failed pair renders inline error", func(t *testing.T) {
		doc := r.Render([]compare.Section{
			{Contract: "Broken", Err: errors.New("base report gone")},
			{Contract: "Token", Comparisons: []compare.FunctionComparison{{
				Name: "ok", Status: compare.StatusUnchanged,
			}}},
		})
		assert.Contains(t, doc, "> ⚠️ Failed to compare benchmarks: base report gone")
		// Later sections still render.
		assert.Contains(t, doc, "### Token")
	})

	t.Run("byte-identical across runs", func(t *testing.T) {
		sections := []compare.Section{{
			Contract: "Token",
			Comparisons: []compare.FunctionComparison{
				{Name: "a", Status: compare.StatusUnchanged},
				{Name: "b", Status: compare.StatusNew, Gates: compare.MetricPair{PR: 50}},
			},
		}}
		require.Equal(t, r.Render(sections), r.Render(sections))
	})
}

func TestRenderThresholdFormatting(t *testing.T) {
	assert.Contains(t, NewRenderer(10).Render(nil), "±10%")
	assert.Contains(t, NewRenderer(0.25).Render(nil), "±0.25%")
}
