package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarbit/gatediff/internal/config"
	"github.com/stellarbit/gatediff/internal/report"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("GITHUB_OUTPUT", "")
	cfg := config.Default()
	cfg.ReportsDir = t.TempDir()
	cfg.Output = filepath.Join(t.TempDir(), "out", "report.md")
	return cfg
}

func writeReport(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRunCompare(t *testing.T) {
	cfg := testConfig(t)
	cfg.Threshold = 5
	writeReport(t, cfg.ReportsDir, "Token_base.benchmark.json",
		`{"results":[{"name":"a","totalGateCount":100}]}`)
	writeReport(t, cfg.ReportsDir, "Token_latest.benchmark.json",
		`{"results":[{"name":"a","totalGateCount":100},{"name":"b","totalGateCount":50}]}`)

	t.Setenv("GITHUB_OUTPUT", filepath.Join(t.TempDir(), "gh_output"))

	doc, err := New(cfg, false).RunCompare()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, report.Marker))
	assert.Contains(t, doc, "### Token")
	assert.Contains(t, doc, "| ⚪ | `a` |")
	assert.Contains(t, doc, "| 🆕 | `b` |")

	written, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, doc, string(written))

	ghOut, err := os.ReadFile(os.Getenv("GITHUB_OUTPUT"))
	require.NoError(t, err)
	assert.Contains(t, string(ghOut), "report<<GATEDIFF_REPORT_EOF")
	assert.Contains(t, string(ghOut), "report-path=")
}

func TestRunCompareIdempotent(t *testing.T) {
	cfg := testConfig(t)
	writeReport(t, cfg.ReportsDir, "AMM_base.benchmark.json",
		`{"results":[{"name":"swap","totalGateCount":10,"gas":{"gasLimits":{"daGas":1,"l2Gas":2}}}]}`)
	writeReport(t, cfg.ReportsDir, "AMM_latest.benchmark.json",
		`{"results":[{"name":"swap","totalGateCount":12,"gas":{"gasLimits":{"daGas":1,"l2Gas":2}}}]}`)

	a := New(cfg, false)
	first, err := a.RunCompare()
	require.NoError(t, err)
	second, err := a.RunCompare()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunCompareEmptyReportsDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportsDir = filepath.Join(t.TempDir(), "does-not-exist")

	doc, err := New(cfg, false).RunCompare()
	require.NoError(t, err)
	assert.Contains(t, doc, "No benchmark pairs found.")
}

func TestResolveArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), nil, 0o644))

	t.Run("directory", func(t *testing.T) {
		artifacts, err := resolveArtifacts(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, artifacts)
	})

	t.Run("glob", func(t *testing.T) {
		artifacts, err := resolveArtifacts(filepath.Join(dir, "*.json"))
		require.NoError(t, err)
		assert.Len(t, artifacts, 2)
	})
}
