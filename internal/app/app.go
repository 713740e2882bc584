// Package app wires configuration, the comparison engine and the renderer
// into the commands the CLI exposes.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/stellarbit/gatediff/internal/compare"
	"github.com/stellarbit/gatediff/internal/config"
	"github.com/stellarbit/gatediff/internal/profiler"
	"github.com/stellarbit/gatediff/internal/report"
)

type Application struct {
	Config config.Config
	Logger *slog.Logger

	engine   *compare.Engine
	renderer *report.Renderer
}

func New(cfg config.Config, verbose bool) *Application {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Application{
		Config:   cfg,
		Logger:   logger,
		engine:   compare.NewEngine(logger, cfg.Threshold),
		renderer: report.NewRenderer(cfg.Threshold),
	}
}

// RunCompare discovers benchmark pairs, diffs them sequentially, writes the
// assembled document to the configured output path and publishes it as action
// outputs. The document is returned as well; it is produced even when nothing
// was comparable.
func (a *Application) RunCompare() (string, error) {
	cfg := a.Config
	pairs := compare.Discover(a.Logger, cfg.ReportsDir, cfg.BaseSuffix, cfg.PRSuffix)
	if len(pairs) == 0 {
		a.Logger.Warn("no benchmark pairs found", "dir", cfg.ReportsDir)
	}

	doc := a.renderer.Render(a.engine.Run(pairs))

	outPath, err := a.writeOutput(doc)
	if err != nil {
		return doc, err
	}
	if err := publishActionOutputs(doc, outPath); err != nil {
		return doc, fmt.Errorf("failed to publish action outputs: %w", err)
	}
	a.Logger.Info("benchmark report written", "path", outPath, "contracts", len(pairs))
	return doc, nil
}

func (a *Application) writeOutput(doc string) (string, error) {
	path, err := filepath.Abs(a.Config.Output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// RunProfile resolves the artifact set (a directory or a glob pattern) and
// hands it to the profiler runner, writing report files into the configured
// reports directory.
func (a *Application) RunProfile(ctx context.Context, artifactsPath, suffix string) error {
	runner, err := profiler.NewRunner(
		a.Logger,
		a.Config.Profiler.Bin,
		a.Config.Profiler.Args,
		a.Config.Profiler.MaxConcurrency,
	)
	if err != nil {
		return err
	}

	artifacts, err := resolveArtifacts(artifactsPath)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		a.Logger.Warn("no contract artifacts matched", "path", artifactsPath)
		return nil
	}
	return runner.ProfileAll(ctx, artifacts, a.Config.ReportsDir, suffix)
}

func resolveArtifacts(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to list artifacts directory: %w", err)
		}
		var artifacts []string
		for _, e := range entries {
			if !e.IsDir() {
				artifacts = append(artifacts, filepath.Join(path, e.Name()))
			}
		}
		return artifacts, nil
	}

	artifacts, err := filepath.Glob(path)
	if err != nil {
		return nil, fmt.Errorf("invalid artifacts pattern %q: %w", path, err)
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

// publishActionOutputs appends the report text and its path to the
// GITHUB_OUTPUT file when running inside a GitHub Action, so a workflow step
// can feed them to a PR-comment updater.
func publishActionOutputs(doc, path string) error {
	outFile := os.Getenv("GITHUB_OUTPUT")
	if outFile == "" {
		return nil
	}
	f, err := os.OpenFile(outFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	const delim = "GATEDIFF_REPORT_EOF"
	if _, err := fmt.Fprintf(f, "report<<%s\n%s\n%s\n", delim, doc, delim); err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "report-path=%s\n", path)
	return err
}
