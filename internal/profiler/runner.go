// Package profiler wraps the external execution/profiling tool that measures
// gate counts and gas usage. The tool itself does the circuit work; this
// package only schedules it per contract artifact and persists its JSON
// output as benchmark report files the comparison engine can consume.
package profiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stellarbit/gatediff/internal/monitor"
	"github.com/stellarbit/gatediff/pkg/benchreport"
)

var ErrNoProfilerBin = errors.New("profiler binary is not configured")

// Runner executes the profiler binary once per contract artifact, with a
// bounded number of processes in flight.
type Runner struct {
	bin     string
	args    []string
	limiter *monitor.Limiter
	logger  *slog.Logger
}

func NewRunner(logger *slog.Logger, bin string, args []string, maxConcurrency int64) (*Runner, error) {
	if bin == "" {
		return nil, ErrNoProfilerBin
	}
	return &Runner{
		bin:     bin,
		args:    args,
		limiter: monitor.NewLimiter(maxConcurrency),
		logger:  logger,
	}, nil
}

// ProfileAll profiles every artifact and writes one
// <contractName><suffix>.benchmark.json file per artifact into outDir.
// A failed profiler run does not fail the batch: it is recorded as an
// artifact holding a single runner-error placeholder result, which the
// comparison engine later filters out. Context cancellation aborts the
// remaining runs.
func (r *Runner) ProfileAll(ctx context.Context, artifacts []string, outDir, suffix string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, artifact := range artifacts {
		artifact := artifact
		g.Go(func() error {
			if err := r.limiter.Acquire(ctx); err != nil {
				return err
			}
			defer r.limiter.Release()
			return r.profileOne(ctx, artifact, outDir, suffix)
		})
	}
	return g.Wait()
}

func (r *Runner) profileOne(ctx context.Context, artifact, outDir, suffix string) error {
	contract := strings.TrimSuffix(filepath.Base(artifact), filepath.Ext(artifact))
	outPath := filepath.Join(outDir, contract+suffix+benchreport.Extension)

	cmd := exec.CommandContext(ctx, r.bin, append(slices.Clone(r.args), artifact)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	if runErr == nil {
		_, runErr = benchreport.Parse(stdout.Bytes())
	}
	if runErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.Error("profiler run failed",
			"contract", contract,
			"error", runErr,
			"stderr", strings.TrimSpace(stderr.String()),
		)
		return writeRunnerError(outPath)
	}

	r.logger.Info("profiled contract",
		"contract", contract,
		"load", r.limiter.GetMetrics().ActiveRuns,
		"took", time.Since(start),
	)
	if err := os.WriteFile(outPath, stdout.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write benchmark report: %w", err)
	}
	return nil
}

// writeRunnerError persists the placeholder artifact for a failed run, so the
// contract still pairs up downstream and only its functions are skipped.
func writeRunnerError(path string) error {
	rep := benchreport.Report{
		Results: []benchreport.FunctionResult{{Name: benchreport.RunnerErrorName}},
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
