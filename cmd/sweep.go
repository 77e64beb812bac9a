package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mcview/internal/feedback"
	"github.com/desertthunder/mcview/internal/shared"
	"github.com/desertthunder/mcview/internal/tasks"
	"github.com/urfave/cli/v3"
)

// parseCounts reads a comma-separated list of simulation counts, each checked against limits.
func parseCounts(raw string, limits feedback.Limits) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		n, err := feedback.Validate(part, limits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", shared.ErrInvalidFlag, strings.TrimSpace(part), feedback.Message(err))
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: --counts", shared.ErrMissingArgument)
	}
	return counts, nil
}

// Sweep runs the simulation for several counts and exports each result set.
func (r *Runner) Sweep(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	counts, err := parseCounts(cmd.String("counts"), feedback.LimitsFromConfig(r.config.Validation))
	if err != nil {
		return err
	}

	source, err := r.resultsSource(cmd)
	if err != nil {
		return err
	}

	engine := tasks.NewEngine(source, r.logger)
	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Sweep(ctx, prog, counts, tasks.SweepOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output-dir"),
		Manifest:   cmd.String("manifest"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done

	if err != nil {
		return err
	}

	r.logger.Info("sweep complete", "dir", result.OutputDirectory, "successful", result.Manifest.Successful, "failed", result.Manifest.Failed)
	return r.writePlain("✓ %d/%d runs exported to %s (manifest: %s)\n",
		result.Manifest.Successful, result.Manifest.Total, result.OutputDirectory, result.ManifestPath)
}
