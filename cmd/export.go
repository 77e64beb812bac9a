package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mcview/internal/feedback"
	"github.com/desertthunder/mcview/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Export fetches results and writes them in the requested format.
//
// An output path of "-" writes to stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	n := r.config.Validation.Default
	if cmd.IsSet("simulations") {
		var err error
		limits := feedback.LimitsFromConfig(r.config.Validation)
		if n, err = feedback.Validate(strconv.Itoa(cmd.Int("simulations")), limits); err != nil {
			return err
		}
	}

	source, err := r.resultsSource(cmd)
	if err != nil {
		return err
	}

	res, err := source.Fetch(ctx, n)
	if err != nil {
		return err
	}

	format, output := cmd.String("format"), cmd.String("output")
	if output == "-" {
		data, err := formatter.Export(res, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(res, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("results exported", "path", path, "format", format, "simulations", res.NumSimulations)
	return r.writePlain("✓ Exported %d simulations to %s\n", res.NumSimulations, path)
}
