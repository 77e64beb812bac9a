package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mcview/internal/feedback"
	"github.com/desertthunder/mcview/internal/shared"
	"github.com/urfave/cli/v3"
)

type validation struct {
	Value       string `json:"value"`
	Level       string `json:"level"`
	Valid       bool   `json:"valid"`
	Simulations int    `json:"simulations,omitempty"`
	Message     string `json:"message,omitempty"`
}

func check(raw string, limits feedback.Limits) validation {
	v := validation{Value: raw, Level: feedback.Classify(raw, limits).String()}
	n, err := feedback.Validate(raw, limits)
	if err != nil {
		v.Message = feedback.Message(err)
		return v
	}
	v.Valid = true
	v.Simulations = n
	return v
}

// Validate reports how a number of simulations would be treated by the viewer's input field.
func (r *Runner) Validate(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	raw := cmd.StringArg("value")
	if raw == "" {
		return fmt.Errorf("%w: value", shared.ErrMissingArgument)
	}

	v := check(raw, feedback.LimitsFromConfig(r.config.Validation))
	if cmd.Bool("json") {
		return r.writeJSON(v, cmd.Bool("pretty"))
	}

	if v.Valid {
		return r.writePlain("%s: %d simulations\n", v.Level, v.Simulations)
	}
	return r.writePlain("%s: %s\n", v.Level, v.Message)
}
