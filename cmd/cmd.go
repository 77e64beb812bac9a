// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "results",
			Aliases: []string{"r"},
			Usage:   "Path to a results file (json, yaml or toml)",
		},
		&cli.StringFlag{
			Name:  "command",
			Usage: "Simulation command to run, {n} is replaced by the number of simulations",
		},
	}
}

// showCommand launches the interactive viewer
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Open the interactive results viewer",
		Flags:  append([]cli.Flag{configFlag()}, sourceFlags()...),
		Action: r.Show,
	}
}

// countCommand runs a single counter in the terminal
func countCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Animate a number counting up in the terminal",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:     "to",
				Usage:    "Final value",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "from",
				Usage: "Starting value",
			},
			&cli.DurationFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Animation duration, defaults to animation.duration_ms",
			},
			&cli.StringFlag{
				Name:    "suffix",
				Aliases: []string{"s"},
				Usage:   "Text appended after the number",
			},
			&cli.IntFlag{
				Name:  "fps",
				Usage: "Frames per second, defaults to animation.fps",
			},
		},
		Action: r.Count,
	}
}

// exportCommand writes results to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export simulation results",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, intervals, markdown, text, json)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, - for stdout",
			},
			&cli.IntFlag{
				Name:    "simulations",
				Aliases: []string{"n"},
				Usage:   "Number of simulations to request, defaults to validation.default",
			},
		}, sourceFlags()...),
		Action: r.Export,
	}
}

// sweepCommand runs several simulation counts in one batch
func sweepCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Run and export the simulation for several counts",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "counts",
				Usage:    "Comma-separated simulation counts, e.g. 10,100,1000",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (csv, intervals, markdown, text, json)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: sweep_{epoch})",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Manifest filename, .yaml for YAML",
				Value: "manifest.json",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Simulation runs started per second",
				Value: 5,
			},
		}, sourceFlags()...),
		Action: r.Sweep,
	}
}

// validateCommand checks a simulation count
func validateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a number of simulations against the configured limits",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "value"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Validate,
	}
}

// setupCommand writes configuration files
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize local files",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
