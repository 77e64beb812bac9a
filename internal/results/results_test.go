package results

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mcview/internal/shared"
	th "github.com/desertthunder/mcview/internal/testing"
)

const jsonResults = `{
  "interval_table": [
    {"year": 2019, "visitors": 1000, "probability": 0.25, "cumulative": 0.25, "lower": 0, "upper": 249},
    {"year": 2020, "visitors": 3000, "probability": 0.75, "cumulative": 1.0, "lower": 250, "upper": 999}
  ],
  "simulation_results": [
    {"no": 1, "random": 654, "prediction": 3000},
    {"no": 2, "random": 114, "prediction": 1000}
  ],
  "final_prediction": 2000,
  "num_simulations": 2
}`

const yamlResults = `interval_table:
  - year: 2019
    visitors: 1000
    lower: 0
    upper: 999
simulation_results:
  - no: 1
    random: 5
    prediction: 1000
final_prediction: 1000
num_simulations: 1
`

const tomlResults = `final_prediction = 2500
num_simulations = 3

[[interval_table]]
year = 2021
visitors = 2500
lower = 0
upper = 999

[[simulation_results]]
no = 1
random = 42
prediction = 2500
`

func TestLoad(t *testing.T) {
	tc := []struct {
		name       string
		file       string
		content    string
		prediction int
		rows       int
	}{
		{name: "json", file: "results.json", content: jsonResults, prediction: 2000, rows: 2},
		{name: "yaml", file: "results.yaml", content: yamlResults, prediction: 1000, rows: 1},
		{name: "yml", file: "results.yml", content: yamlResults, prediction: 1000, rows: 1},
		{name: "toml", file: "results.toml", content: tomlResults, prediction: 2500, rows: 1},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			th.MustWriteFile(t, path, tt.content)

			r, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if r.FinalPrediction != tt.prediction {
				t.Errorf("FinalPrediction = %d, want %d", r.FinalPrediction, tt.prediction)
			}
			if len(r.SimulationResults) != tt.rows {
				t.Errorf("expected %d simulation rows, got %d", tt.rows, len(r.SimulationResults))
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, shared.ErrResultsNotFound) {
			t.Errorf("expected ErrResultsNotFound, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.csv")
		th.MustWriteFile(t, path, "a,b")
		if _, err := Load(path); !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.json")
		th.MustWriteFile(t, path, "{")
		if _, err := Load(path); !errors.Is(err, shared.ErrInvalidResults) {
			t.Errorf("expected ErrInvalidResults, got %v", err)
		}
	})

	t.Run("simulation error", func(t *testing.T) {
		_, err := Decode([]byte(`{"error": "data file not found"}`), "json")
		if !errors.Is(err, shared.ErrInvalidResults) {
			t.Errorf("expected ErrInvalidResults, got %v", err)
		}
	})
}

func TestSources(t *testing.T) {
	t.Run("FileSource", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results.json")
		th.MustWriteFile(t, path, jsonResults)

		r, err := FileSource{Path: path}.Fetch(context.Background(), 50)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if r.NumSimulations != 2 {
			t.Errorf("expected file contents regardless of n, got %d", r.NumSimulations)
		}
	})

	t.Run("FileSource cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := (FileSource{Path: "x.json"}).Fetch(ctx, 1); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("CommandSource args", func(t *testing.T) {
		s := CommandSource{Template: "python app.py --sims {n} --json"}
		args := s.Args(25)
		want := []string{"python", "app.py", "--sims", "25", "--json"}
		if len(args) != len(want) {
			t.Fatalf("Args() = %v, want %v", args, want)
		}
		for i := range want {
			if args[i] != want[i] {
				t.Errorf("Args()[%d] = %q, want %q", i, args[i], want[i])
			}
		}
	})

	t.Run("CommandSource runs the command", func(t *testing.T) {
		if _, err := exec.LookPath("cat"); err != nil {
			t.Skip("cat not available")
		}
		dir := t.TempDir()
		th.MustWriteFile(t, filepath.Join(dir, "results-2.json"), jsonResults)

		s := CommandSource{Template: "cat " + filepath.Join(dir, "results-{n}.json")}
		r, err := s.Fetch(context.Background(), 2)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if r.FinalPrediction != 2000 {
			t.Errorf("FinalPrediction = %d", r.FinalPrediction)
		}

		if _, err := s.Fetch(context.Background(), 3); !errors.Is(err, shared.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable for failing command, got %v", err)
		}
	})

	t.Run("CommandSource empty template", func(t *testing.T) {
		if _, err := (CommandSource{}).Fetch(context.Background(), 1); !errors.Is(err, shared.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("NewSource", func(t *testing.T) {
		src, err := NewSource(shared.ResultsConfig{Path: "r.json", Command: "sim {n}"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := src.(CommandSource); !ok {
			t.Errorf("expected command source to win, got %T", src)
		}

		src, err = NewSource(shared.ResultsConfig{Path: "r.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := src.(FileSource); !ok {
			t.Errorf("expected file source, got %T", src)
		}

		if _, err := NewSource(shared.ResultsConfig{}); !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}
