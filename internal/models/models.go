// package models defines the data model for simulation results
package models

import (
	"fmt"
	"time"
)

// IntervalRow maps a year's visitor count to a range of random numbers.
type IntervalRow struct {
	Year        int     `json:"year" yaml:"year" toml:"year"`
	Visitors    int     `json:"visitors" yaml:"visitors" toml:"visitors"`
	Probability float64 `json:"probability" yaml:"probability" toml:"probability"`
	Cumulative  float64 `json:"cumulative" yaml:"cumulative" toml:"cumulative"`
	Lower       int     `json:"lower" yaml:"lower" toml:"lower"`
	Upper       int     `json:"upper" yaml:"upper" toml:"upper"`
}

// Interval renders the random-number range, e.g. "000 - 249".
func (r IntervalRow) Interval() string {
	return fmt.Sprintf("%03d - %03d", r.Lower, r.Upper)
}

// SimulationRow is a single draw.
type SimulationRow struct {
	No         int `json:"no" yaml:"no" toml:"no"`
	Random     int `json:"random" yaml:"random" toml:"random"`
	Prediction int `json:"prediction" yaml:"prediction" toml:"prediction"`
}

// RandomString renders the random number zero-padded to three digits.
func (r SimulationRow) RandomString() string {
	return fmt.Sprintf("%03d", r.Random)
}

// Results is the complete output of one simulation run.
type Results struct {
	IntervalTable     []IntervalRow   `json:"interval_table" yaml:"interval_table" toml:"interval_table"`
	SimulationResults []SimulationRow `json:"simulation_results" yaml:"simulation_results" toml:"simulation_results"`
	FinalPrediction   int             `json:"final_prediction" yaml:"final_prediction" toml:"final_prediction"`
	NumSimulations    int             `json:"num_simulations" yaml:"num_simulations" toml:"num_simulations"`
	Error             string          `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Validate checks that the results can be displayed.
func (r *Results) Validate() error {
	if r.Error != "" {
		return fmt.Errorf("simulation reported an error: %s", r.Error)
	}
	if r.NumSimulations < 0 {
		return fmt.Errorf("negative number of simulations: %d", r.NumSimulations)
	}
	if r.FinalPrediction < 0 {
		return fmt.Errorf("negative final prediction: %d", r.FinalPrediction)
	}
	for _, row := range r.IntervalTable {
		if row.Lower > row.Upper {
			return fmt.Errorf("interval for %d is inverted: %s", row.Year, row.Interval())
		}
	}
	return nil
}

// ManifestEntry records one run of a sweep.
type ManifestEntry struct {
	Simulations     int      `json:"simulations" yaml:"simulations"`
	FinalPrediction int      `json:"final_prediction" yaml:"final_prediction"`
	Success         bool     `json:"success" yaml:"success"`
	Files           []string `json:"files,omitempty" yaml:"files,omitempty"`
	Error           string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Manifest summarizes a sweep over several simulation counts.
type Manifest struct {
	Format      string          `json:"format" yaml:"format"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Total       int             `json:"total" yaml:"total"`
	Successful  int             `json:"successful" yaml:"successful"`
	Failed      int             `json:"failed" yaml:"failed"`
	Entries     []ManifestEntry `json:"entries" yaml:"entries"`
}
