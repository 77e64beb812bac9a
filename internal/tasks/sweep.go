package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/mcview/internal/formatter"
	"github.com/desertthunder/mcview/internal/models"
	"github.com/desertthunder/mcview/internal/shared"
	"golang.org/x/time/rate"
)

// SweepOpts contains configuration for a sweep over several simulation counts.
type SweepOpts struct {
	Format     string  // Export format: csv, intervals, markdown, text, json (default: csv)
	OutputDir  string  // Base output directory (default: sweep_{epoch})
	Manifest   string  // Manifest filename inside OutputDir (default: manifest.json)
	NumWorkers int     // Concurrent export workers (default: 4)
	RateLimit  float64 // Simulation runs started per second (default: 5)
}

// SweepResult is the outcome of [Engine.Sweep].
type SweepResult struct {
	OutputDirectory string
	ManifestPath    string
	Manifest        *models.Manifest
}

type sweepJob struct {
	index   int
	n       int
	results *models.Results
}

type sweepOutcome struct {
	index int
	entry models.ManifestEntry
}

// Sweep runs the source once per count and exports each result set.
//
// Runs are started at most opts.RateLimit times per second and exported by a pool of workers. A failed run is recorded
// in the manifest and does not stop the sweep. Duplicate counts are run once.
func (e *Engine) Sweep(ctx context.Context, prog chan<- ProgressUpdate, counts []int, opts SweepOpts) (*SweepResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: no results source", shared.ErrSourceUnavailable)
	}

	counts = dedupe(counts)
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no simulation counts", shared.ErrInvalidArgument)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatCSV
	}
	ext, err := formatter.Extension(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("sweep_%d", time.Now().Unix())
	}
	if opts.Manifest == "" {
		opts.Manifest = "manifest.json"
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	opts.NumWorkers = min(opts.NumWorkers, 8, len(counts))
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries := make([]models.ManifestEntry, len(counts))
	for i, n := range counts {
		entries[i] = models.ManifestEntry{Simulations: n, Error: "not run"}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan sweepJob, len(counts))
	outcomes := make(chan sweepOutcome, len(counts))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, outcomes, opts.Format, opts.OutputDir, ext)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, n := range counts {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchingResultsUpdate(i+1, len(counts), n))
			res, err := e.source.Fetch(ctx, n)
			if err != nil {
				e.logger.Warn("simulation run failed", "n", n, "err", err)
				outcomes <- sweepOutcome{index: i, entry: models.ManifestEntry{Simulations: n, Error: err.Error()}}
				continue
			}
			jobs <- sweepJob{index: i, n: n, results: res}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	manifest := &models.Manifest{Format: opts.Format, Total: len(counts)}

	completed := 0
	for out := range outcomes {
		completed++
		entries[out.index] = out.entry

		if out.entry.Success {
			e.sendProgress(prog, exportCompletedUpdate(completed, len(counts), out.entry))
		} else {
			e.sendProgress(prog, exportFailedUpdate(completed, len(counts), out.entry))
		}
	}

	for _, entry := range entries {
		if entry.Success {
			manifest.Successful++
		} else {
			manifest.Failed++
		}
	}
	manifest.Entries = entries
	manifest.GeneratedAt = time.Now().UTC()

	result := &SweepResult{OutputDirectory: opts.OutputDir, Manifest: manifest}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("sweep interrupted: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, opts.Manifest)
	e.sendProgress(prog, manifestUpdate(manifestPath))
	if err := formatter.WriteManifest(manifest, manifestPath); err != nil {
		return result, fmt.Errorf("sweep completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports result sets from the jobs channel.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan sweepJob,
	outcomes chan<- sweepOutcome,
	format, dir, ext string,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcomes <- sweepOutcome{index: job.index, entry: e.exportOne(job.n, job.results, format, dir, ext)}
	}
}

// exportOne writes the result set for n simulations to dir/simulations_{n}.{ext}.
func (e *Engine) exportOne(n int, res *models.Results, format, dir, ext string) models.ManifestEntry {
	entry := models.ManifestEntry{Simulations: n, FinalPrediction: res.FinalPrediction}

	path := filepath.Join(dir, fmt.Sprintf("simulations_%d.%s", n, ext))
	written, err := formatter.WriteExport(res, format, path)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	entry.Files = []string{written}
	entry.Success = true
	return entry
}

func dedupe(counts []int) []int {
	out := make([]int, 0, len(counts))
	for _, n := range counts {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
