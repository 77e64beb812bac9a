// Package tasks runs batches of simulations with real-time progress reporting.
//
// # Sweeps
//
// [Engine.Sweep] runs the configured [results.Source] once per simulation count, exports every result set with the
// formatter package and writes a manifest summarizing the batch:
//   - runs are started through a [rate.Limiter] so an external simulation command is not flooded
//   - exports are handled by a bounded worker pool
//   - a failed run is recorded in the manifest and the sweep continues
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for richer rendering.
// Updates are sent with select and default so a slow reader never blocks the sweep.
package tasks
