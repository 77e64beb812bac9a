// Package counter animates a displayed integer from a start value to an end value over a fixed duration.
//
// # Interpolation
//
// An [Interpolator] turns a [Request] into an [Animation]. Each frame delivered by the [Scheduler] computes
//
//	progress = clamp((t - t0) / duration, 0, 1)
//	value    = floor(progress * (end - start) + start)
//
// where t0 is the timestamp of the first frame, and writes [FormatNumber] of the value followed by the suffix into a
// [Sink]. The value is truncated with floor, so it never reaches end before progress does. The final write is always
// exactly FormatNumber(end) + suffix. A non-positive duration skips scheduling and writes the final text once.
//
// # Scheduling
//
// A [Scheduler] is the requestAnimationFrame equivalent: it invokes each requested callback once, asynchronously, with
// a timestamp that increases from frame to frame. An animation never blocks; it requests its next frame from inside the
// current one until progress reaches 1. [FrameLoop] is the real-time scheduler used by the CLI. The TUI drives its
// own scheduler from bubbletea tick messages.
//
// # Cancellation
//
// [Animation.Cancel] turns the next scheduled step into a no-op that requests no further frames.
package counter
