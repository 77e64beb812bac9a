// Package ui implements the interactive results page using bubbletea's Elm architecture.
//
// The page replays the same sequence every time results arrive:
//  1. The container appears after 100ms
//  2. Each table appears 300ms + 200ms per table index after load
//  3. The prediction block appears at 800ms
//  4. Rows slide in from the right on [harmonica] springs, 50ms apart, the first time they scroll into view
//  5. After the configured delay the prediction and simulation counters count up from zero
//
// The counters run on [counter.Interpolator] with a scheduler fed by frame messages, so every counter step happens
// inside Update. Frames are only requested while something is moving.
//
// The simulation-count input shows live feedback from [feedback.Classify]. Submitting validates the value, shows a
// notification for rejected values, and otherwise fetches new results from the [results.Source] while the input shows
// a loading state.
//
// Notifications replace each other, dismiss after the configured timeout, and fade for a short exit phase before they
// are removed.
package ui
