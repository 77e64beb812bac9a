package tasks

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mcview/internal/results"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchResults Phase = iota
	ExportResults
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchResults:
		return "fetch_results"
	case ExportResults:
		return "export_results"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// Engine runs batches of simulations against a [results.Source].
type Engine struct {
	source results.Source
	logger *log.Logger
}

// NewEngine creates an Engine reading from source. A nil logger discards output.
func NewEngine(source results.Source, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{source: source, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}
