package ui

import (
	"sync"
	"time"

	"github.com/desertthunder/mcview/internal/counter"
)

var _ counter.Scheduler = (*frameScheduler)(nil)

// frameScheduler is a [counter.Scheduler] fed by bubbletea frame messages.
//
// Callbacks requested during a flush run on the following flush.
type frameScheduler struct {
	mu      sync.Mutex
	pending []func(time.Duration)
	origin  time.Time
	last    time.Duration
}

func newFrameScheduler(origin time.Time) *frameScheduler {
	return &frameScheduler{origin: origin, last: -1}
}

func (s *frameScheduler) RequestFrame(fn func(ts time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

func (s *frameScheduler) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// flush runs the pending callbacks with the frame time t.
func (s *frameScheduler) flush(t time.Time) {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	ts := t.Sub(s.origin)
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	s.mu.Unlock()

	for _, fn := range batch {
		fn(ts)
	}
}
