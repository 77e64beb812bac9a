// package testing contains shared testing utilities
package testing

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"
)

// FakeScheduler is a manually driven frame scheduler.
//
// Requested callbacks wait until [FakeScheduler.Frame] delivers them with the given timestamp.
type FakeScheduler struct {
	mu       sync.Mutex
	pending  []func(time.Duration)
	requests int
}

func (s *FakeScheduler) RequestFrame(fn func(ts time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
	s.requests++
}

// Frame runs every callback requested before the call with timestamp ts and returns how many ran.
func (s *FakeScheduler) Frame(ts time.Duration) int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range batch {
		fn(ts)
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for a frame.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Requests returns the total number of RequestFrame calls.
func (s *FakeScheduler) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// RunFrames delivers frames every step starting at start until nothing is pending or max frames ran.
//
// Returns the number of frames delivered.
func (s *FakeScheduler) RunFrames(start, step time.Duration, max int) int {
	frames := 0
	for ts := start; frames < max && s.Pending() > 0; ts += step {
		s.Frame(ts)
		frames++
	}
	return frames
}

// RecordingSink keeps every text written to it.
type RecordingSink struct {
	mu     sync.Mutex
	Writes []string
}

func (r *RecordingSink) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes = append(r.Writes, text)
}

// Last returns the most recent write, or "" if nothing was written.
func (r *RecordingSink) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Writes) == 0 {
		return ""
	}
	return r.Writes[len(r.Writes)-1]
}

// Len returns the number of writes.
func (r *RecordingSink) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Writes)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
