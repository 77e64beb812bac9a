package counter

import (
	"io"
	"strings"
	"sync"
)

// Sink receives formatted text for display.
type Sink interface {
	SetText(text string)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(text string)

func (f SinkFunc) SetText(text string) { f(text) }

// TextBuffer is a [Sink] that keeps the last text written, safe for concurrent use.
type TextBuffer struct {
	mu     sync.RWMutex
	text   string
	writes int
}

// NewTextBuffer creates a [TextBuffer] holding initial.
func NewTextBuffer(initial string) *TextBuffer {
	return &TextBuffer{text: initial}
}

func (b *TextBuffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.writes++
}

// Text returns the last text written.
func (b *TextBuffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Writes returns how many times SetText was called.
func (b *TextBuffer) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// WriterSink redraws a single terminal line: every text is written with a leading carriage return.
//
// Write errors are dropped; the caller supplies a writable target.
type WriterSink struct {
	w    io.Writer
	last int
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) SetText(text string) {
	pad := ""
	if n := s.last - len(text); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	s.last = len(text)
	io.WriteString(s.w, "\r"+text+pad)
}

