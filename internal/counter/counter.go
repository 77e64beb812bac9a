package counter

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Scheduler delivers frame callbacks, like requestAnimationFrame.
//
// Each requested callback is invoked at most once, asynchronously, with a timestamp that increases from frame to frame.
type Scheduler interface {
	RequestFrame(fn func(ts time.Duration))
}

// Request describes one counter animation.
//
// End is expected to be >= Start; counting down is allowed.
type Request struct {
	Start    int
	End      int
	Duration time.Duration
	Suffix   string
}

// Final returns the text written by the last frame.
func (r Request) Final() string {
	return FormatNumber(r.End) + r.Suffix
}

// Interpolator starts counter animations on a shared [Scheduler].
type Interpolator struct {
	scheduler Scheduler
	logger    *log.Logger
}

// Option configures an [Interpolator].
type Option func(*Interpolator)

// WithLogger sets the logger used for animation lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(i *Interpolator) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an [Interpolator] driven by s.
func New(s Scheduler, opts ...Option) *Interpolator {
	i := &Interpolator{
		scheduler: s,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Animate interpolates from start to end over duration, writing formatted values with suffix into sink.
func (i *Interpolator) Animate(sink Sink, start, end int, duration time.Duration, suffix string) *Animation {
	return i.AnimateRequest(sink, Request{Start: start, End: end, Duration: duration, Suffix: suffix})
}

// AnimateRequest starts the animation described by req.
//
// With a non-positive duration the final text is written before AnimateRequest returns and no frame is requested.
func (i *Interpolator) AnimateRequest(sink Sink, req Request) *Animation {
	a := &Animation{
		id:        uuid.New().String(),
		req:       req,
		sink:      sink,
		scheduler: i.scheduler,
		value:     req.Start,
		done:      make(chan struct{}),
	}
	a.logger = i.logger.With("animation", a.id)

	if req.Duration <= 0 {
		a.logger.Debug("non-positive duration, writing final value", "end", req.End)
		a.write(req.End)
		a.finish()
		return a
	}

	a.logger.Debug("starting", "start", req.Start, "end", req.End, "duration", req.Duration)
	i.scheduler.RequestFrame(a.step)
	return a
}

// Animation is the state of one running counter. It is owned by a single run and never shared.
type Animation struct {
	id        string
	req       Request
	sink      Sink
	scheduler Scheduler
	logger    *log.Logger

	// t0 and started are only touched from scheduler callbacks, which never overlap.
	t0      time.Duration
	started bool

	mu     sync.Mutex
	value  int
	frames int

	cancelled atomic.Bool
	once      sync.Once
	done      chan struct{}
}

func (a *Animation) step(ts time.Duration) {
	if a.cancelled.Load() {
		a.logger.Debug("cancelled", "value", a.Value())
		a.finish()
		return
	}

	if !a.started {
		a.t0 = ts
		a.started = true
	}

	p := progress(ts-a.t0, a.req.Duration)
	if p >= 1 {
		a.write(a.req.End)
		a.logger.Debug("finished", "frames", a.Frames())
		a.finish()
		return
	}

	a.write(interpolate(p, a.req.Start, a.req.End))
	a.scheduler.RequestFrame(a.step)
}

func (a *Animation) write(v int) {
	a.mu.Lock()
	a.value = v
	a.frames++
	a.mu.Unlock()
	a.sink.SetText(FormatNumber(v) + a.req.Suffix)
}

func (a *Animation) finish() {
	a.once.Do(func() { close(a.done) })
}

// Cancel stops the animation: the next scheduled step writes nothing and requests no further frames.
func (a *Animation) Cancel() {
	a.cancelled.Store(true)
}

// Cancelled reports whether Cancel was called.
func (a *Animation) Cancelled() bool { return a.cancelled.Load() }

// Done is closed once the animation has written its final value or observed a cancellation.
func (a *Animation) Done() <-chan struct{} { return a.done }

// ID identifies the animation in logs.
func (a *Animation) ID() string { return a.id }

// Request returns the request the animation was started with.
func (a *Animation) Request() Request { return a.req }

// Value returns the last value written to the sink.
func (a *Animation) Value() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// Frames returns the number of writes made to the sink.
func (a *Animation) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// progress returns elapsed/total clamped to [0, 1].
func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	return math.Min(math.Max(p, 0), 1)
}

// interpolate truncates toward negative infinity, so a rising counter never shows end early.
func interpolate(p float64, start, end int) int {
	return int(math.Floor(p*float64(end-start) + float64(start)))
}
