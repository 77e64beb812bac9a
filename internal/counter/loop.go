package counter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// FrameLoop is a real-time [Scheduler].
//
// Callbacks requested before a frame run together on that frame with one shared timestamp. Callbacks requested while a
// frame is running wait for the next one. Frames are paced by a rate limiter and only happen while callbacks are
// pending.
type FrameLoop struct {
	mu      sync.Mutex
	pending []func(time.Duration)
	wake    chan struct{}
	limiter *rate.Limiter
	now     func() time.Time
	origin  time.Time
	last    time.Duration
}

// NewFrameLoop creates a [FrameLoop] running at fps frames per second; non-positive values use [DefaultFPS].
func NewFrameLoop(fps int) *FrameLoop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &FrameLoop{
		wake:    make(chan struct{}, 1),
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(fps)), 1),
		now:     time.Now,
		origin:  time.Now(),
		last:    -1,
	}
}

// RequestFrame queues fn for the next frame. Safe for concurrent use.
func (l *FrameLoop) RequestFrame(fn func(ts time.Duration)) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of callbacks waiting for a frame.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Run delivers frames until ctx is done.
func (l *FrameLoop) Run(ctx context.Context) error {
	for {
		if l.Pending() == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
				continue
			}
		}

		if err := l.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()

		ts := l.timestamp()
		for _, fn := range batch {
			fn(ts)
		}
	}
}

// timestamp is monotonic and strictly increasing across frames.
func (l *FrameLoop) timestamp() time.Duration {
	ts := l.now().Sub(l.origin)
	if ts <= l.last {
		ts = l.last + 1
	}
	l.last = ts
	return ts
}
