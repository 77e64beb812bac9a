package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mcview/internal/counter"
	"github.com/desertthunder/mcview/internal/shared"
	"github.com/urfave/cli/v3"
)

// Count animates a single value on the current terminal line.
func (r *Runner) Count(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	duration := r.config.Animation.Duration()
	if cmd.IsSet("duration") {
		duration = cmd.Duration("duration")
	}

	fps := r.config.Animation.FPS
	if cmd.IsSet("fps") {
		fps = cmd.Int("fps")
	}
	if fps <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", shared.ErrInvalidFlag, fps)
	}

	req := counter.Request{
		Start:    cmd.Int("from"),
		End:      cmd.Int("to"),
		Duration: duration,
		Suffix:   cmd.String("suffix"),
	}
	return r.count(ctx, req, fps)
}

// count drives req on a [counter.FrameLoop] until it finishes or ctx is cancelled.
func (r *Runner) count(ctx context.Context, req counter.Request, fps int) error {
	loop := counter.NewFrameLoop(fps)
	in := counter.New(loop, counter.WithLogger(r.logger))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		loop.Run(ctx)
	}()

	a := in.AnimateRequest(counter.NewWriterSink(r.output), req)
	r.logger.Debug("counter started", "id", a.ID(), "from", req.Start, "to", req.End, "duration", req.Duration)

	select {
	case <-a.Done():
	case <-ctx.Done():
		a.Cancel()
		r.logger.Info("counter interrupted", "id", a.ID(), "value", a.Value())
	}

	cancel()
	<-stopped

	return r.writePlain("\n")
}
