package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const DefaultDriverInterval = time.Second

// TickSource starts a periodic tick stream and returns a stop func.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func tickerSource(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

type DriverOption func(*Driver)

func WithTickSource(source TickSource) DriverOption {
	return func(d *Driver) {
		if source != nil {
			d.ticks = source
		}
	}
}

func WithDriverLogger(logger *zap.Logger) DriverOption {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Driver is the periodic timer of an Engine. It evaluates once on start,
// then once per tick and once per resume signal, always from one goroutine.
type Driver struct {
	engine   *Engine
	interval time.Duration
	ticks    TickSource
	logger   *zap.Logger
}

func NewDriver(engine *Engine, interval time.Duration, opts ...DriverOption) *Driver {
	if interval <= 0 {
		interval = DefaultDriverInterval
	}

	d := &Driver{
		engine:   engine,
		interval: interval,
		ticks:    tickerSource,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run drives the engine until ctx is cancelled, passing every evaluation to
// sink. Archive failures are logged and do not stop the loop; a sink error
// does. Cancellation returns nil since no evaluation is ever left half done.
func (d *Driver) Run(ctx context.Context, resume <-chan struct{}, sink func(Tick) error) error {
	ticks, stop := d.ticks(d.interval)
	defer stop()

	if err := d.evaluate(ctx, d.engine.CatchUp, sink); err != nil {
		return d.result(ctx, err)
	}

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-ticks:
			if !last.IsZero() && at.Sub(last) > 2*d.interval {
				d.logger.Info("timer gap detected",
					zap.Duration("gap", at.Sub(last)),
					zap.Duration("interval", d.interval))
			}
			last = at
			if err := d.evaluate(ctx, d.engine.CatchUp, sink); err != nil {
				return d.result(ctx, err)
			}
		case _, ok := <-resume:
			if !ok {
				resume = nil
				continue
			}
			if err := d.evaluate(ctx, d.engine.Resume, sink); err != nil {
				return d.result(ctx, err)
			}
		}
	}
}

func (d *Driver) evaluate(ctx context.Context, catchUp func(context.Context) (Tick, error), sink func(Tick) error) error {
	tick, err := catchUp(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tick.RunID == "" {
			return err
		}
		d.logger.Warn("catch-up completed with errors", zap.Error(err))
	}

	return sink(tick)
}

func (d *Driver) result(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil
	}

	return err
}
