package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardadapter "github.com/bnema/roundctl/internal/adapters/render/board"
	"github.com/bnema/roundctl/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errWatchLimitReached = errors.New("watch evaluation limit reached")

type watchOptions struct {
	plain    bool
	interval time.Duration
	count    int
}

func newWatchCmd(app *app) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the rounds live",
		Long: "watch keeps the round board up to date. Without --plain it runs a full screen board; " +
			"with --plain it prints one line per evaluation and resynchronizes on SIGCONT.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", opts.interval)
			}
			if opts.count < 0 {
				return fmt.Errorf("count must not be negative, got %d", opts.count)
			}
			return runWatch(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print one line per evaluation instead of the full screen board")
	cmd.Flags().DurationVar(&opts.interval, "interval", application.DefaultDriverInterval, "Evaluation interval")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Stop after this many evaluations in plain mode (0 runs until interrupted)")

	return cmd
}

func runWatch(cmd *cobra.Command, app *app, opts watchOptions) error {
	engine, err := app.newEngine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.plain {
		return boardadapter.RunWatch(ctx, engine, boardadapter.WatchOptions{
			Interval:  opts.interval,
			Render:    app.renderOptions(),
			Input:     cmd.InOrStdin(),
			Output:    cmd.OutOrStdout(),
			AltScreen: true,
		})
	}

	return runPlainWatch(ctx, engine, app.logger, cmd.OutOrStdout(), opts)
}

func runPlainWatch(ctx context.Context, engine *application.Engine, logger *zap.Logger, out io.Writer, opts watchOptions) error {
	resume := make(chan struct{}, 1)
	driver := application.NewDriver(engine, opts.interval, application.WithDriverLogger(logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return forwardResumeSignals(gctx, resume, logger)
	})
	g.Go(func() error {
		evaluations := 0
		err := driver.Run(gctx, resume, func(tick application.Tick) error {
			if _, err := fmt.Fprintln(out, boardadapter.Line(boardadapter.FromTick(tick))); err != nil {
				return fmt.Errorf("write board line: %w", err)
			}
			evaluations++
			if opts.count > 0 && evaluations >= opts.count {
				return errWatchLimitReached
			}
			return nil
		})
		if err == nil {
			// the signal forwarder only stops on cancellation
			return context.Canceled
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, errWatchLimitReached) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// forwardResumeSignals turns the platform's continue signal into a resume
// request for the driver until ctx is done.
func forwardResumeSignals(ctx context.Context, resume chan<- struct{}, logger *zap.Logger) error {
	signals := resumeSignals()
	if len(signals) == 0 {
		<-ctx.Done()
		return nil
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			logger.Debug("resume signal received", zap.String("signal", sig.String()))
			select {
			case resume <- struct{}{}:
			default:
			}
		}
	}
}
