package cmd

import (
	"fmt"
	"strconv"
	"time"

	boardadapter "github.com/bnema/roundctl/internal/adapters/render/board"
	"github.com/bnema/roundctl/internal/application"
	"github.com/bnema/roundctl/internal/domain"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *app) *cobra.Command {
	var from, until string
	var serial, maxRounds int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the rounds of a time window without the wall clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromTime, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return fmt.Errorf("parse --from: %w", err)
			}
			untilTime, err := time.Parse(time.RFC3339, until)
			if err != nil {
				return fmt.Errorf("parse --until: %w", err)
			}
			if app.cfg.Location != nil {
				fromTime = fromTime.In(app.cfg.Location)
				untilTime = untilTime.In(app.cfg.Location)
			}

			result, err := application.Replay(app.engineConfig(), application.ReplayCommand{
				From:      fromTime,
				Until:     untilTime,
				Serial:    serial,
				MaxRounds: maxRounds,
			})
			if err != nil {
				return fmt.Errorf("replay rounds: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			return writeReplay(cmd, result)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339)")
	cmd.Flags().StringVar(&until, "until", "", "Window end (RFC3339)")
	cmd.Flags().IntVar(&serial, "serial", 0, "Serial of the first round (default: seeded from the time of day)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", application.DefaultMaxReplayRounds, "Refuse windows with more completed rounds than this")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("until")

	return cmd
}

func writeReplay(cmd *cobra.Command, result application.ReplayResult) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Replayed %d rounds\n", len(result.Completed))

	if len(result.Completed) > 0 {
		rows := make([][]string, 0, len(result.Completed))
		for _, round := range result.Completed {
			rows = append(rows, roundRow(round.ID.String(), round.StartedAt, round.Outcome))
		}
		if err := writeTable(cmd, []string{"ID", "STARTED", "DIGIT", "SIZE", "COLOR"}, rows); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(out, "Active period: %s (closes in %s)\n", result.Active.ID, boardadapter.FormatCountdown(result.Remaining))
	return err
}

func roundRow(id string, started time.Time, outcome domain.Outcome) []string {
	return []string{
		id,
		started.Format(time.RFC3339),
		strconv.Itoa(outcome.Digit),
		string(outcome.Category),
		string(outcome.Color),
	}
}
