package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errArchiveMismatch = errors.New("archived outcomes do not match their ids")

func newArchiveCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect the archive of completed rounds",
	}

	cmd.AddCommand(
		newArchiveListCmd(app),
		newArchiveVerifyCmd(app),
	)

	return cmd
}

func newArchiveListCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived rounds, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rounds, err := app.archiveService.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, rounds)
			}

			if len(rounds) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No archived rounds.")
				return err
			}

			rows := make([][]string, 0, len(rounds))
			for _, archived := range rounds {
				round := archived.Round
				started := round.StartedAt
				if app.cfg.Location != nil {
					started = started.In(app.cfg.Location)
				}
				rows = append(rows, append(roundRow(round.ID.String(), started, round.Outcome), archived.RunID))
			}
			return writeTable(cmd, []string{"ID", "STARTED", "DIGIT", "SIZE", "COLOR", "RUN"}, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rounds (0 lists all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newArchiveVerifyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute archived outcomes and report mismatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.archiveService.Verify(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, mismatch := range report.Mismatches {
				_, _ = fmt.Fprintf(out, "%s: archived %s, derived %s\n",
					mismatch.Archived.Round.ID,
					formatOutcome(mismatch.Archived.Round.Outcome),
					formatOutcome(mismatch.Want),
				)
			}
			_, _ = fmt.Fprintf(out, "Checked %d rounds, %d mismatches\n", report.Checked, len(report.Mismatches))

			if !report.OK() {
				return errArchiveMismatch
			}
			return nil
		},
	}
}
