package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/roundctl/internal/domain"
	"github.com/spf13/cobra"
)

func newPredictCmd(app *app) *cobra.Command {
	var current string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "predict <digits>",
		Short: "Predict the outcome of the round after a serial",
		Long: "predict keeps the period prefix of the active round (or of --current) and replaces its " +
			"serial with the given 1 to 3 digits, then shows the round that follows it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				prediction domain.Prediction
				err        error
			)
			if strings.TrimSpace(current) != "" {
				prediction, err = app.predictor.Predict(domain.RoundID(strings.TrimSpace(current)), args[0])
			} else {
				engine, engineErr := app.newEngine()
				if engineErr != nil {
					return engineErr
				}
				prediction, err = engine.PredictNext(args[0])
			}
			if err != nil {
				return fmt.Errorf("predict next round: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, prediction)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Base period: %s\n", prediction.Base)
			_, _ = fmt.Fprintf(out, "Next period: %s\n", prediction.Next)
			_, err = fmt.Fprintf(out, "Outcome: %s\n", formatOutcome(prediction.Outcome))
			return err
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Round id whose period prefix is used (default: the active round)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func formatOutcome(outcome domain.Outcome) string {
	return fmt.Sprintf("%d %s %s", outcome.Digit, outcome.Category, outcome.Color)
}
