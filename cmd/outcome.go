package cmd

import (
	"strconv"

	"github.com/bnema/roundctl/internal/application"
	"github.com/bnema/roundctl/internal/domain"
	"github.com/spf13/cobra"
)

func newOutcomeCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "outcome <id>...",
		Short: "Show the outcome derived from round ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspections := make([]application.Inspection, 0, len(args))
			for _, arg := range args {
				inspections = append(inspections, app.predictor.Inspect(domain.RoundID(arg)))
			}

			if asJSON {
				return writeJSON(cmd, inspections)
			}

			rows := make([][]string, 0, len(inspections))
			for _, inspection := range inspections {
				seed := strconv.FormatInt(inspection.Seed, 10)
				if !inspection.Deterministic {
					seed = "time-seeded"
				}
				rows = append(rows, []string{
					inspection.ID.String(),
					seed,
					strconv.Itoa(inspection.Outcome.Digit),
					string(inspection.Outcome.Category),
					string(inspection.Outcome.Color),
				})
			}
			return writeTable(cmd, []string{"ID", "SEED", "DIGIT", "SIZE", "COLOR"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
