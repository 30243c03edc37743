package cmd

import (
	"fmt"

	boardadapter "github.com/bnema/roundctl/internal/adapters/render/board"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the active round, its countdown and the round history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.newEngine()
			if err != nil {
				return err
			}

			tick, err := engine.CatchUp(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, tick)
			}

			rendered, err := app.boardRenderer(boardadapter.FromTick(tick), app.renderOptions())
			if err != nil {
				return fmt.Errorf("render board: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
