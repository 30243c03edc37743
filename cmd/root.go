package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, app := newRootCmd()
	return executeAndClose(rootCmd, app)
}

// executeAndClose releases the wired archive and logger whether or not the
// command succeeded.
func executeAndClose(rootCmd *cobra.Command, app *app) (err error) {
	defer func() {
		if closeErr := app.close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close app: %w", closeErr))
		}
	}()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	var verbose bool
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "roundctl",
		Short: "roundctl: deterministic fixed-duration round board",
		Long: "roundctl runs a clock of fixed-duration rounds, derives each round's outcome digit " +
			"from its identifier, predicts upcoming outcomes and keeps an archive of completed rounds.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			wired, err := wireApp(verbose)
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBoardCmd(app),
		newWatchCmd(app),
		newPredictCmd(app),
		newOutcomeCmd(app),
		newReplayCmd(app),
		newArchiveCmd(app),
	)

	return rootCmd, app
}
