package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qurankit/qurankit/internal/config"
	"github.com/qurankit/qurankit/internal/preflight"
)

func newDoctorCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the QuranKit environment",
		Long: `Check that the data directory, scripture database, translation
catalog and log destination are usable. Exits non-zero when a
required check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(dataDir)
			if err != nil {
				return err
			}

			checker := preflight.New(
				preflight.WithOutput(cmd.OutOrStdout()),
				preflight.WithVerbose(verbose),
			)
			results := checker.RunAll(cmd.Context(), cfg)
			checker.PrintResults(results)

			if checker.HasCriticalFailures(results) {
				return fmt.Errorf("environment check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show check details")

	return cmd
}
