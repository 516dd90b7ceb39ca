// Command healthsim renders the watchface on the host from a simulated day of
// activity.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

var rootCmd = &cobra.Command{
	Use:          "healthsim",
	Short:        "Simulate the Health Metrics watchface on the host",
	SilenceUsage: true,
	Long: `healthsim replays a day of activity described by a YAML profile through the
watchface health tracker, and renders the resulting face.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		log = logger.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("profile", "p", "", "YAML profile of the wearer and their day (defaults built in)")
	rootCmd.PersistentFlags().StringP("at", "t", "", "local time to simulate up to, as 2006-01-02T15:04 (defaults to now)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level to the console")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
