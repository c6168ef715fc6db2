package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solarreach/goalscan/internal/webapi"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goalscan",
		Short: "goalscan - check a source tree against declared feature goals",
		Long: `goalscan checks a project's source tree against a list of declared
feature goals and reports, per goal, whether it is achieved.

Goals live in a JSON document (data/feature-goals.json by default). Each
registered detector inspects the source files and reports a status with
file/line evidence.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newGoalsCommand())

	return cmd
}

func execute() error {
	webapi.Version = version
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
