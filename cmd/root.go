package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/app"
	"github.com/abhisek/secjobcoach/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "secjobcoach",
		Short: "Daily practice for entry-level security jobs",
		Long: `secjobcoach is a terminal coach for SOC analyst and entry-level
cybersecurity interviews: daily missions, incident scenarios and
spaced-repetition flashcards, stored in a local SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SECJOBCOACH_DB env var)")
	root.PersistentFlags().String("env-file", config.DefaultEnvFile, "Optional .env file loaded before reading the environment")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides SECJOBCOACH_LOG_LEVEL)")

	root.AddCommand(
		newMissionCmd(),
		newCardsCmd(),
		newTrackCmd(),
		newScenariosCmd(),
		newStatsCmd(),
		newContentCmd(),
		newResetCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree.
func Execute() error {
	return newRootCmd().Execute()
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{Coach: d.coach})
}
