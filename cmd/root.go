package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskboard/internal/logger"
)

var (
	configPath string
	debug      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Multi-user task-tracking web application",
	Long: `Taskboard is a multi-user task tracker: users register, create boards,
subscribe to boards, and manage tasks scoped to those boards.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case verbose:
			logger.SetLevel(logger.LevelDebug)
		case debug:
			logger.SetLevel(logger.LevelInfo)
		default:
			logger.SetLevel(logger.LevelWarn)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to taskboard.yaml (default: search working directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable info-level logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug-level logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
