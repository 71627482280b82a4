package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"classquiz/internal/config"
)

// Global state set during PersistentPreRunE.
var (
	cfg    config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "classquiz",
	Short: "Self-hosted quiz platform for classroom use",
	Long: `classquiz serves quizzes defined as YAML files, tracks student scores,
and keeps its SQLite schema and quiz content up to date through versioned
migrations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger = logrus.New()
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(practiceCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
