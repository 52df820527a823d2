package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storybook/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "storybook",
	Short: "Interactive picture book for young readers",
	Long:  "Storybook is a terminal picture book. Each page has a small activity to finish before the page turns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STORYBOOK_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Read pages from this directory instead of the built-in story")
	rootCmd.PersistentFlags().Bool("mute", false, "Disable narration and sound effects")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies any flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if d, _ := cmd.Flags().GetString("content"); d != "" {
		cfg.ContentDir = d
	}
	if cmd.Flags().Changed("mute") {
		cfg.Mute, _ = cmd.Flags().GetBool("mute")
	}
	return cfg, nil
}
