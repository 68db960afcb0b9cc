package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// flags shared by every subcommand
var (
	configPath string
	jsonOut    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wca",
		Short:         "WhatsApp chat analyzer - statistics, timelines, words, emoji and mood from chat exports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/wca/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(wordsCmd())
	rootCmd.AddCommand(emojiCmd())
	rootCmd.AddCommand(moodCmd())
	rootCmd.AddCommand(adviceCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
