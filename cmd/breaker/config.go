package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.breaker/breakout.yaml or ./configs/breakout.yaml and edit it to
change the game; files only need the fields they override.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		_, _ = os.Stdout.Write(config.DefaultYAML())
	},
}
