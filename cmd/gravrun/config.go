package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.gravrun/configs/runner.yaml or pass it with --config to override
any value; keys left out keep their defaults.

Example:
  gravrun config > ~/.gravrun/configs/runner.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		_, _ = os.Stdout.Write(config.DefaultYAML())
	},
}
