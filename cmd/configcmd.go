package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Prints the configuration after defaults, config.yaml, FOODMAP_*
environment variables, and flags are applied. The output is a valid
config.yaml.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.WriteYAML(cmd.OutOrStdout()); err != nil {
			return eris.Wrap(err, "config")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
