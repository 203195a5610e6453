package main

import (
	"os"

	"github.com/aretw0/photosphere/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yml>",
	Short: "Check a configuration and the files it points at",
	Long: `Validates the configuration against its schema, then checks that the atom
data and model files exist and agree with the settings describing them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _ := cmd.Flags().GetStringArray("set")
		return cli.Validate(cmd.Context(), args[0], set, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringArray("set", nil, "Override a configuration value (dotted.key=value, repeatable)")
}
