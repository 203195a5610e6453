package main

import (
	"context"

	"github.com/aretw0/photosphere/internal/cli"
	"github.com/spf13/cobra"
)

var globals cli.GlobalOptions

var rootCmd = &cobra.Command{
	Use:   "photosphere",
	Short: "Photosphere prepares stellar atmosphere models for radiative transfer",
	Long: `Photosphere reads a YAML configuration, loads atomic data and a MARCS or
MESA model, and produces the normalized stellar model and prepared atom data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command selected by the process arguments.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&globals.LogFormat, "log-format", "text", "Log format (text or json)")
	flags.StringVar(&globals.RedisAddr, "redis-addr", "", "Redis address for the atom data cache (empty uses memory)")
	flags.DurationVar(&globals.CacheTTL, "cache-ttl", 0, "Expiration of cached atom data (0 keeps it)")
}
