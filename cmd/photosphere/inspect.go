package main

import (
	"os"

	"github.com/aretw0/photosphere/internal/cli"
	"github.com/aretw0/photosphere/internal/presentation/report"
	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect-model <file>",
	Short: "Print the header and shell count of a raw model file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")
		gzipped, _ := cmd.Flags().GetBool("gzipped")
		truncate, _ := cmd.Flags().GetInt("truncate")

		return cli.InspectModel(cli.InspectOptions{
			Path:     args[0],
			Type:     typ,
			Gzipped:  gzipped,
			Truncate: truncate,
			Renderer: report.RendererFor(os.Stdout),
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("type", "", "Model format (marcs or mesa)")
	inspectCmd.Flags().Bool("gzipped", false, "The MARCS file is gzip-compressed")
	inspectCmd.Flags().Int("truncate", domain.NoTruncation, "Keep only the first n MESA shells")
	_ = inspectCmd.MarkFlagRequired("type")
}
