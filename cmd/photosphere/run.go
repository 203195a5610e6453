package main

import (
	"os"

	"github.com/aretw0/photosphere/internal/cli"
	"github.com/aretw0/photosphere/internal/presentation/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <config.yml>",
	Short: "Run the ingestion pipeline and print a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _ := cmd.Flags().GetStringArray("set")
		metricsOut, _ := cmd.Flags().GetString("metrics-out")
		graph, _ := cmd.Flags().GetBool("graph")

		return cli.Run(cmd.Context(), cli.RunOptions{
			GlobalOptions: globals,
			ConfigPath:    args[0],
			Set:           set,
			MetricsOut:    metricsOut,
			Graph:         graph,
			Banner:        report.IsTerminal(os.Stdout),
			Renderer:      report.RendererFor(os.Stdout),
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArray("set", nil, "Override a configuration value (dotted.key=value, repeatable)")
	runCmd.Flags().String("metrics-out", "", "Write Prometheus metrics of the run to this file")
	runCmd.Flags().Bool("graph", false, "Append a Mermaid flowchart of the stages")
}
