package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nmrgraphs",
		Short: "NMR graphics cross-check toolkit",
		Long: `Nmrgraphs extracts graph pages from a PDF of NMR (free induction decay)
plots, flags visually near-identical pages, and asks a vision-capable LLM to
describe the axes, headers and captions of every graph so that the reported
K1/K2 and Pr1/Pr2 ratios can be checked against what is actually plotted.

The pipeline runs as independent batch commands:

  extract -> dupes (advisory branch)
  extract -> analyze -> summarize / export`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newDupesCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newManifestCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
