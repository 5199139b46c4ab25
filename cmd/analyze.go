package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/analyze"
)

func newAnalyzeCmd() *cobra.Command {
	var opts analyze.Options
	var delaySeconds float64

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Describe page graphs with a vision LLM",
		Long: `Send each extracted page image to a vision-capable LLM and store the
structured graph descriptions it returns.

Pages are processed one at a time and results.json is rewritten after every
page, so an interrupted run can simply be restarted; pages that already have a
result are skipped unless --force is given. A reply the model garbles is kept
verbatim and flagged, never discarded.`,
		Example: `  # Analyze all pages with the default provider
  nmrgraphs analyze

  # Re-run two specific pages against Ollama
  nmrgraphs analyze --list 3,17 --force --provider ollama

  # Every 4th page, throttled for a rate-limited gateway
  nmrgraphs analyze --sample 4 --delay 2.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Delay = time.Duration(delaySeconds * float64(time.Second))

			counts, err := analyze.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			fmt.Printf("\nAnalysis complete\n")
			fmt.Printf("  Selected:       %d\n", counts.Selected)
			fmt.Printf("  Analyzed:       %d\n", counts.Analyzed)
			fmt.Printf("  Skipped:        %d\n", counts.Skipped)
			fmt.Printf("  Parse failures: %d\n", counts.ParseFailures)
			fmt.Printf("  Errors:         %d\n", counts.Errors)
			fmt.Printf("\nResults saved to: %s\n", opts.ResultsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.PagesDir, "pages", "pages", "Directory of extracted page PNGs")
	cmd.Flags().StringVar(&opts.ResultsPath, "results", "results.json", "Path to the results file")
	cmd.Flags().StringVar(&opts.List, "list", "", "Comma-separated page numbers to process (default all)")
	cmd.Flags().IntVar(&opts.Sample, "sample", 1, "Process every Nth page when --list is not given")
	cmd.Flags().Float64Var(&delaySeconds, "delay", 1, "Seconds to wait between pages")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Reprocess pages that already have a result")
	cmd.Flags().StringVar(&opts.Provider, "provider", "openai", "LLM provider (openai, ollama, or gemini)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model name (defaults to provider's default)")

	return cmd
}
