package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/summary"
)

func newSummarizeCmd() *cobra.Command {
	var resultsPath string
	var calcPath string
	var outPath string
	var yamlPath string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Build a text report from the analysis results",
		Long: `Read results.json and produce a plain-text report: page and graph counts,
parse failures, observed K and Pr ranges, and pages whose descriptions are
byte-for-byte identical.

With --calc the report also cross-checks each calculation block against the
graphs: the (K1, K2) pair is matched to a page, G1 is recomputed from
K2/K1 + Pr2/Pr1 and the D ratios are validated both as G1/G and by the
(G2-2)/G methodology reading.`,
		Example: `  # Plain summary
  nmrgraphs summarize

  # Cross-check against declared calculation blocks, emit YAML too
  nmrgraphs summarize --calc calculations.json --yaml summary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := graphs.LoadResultStore(resultsPath)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}
			if store.Len() == 0 {
				return fmt.Errorf("no results found in %s, run analyze first", resultsPath)
			}

			var calc *summary.Calculations
			if calcPath != "" {
				calc, err = summary.LoadCalculations(calcPath)
				if err != nil {
					return fmt.Errorf("failed to load calculations: %w", err)
				}
				slog.Info("Loaded calculation blocks", "path", calcPath, "blocks", len(calc.Blocks))
			}

			rep := summary.Build(store.All(), calc)

			if err := summary.SaveText(outPath, rep); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			if yamlPath != "" {
				if err := summary.SaveYAML(yamlPath, resultsPath, rep); err != nil {
					return fmt.Errorf("failed to save yaml summary: %w", err)
				}
			}

			fmt.Print(rep.Render())
			fmt.Printf("\nReport saved to: %s\n", outPath)
			if yamlPath != "" {
				fmt.Printf("YAML summary saved to: %s\n", yamlPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "results.json", "Path to the results file")
	cmd.Flags().StringVar(&calcPath, "calc", "", "Path to declared calculation blocks (optional)")
	cmd.Flags().StringVar(&outPath, "out", "summary_report.txt", "Path to write the text report")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "Also write a YAML summary to this path")

	return cmd
}
