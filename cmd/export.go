package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/export"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
)

func newExportCmd() *cobra.Command {
	var resultsPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export graph descriptions to a Parquet file",
		Long: `Flatten results.json into one row per graph (page, graph id, header
metrics, axis ranges and per-curve maxima) and write the rows as Parquet for
downstream analysis in pandas or DuckDB. Pages whose descriptions failed to
parse are skipped.`,
		Example: `  nmrgraphs export
  nmrgraphs export --results results.json --out graphs.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := graphs.LoadResultStore(resultsPath)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}
			if store.Len() == 0 {
				return fmt.Errorf("no results found in %s, run analyze first", resultsPath)
			}

			rows, skipped := export.Flatten(store.All())
			if skipped > 0 {
				slog.Warn("Skipping failed pages", "count", skipped)
			}
			if len(rows) == 0 {
				return fmt.Errorf("no parsed graphs to export")
			}

			if err := export.Save(outPath, rows); err != nil {
				return fmt.Errorf("failed to write parquet: %w", err)
			}

			fmt.Printf("Exported %d graphs (%d pages skipped) to %s\n", len(rows), skipped, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "results.json", "Path to the results file")
	cmd.Flags().StringVar(&outPath, "out", "graphs.parquet", "Path to write the Parquet file")

	return cmd
}
