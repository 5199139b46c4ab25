package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/dupes"
)

func newDupesCmd() *cobra.Command {
	var pagesDir string
	var hashesPath string
	var reportPath string
	var threshold int

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Find visually identical or near-identical pages",
		Long: `Compute a perceptual hash for every extracted page and report pages whose
hashes collide exactly or sit within a small Hamming distance of each other.

A page that appears twice usually means the same graph block was scanned into
the report twice. The findings are advisory; nothing downstream consumes them.`,
		Example: `  # Default run against ./pages
  nmrgraphs dupes

  # Looser near-duplicate threshold, custom output paths
  nmrgraphs dupes --pages scans --threshold 5 --report dupes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Hashing pages", "dir", pagesDir)

			hashes, err := dupes.HashPages(pagesDir)
			if err != nil {
				return fmt.Errorf("failed to hash pages: %w", err)
			}
			if err := dupes.SaveHashes(hashesPath, hashes); err != nil {
				return fmt.Errorf("failed to save hashes: %w", err)
			}

			findings, err := dupes.Analyze(hashes, threshold)
			if err != nil {
				return fmt.Errorf("failed to compare hashes: %w", err)
			}
			if err := dupes.SaveReport(reportPath, findings, threshold); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}

			if err := dupes.WriteReport(os.Stdout, findings, threshold); err != nil {
				return err
			}
			fmt.Printf("\nHashes saved to: %s\nReport saved to: %s\n", hashesPath, reportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", "pages", "Directory of extracted page PNGs")
	cmd.Flags().StringVar(&hashesPath, "hashes", "page_hashes.json", "Path to write per-page hashes")
	cmd.Flags().StringVar(&reportPath, "report", "duplicates_report.txt", "Path to write the findings report")
	cmd.Flags().IntVar(&threshold, "threshold", dupes.NearThreshold, "Max Hamming distance for a near-duplicate pair")

	return cmd
}
