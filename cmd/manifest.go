package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/manifest"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
)

func newManifestCmd() *cobra.Command {
	var pagesDir string
	var outPath string
	var firstPunch int

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write a CSV mapping pages to illustration numbers",
		Long: `Each extracted page carries two illustrations, so page N maps to
illustration numbers 2N-1 and 2N. The manifest records that mapping together
with the punch label used when the report binder was assembled.`,
		Example: `  nmrgraphs manifest
  nmrgraphs manifest --pages scans --first-punch 20 --out binder.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := pages.List(pagesDir)
			if err != nil {
				return fmt.Errorf("failed to list pages: %w", err)
			}
			if len(nums) == 0 {
				return fmt.Errorf("no page images found in %s", pagesDir)
			}

			rows := manifest.Rows(pagesDir, nums[len(nums)-1], firstPunch)
			if err := manifest.Save(outPath, rows); err != nil {
				return fmt.Errorf("failed to save manifest: %w", err)
			}

			fmt.Printf("Wrote %d rows to %s\n", len(rows), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", "pages", "Directory of extracted page PNGs")
	cmd.Flags().StringVar(&outPath, "out", "manifest.csv", "Path to write the manifest CSV")
	cmd.Flags().IntVar(&firstPunch, "first-punch", manifest.DefaultFirstPunchPages, "Pages bound under the first punch")

	return cmd
}
