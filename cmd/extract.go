package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/extract"
)

func newExtractCmd() *cobra.Command {
	var pdfPath string
	var outDir string
	var zoom float64

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Rasterize PDF pages to PNG images",
		Long: `Render every page of the source PDF to a PNG file named page_NNN.png.

Pages are numbered from 1 and rendered at double the nominal resolution by
default so that axis tick labels survive the trip through the vision model.`,
		Example: `  # Extract with defaults
  nmrgraphs extract --pdf report.pdf

  # Higher resolution into a custom directory
  nmrgraphs extract --pdf report.pdf --out scans --zoom 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Extracting pages", "pdf", pdfPath, "out", outDir, "zoom", zoom)

			count, err := extract.Run(pdfPath, outDir, zoom)
			if err != nil {
				return fmt.Errorf("failed to extract pages: %w", err)
			}

			fmt.Printf("Extracted %d pages to %s\n", count, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Path to the source PDF (required)")
	cmd.Flags().StringVar(&outDir, "out", "pages", "Directory to write page PNGs into")
	cmd.Flags().Float64Var(&zoom, "zoom", extract.DefaultZoom, "Render scale relative to 72 DPI")
	_ = cmd.MarkFlagRequired("pdf")

	return cmd
}
