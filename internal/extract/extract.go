// Package extract rasterizes PDF pages to PNG images for the downstream
// duplicate check and vision analysis.
package extract

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
)

// DefaultZoom doubles the nominal 72 DPI so axis tick labels stay readable.
const DefaultZoom = 2.0

// Run renders every page of the PDF at pdfPath into outDir as
// page_NNN.png (1-based, zero padded). It returns the page count.
// A missing or unreadable source PDF fails before any output is written.
func Run(pdfPath, outDir string, zoom float64) (int, error) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return 0, fmt.Errorf("cannot access source PDF: %w", err)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return 0, fmt.Errorf("PDF has no pages: %s", pdfPath)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	dpi := 72 * zoom
	for n := 0; n < total; n++ {
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return 0, fmt.Errorf("failed to render page %d: %w", n+1, err)
		}

		outPath := filepath.Join(outDir, pages.FileName(n+1))
		f, err := os.Create(outPath)
		if err != nil {
			return 0, fmt.Errorf("failed to create page image: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return 0, fmt.Errorf("failed to encode page %d: %w", n+1, err)
		}
		if err := f.Close(); err != nil {
			return 0, fmt.Errorf("failed to write page image: %w", err)
		}

		slog.Debug("Rendered page", "page", n+1, "total", total, "path", outPath)
	}

	slog.Info("Rasterized PDF", "pdf", pdfPath, "pages", total, "out", outDir, "dpi", dpi)
	return total, nil
}
