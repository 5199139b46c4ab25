// Package manifest maps page numbers to the illustration numbers and punch
// labels of the expert report, so vision results can be tied back to the
// numbered illustrations.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
)

// DefaultFirstPunchPages is how many leading pages belong to the first
// punch series; everything after is the third punch.
const DefaultFirstPunchPages = 39

// Row describes one graphics page.
type Row struct {
	Page          int
	File          string
	Illustration1 int
	Illustration2 int
	Punch         string
	Path          string
}

// Rows builds the manifest for pages 1..total. Each page carries two
// illustrations: 2N-1 and 2N.
func Rows(pagesDir string, total, firstPunchPages int) []Row {
	rows := make([]Row, 0, total)
	for page := 1; page <= total; page++ {
		punch := "first punch"
		if page > firstPunchPages {
			punch = "third punch"
		}
		name := pages.FileName(page)
		rows = append(rows, Row{
			Page:          page,
			File:          name,
			Illustration1: (page-1)*2 + 1,
			Illustration2: (page-1)*2 + 2,
			Punch:         punch,
			Path:          filepath.Join(pagesDir, name),
		})
	}
	return rows
}

// WriteCSV renders the manifest rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"page", "file", "illustration_1", "illustration_2", "punch", "path"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Page),
			r.File,
			strconv.Itoa(r.Illustration1),
			strconv.Itoa(r.Illustration2),
			r.Punch,
			r.Path,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save writes the manifest CSV to path.
func Save(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, rows)
}
