package dupes

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// maxNearListed caps the near-pair listing so the report stays readable
// when a dark theme makes every page look alike.
const maxNearListed = 30

// WriteReport renders the duplicate findings as the plain-text report.
func WriteReport(w io.Writer, f *Findings, threshold int) error {
	var b strings.Builder

	b.WriteString("=== NMR graph duplicate check ===\n\n")
	b.WriteString("Graphs are raw free induction decay data. If different samples show\n")
	b.WriteString("identical graphs, the same underlying curve may have been reused.\n\n")
	fmt.Fprintf(&b, "Total pages: %d\n\n", f.Total)

	b.WriteString("--- Exact duplicates (identical perceptual hash) ---\n")
	if len(f.ExactGroups) > 0 {
		for _, g := range f.ExactGroups {
			fmt.Fprintf(&b, "  Pages %v are identical.\n", g)
		}
		b.WriteString("\n  Conclusion: different samples are represented by the same graph image.\n")
	} else {
		b.WriteString("  None found.\n")
	}

	fmt.Fprintf(&b, "\n--- Near-duplicate pages (distance <= %d) ---\n", threshold)
	if len(f.NearPairs) > 0 {
		for i, p := range f.NearPairs {
			if i == maxNearListed {
				fmt.Fprintf(&b, "  ... and %d more pairs.\n", len(f.NearPairs)-maxNearListed)
				break
			}
			fmt.Fprintf(&b, "  Pages %d and %d, distance = %d\n", p.A, p.B, p.Distance)
		}
	} else {
		b.WriteString("  None.\n")
	}

	b.WriteString("\n--- Duplicate groups ---\n")
	if len(f.Groups) > 0 {
		for _, g := range f.Groups {
			fmt.Fprintf(&b, "  Group: %v\n", g)
		}
	} else {
		b.WriteString("  None.\n")
	}

	b.WriteString("\nNote: the perceptual hash is advisory only. Thin plot lines on a dark\n")
	b.WriteString("background hash alike regardless of the data; confirm suspected\n")
	b.WriteString("duplicates with the vision analysis (analyze + summarize).\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveReport writes the report to a file.
func SaveReport(path string, f *Findings, threshold int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()
	return WriteReport(file, f, threshold)
}
