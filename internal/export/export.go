// Package export flattens parsed graph descriptions into a Parquet table
// for statistical tooling (one row per graph).
package export

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
)

// GraphRecord is one graph flattened for columnar analysis. Pointer fields
// become optional Parquet columns, preserving the model's nulls.
type GraphRecord struct {
	Page               int      `parquet:"page"`
	GraphID            int      `parquet:"graph_id"`
	SampleReference    string   `parquet:"sample_reference"`
	CrystallinityIndex *float64 `parquet:"crystallinity_index,optional"`
	ProtonDensity      *float64 `parquet:"proton_density,optional"`
	XLabel             string   `parquet:"x_label"`
	XVisibleMin        *float64 `parquet:"x_visible_min,optional"`
	XVisibleMax        *float64 `parquet:"x_visible_max,optional"`
	XStepInterval      *float64 `parquet:"x_step_interval,optional"`
	YLabel             string   `parquet:"y_label"`
	YVisibleMin        *float64 `parquet:"y_visible_min,optional"`
	YVisibleMax        *float64 `parquet:"y_visible_max,optional"`
	YStepInterval      *float64 `parquet:"y_step_interval,optional"`
	RedMax             *float64 `parquet:"red_max,optional"`
	BlueMax            *float64 `parquet:"blue_max,optional"`
	GreenMax           *float64 `parquet:"green_max,optional"`
	IllustrationNumber string   `parquet:"illustration_number"`
}

// Flatten turns the page results into export rows, page order first, graph
// order second. Pages with the failure marker are skipped and counted.
func Flatten(results map[int]*graphs.PageResult) (rows []GraphRecord, skipped int) {
	pageNums := make([]int, 0, len(results))
	for p := range results {
		pageNums = append(pageNums, p)
	}
	sort.Ints(pageNums)

	for _, p := range pageNums {
		r := results[p]
		if r.Failed() {
			skipped++
			continue
		}
		for _, g := range r.Graphs {
			rows = append(rows, flattenGraph(p, g))
		}
	}
	return rows, skipped
}

func flattenGraph(page int, g graphs.GraphDescription) GraphRecord {
	m := g.HeaderData.StructuredMetrics
	ax := g.GraphStatistics.Axes
	ym := g.GraphStatistics.YMetricsMax
	return GraphRecord{
		Page:               page,
		GraphID:            g.GraphID,
		SampleReference:    m.SampleReference,
		CrystallinityIndex: m.CrystallinityIndex,
		ProtonDensity:      m.ProtonDensity,
		XLabel:             ax.XAxis.Label,
		XVisibleMin:        ax.XAxis.VisibleMin,
		XVisibleMax:        ax.XAxis.VisibleMax,
		XStepInterval:      ax.XAxis.StepInterval,
		YLabel:             ax.YAxis.Label,
		YVisibleMin:        ax.YAxis.VisibleMin,
		YVisibleMax:        ax.YAxis.VisibleMax,
		YStepInterval:      ax.YAxis.StepInterval,
		RedMax:             ym.Red,
		BlueMax:            ym.Blue,
		GreenMax:           ym.Green,
		IllustrationNumber: g.CaptionData.IllustrationNumber,
	}
}

// Save writes the rows as a Parquet file.
func Save(path string, rows []GraphRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[GraphRecord](f)
	if _, err := writer.Write(rows); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Exported graph rows", "path", path, "rows", len(rows))
	return nil
}
