package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
)

func fp(v float64) *float64 { return &v }

func sampleResults() map[int]*graphs.PageResult {
	return map[int]*graphs.PageResult{
		2: {
			Page: 2,
			Graphs: []graphs.GraphDescription{
				{
					GraphID: 1,
					HeaderData: graphs.HeaderData{
						StructuredMetrics: graphs.StructuredMetrics{
							SampleReference:    "Sample No. 1",
							CrystallinityIndex: fp(0.72),
							ProtonDensity:      fp(1.15),
						},
					},
					GraphStatistics: graphs.GraphStatistics{
						Axes: graphs.Axes{
							XAxis: graphs.Axis{Label: "Time, us", VisibleMin: fp(0), VisibleMax: fp(500)},
							YAxis: graphs.Axis{Label: "Intensity, %", VisibleMin: fp(0), VisibleMax: fp(100), StepInterval: fp(20)},
						},
						YMetricsMax: graphs.YMetricsMax{Red: fp(98.5), Blue: fp(64)},
					},
					CaptionData: graphs.CaptionData{IllustrationNumber: "No. 3"},
				},
				{GraphID: 2},
			},
		},
		5: {Page: 5, ParseFailed: true, Content: "not json"},
	}
}

func TestFlatten(t *testing.T) {
	rows, skipped := Flatten(sampleResults())

	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	r := rows[0]
	if r.Page != 2 || r.GraphID != 1 {
		t.Errorf("row identity = page %d graph %d, want page 2 graph 1", r.Page, r.GraphID)
	}
	if r.CrystallinityIndex == nil || *r.CrystallinityIndex != 0.72 {
		t.Errorf("CrystallinityIndex = %v, want 0.72", r.CrystallinityIndex)
	}
	if r.YStepInterval == nil || *r.YStepInterval != 20 {
		t.Errorf("YStepInterval = %v, want 20", r.YStepInterval)
	}
	if r.GreenMax != nil {
		t.Error("missing green curve must stay nil")
	}
	if r.IllustrationNumber != "No. 3" {
		t.Errorf("IllustrationNumber = %q", r.IllustrationNumber)
	}

	// Second graph on the page keeps its own identity.
	if rows[1].GraphID != 2 || rows[1].Page != 2 {
		t.Errorf("second row = page %d graph %d", rows[1].Page, rows[1].GraphID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	rows, _ := Flatten(sampleResults())
	path := filepath.Join(t.TempDir(), "graphs.parquet")

	if err := Save(path, rows); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open parquet file: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("failed to stat parquet file: %v", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		t.Fatalf("failed to open parquet: %v", err)
	}
	if pf.NumRows() != int64(len(rows)) {
		t.Errorf("NumRows = %d, want %d", pf.NumRows(), len(rows))
	}

	reader := parquet.NewGenericReader[GraphRecord](pf)
	defer reader.Close()

	got := make([]GraphRecord, len(rows))
	if n, _ := reader.Read(got); n != len(rows) {
		t.Fatalf("read %d rows, want %d", n, len(rows))
	}
	if got[0].Page != 2 || got[0].SampleReference != "Sample No. 1" {
		t.Errorf("round-trip lost data: %+v", got[0])
	}
}
