package graphs

import (
	"strings"
	"testing"
)

const sampleArray = `[
  {
    "graph_id": 1,
    "header_data": {
      "full_text": "Sample No. 3, K = 0.72, Pr = 1.15",
      "structured_metrics": {
        "sample_reference": "Sample No. 3",
        "crystallinity_index": 0.72,
        "proton_density": 1.15
      }
    },
    "graph_statistics": {
      "axes": {
        "y_axis": {"label": "Intensity, %", "visible_min": 0, "visible_max": 100, "step_interval": 20},
        "x_axis": {"label": "Time, us", "visible_min": 0, "visible_max": 500, "step_interval": null}
      },
      "y_metrics_max": {"red": 98.5, "blue": 64.0, "green": null},
      "visible_tabs": ["FID", "Spectrum"]
    },
    "caption_data": {
      "illustration_number": "No. 155",
      "full_text": "NMR section of the examined strokes",
      "structured_details": {
        "object_type": "NMR section",
        "source_item": "round stamp impression",
        "investigation_object": "Object No. 12",
        "condition": "third punch"
      }
    }
  }
]`

func TestParseGraphArray(t *testing.T) {
	descs, err := ParseGraphArray(sampleArray)
	if err != nil {
		t.Fatalf("ParseGraphArray failed: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("expected 1 graph, got %d", len(descs))
	}

	g := descs[0]
	if g.GraphID != 1 {
		t.Errorf("GraphID = %d, want 1", g.GraphID)
	}
	if g.HeaderData.StructuredMetrics.CrystallinityIndex == nil ||
		*g.HeaderData.StructuredMetrics.CrystallinityIndex != 0.72 {
		t.Errorf("CrystallinityIndex = %v, want 0.72", g.HeaderData.StructuredMetrics.CrystallinityIndex)
	}
	if g.GraphStatistics.Axes.XAxis.StepInterval != nil {
		t.Error("null step_interval must decode to nil")
	}
	if g.GraphStatistics.YMetricsMax.Green != nil {
		t.Error("null green maximum must decode to nil")
	}
	if got := g.CaptionData.StructuredDetails.Condition; got != "third punch" {
		t.Errorf("Condition = %q, want %q", got, "third punch")
	}
	if len(g.GraphStatistics.VisibleTabs) != 2 {
		t.Errorf("VisibleTabs = %v, want 2 entries", g.GraphStatistics.VisibleTabs)
	}
}

func TestParseGraphArrayStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + sampleArray + "\n```"
	descs, err := ParseGraphArray(fenced)
	if err != nil {
		t.Fatalf("fenced array must still parse: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("expected 1 graph, got %d", len(descs))
	}

	// Bare fence without the json language tag.
	bare := "```\n[]\n```"
	descs, err = ParseGraphArray(bare)
	if err != nil {
		t.Fatalf("bare fence must still parse: %v", err)
	}
	if len(descs) != 0 {
		t.Errorf("expected empty array, got %d graphs", len(descs))
	}
}

func TestParseGraphArrayTruncated(t *testing.T) {
	truncated := strings.TrimSuffix(strings.TrimSpace(sampleArray), "]")
	if _, err := ParseGraphArray(truncated); err == nil {
		t.Fatal("truncated JSON must fail to parse")
	}
}

func TestParseGraphArrayRejectsNonArray(t *testing.T) {
	cases := []string{
		`{"graph_id": 1}`,
		"The page shows two graphs.",
		"",
		"null",
	}
	for _, c := range cases {
		if _, err := ParseGraphArray(c); err == nil {
			t.Errorf("input %q must fail to parse", c)
		}
	}
}

func TestParseGraphArrayEmpty(t *testing.T) {
	descs, err := ParseGraphArray("[]")
	if err != nil {
		t.Fatalf("empty array must parse: %v", err)
	}
	if descs == nil || len(descs) != 0 {
		t.Errorf("expected non-nil empty slice, got %v", descs)
	}
}
