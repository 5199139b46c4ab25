package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/vision"
)

// stubProvider replays canned replies keyed by page image path.
type stubProvider struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (s *stubProvider) DescribePage(_ context.Context, config vision.Config) (string, error) {
	name := filepath.Base(config.ImagePath)
	s.calls = append(s.calls, name)
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	return s.replies[name], nil
}

func writePages(t *testing.T, dir string, nums ...int) {
	t.Helper()
	for _, n := range nums {
		path := filepath.Join(dir, pages.FileName(n))
		if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
			t.Fatalf("failed to write page fixture: %v", err)
		}
	}
}

func TestRunIsolatesPerPageFailures(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, 1, 2, 3)
	resultsPath := filepath.Join(dir, "results.json")

	stub := &stubProvider{
		replies: map[string]string{
			"page_001.png": `[{"graph_id":1}]`,
			"page_002.png": "```json\n[{\"graph_id\":1},{\"graph_id\":2}", // truncated
		},
		errs: map[string]error{
			"page_003.png": fmt.Errorf("connection refused"),
		},
	}

	counts, err := Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: resultsPath,
		Client:      stub,
		Model:       "test-model",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if counts.Analyzed != 3 {
		t.Errorf("Analyzed = %d, want 3", counts.Analyzed)
	}
	if counts.ParseFailures != 1 {
		t.Errorf("ParseFailures = %d, want 1", counts.ParseFailures)
	}
	if counts.Errors != 1 {
		t.Errorf("Errors = %d, want 1", counts.Errors)
	}

	store, err := graphs.LoadResultStore(resultsPath)
	if err != nil {
		t.Fatalf("failed to reload results: %v", err)
	}

	r1, _ := store.Get(1)
	if r1 == nil || len(r1.Graphs) != 1 || r1.Failed() {
		t.Errorf("page 1 should have one parsed graph: %+v", r1)
	}

	r2, _ := store.Get(2)
	if r2 == nil || !r2.ParseFailed {
		t.Fatalf("page 2 should carry the parse failure marker: %+v", r2)
	}
	if r2.Content != "```json\n[{\"graph_id\":1},{\"graph_id\":2}" {
		t.Errorf("raw reply not preserved verbatim: %q", r2.Content)
	}
	if r2.Graphs != nil {
		t.Error("failed page must not also carry parsed graphs")
	}

	r3, _ := store.Get(3)
	if r3 == nil || r3.Error == "" {
		t.Errorf("page 3 should record the transport error: %+v", r3)
	}
}

func TestRunSkipsExistingUnlessForce(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, 1, 2)
	resultsPath := filepath.Join(dir, "results.json")

	existing := graphs.NewResultStore(resultsPath)
	existing.Set(&graphs.PageResult{Page: 1, Graphs: []graphs.GraphDescription{{GraphID: 1}}})
	if err := existing.Save(); err != nil {
		t.Fatalf("failed to seed results: %v", err)
	}

	stub := &stubProvider{replies: map[string]string{
		"page_001.png": `[]`,
		"page_002.png": `[]`,
	}}

	counts, err := Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: resultsPath,
		Client:      stub,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if counts.Skipped != 1 || counts.Analyzed != 1 {
		t.Errorf("expected 1 skipped + 1 analyzed, got %+v", counts)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "page_002.png" {
		t.Errorf("only page 2 should reach the model, calls = %v", stub.calls)
	}

	// Force reprocesses everything.
	stub.calls = nil
	counts, err = Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: resultsPath,
		Client:      stub,
		Force:       true,
	})
	if err != nil {
		t.Fatalf("Run with force failed: %v", err)
	}
	if counts.Analyzed != 2 {
		t.Errorf("force should reprocess both pages, got %+v", counts)
	}
}

func TestRunExplicitListAndMissingImage(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, 1, 2, 3)
	resultsPath := filepath.Join(dir, "results.json")

	stub := &stubProvider{replies: map[string]string{
		"page_001.png": `[]`,
		"page_003.png": `[]`,
	}}

	counts, err := Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: resultsPath,
		List:        "1,3,9",
		Client:      stub,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if counts.Analyzed != 2 || counts.Skipped != 1 {
		t.Errorf("expected 2 analyzed + 1 skipped (missing page 9), got %+v", counts)
	}
}

func TestRunEmptyPagesDirIsSetupError(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: filepath.Join(dir, "results.json"),
		Client:      &stubProvider{},
	})
	if err == nil {
		t.Fatal("empty pages dir must abort before processing")
	}
}

func TestRunRewritesResultsAfterEachPage(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, 1, 2)
	resultsPath := filepath.Join(dir, "results.json")

	// The second call fails hard at transport level; page 1 must already be
	// on disk by then.
	stub := &stubProvider{
		replies: map[string]string{"page_001.png": `[]`},
		errs:    map[string]error{"page_002.png": fmt.Errorf("boom")},
	}

	if _, err := Run(context.Background(), Options{
		PagesDir:    dir,
		ResultsPath: resultsPath,
		Client:      stub,
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	store, err := graphs.LoadResultStore(resultsPath)
	if err != nil {
		t.Fatalf("failed to reload results: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("expected both pages persisted, got %d", store.Len())
	}
}
