// Package analyze drives the per-page vision analysis batch: select pages,
// call the model, parse the reply, and persist results incrementally.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/winston-dve-knopki/analyzis-expertize/internal/graphs"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/vision"
)

// Options configures one analysis batch.
type Options struct {
	PagesDir    string
	ResultsPath string
	List        string // explicit page list, e.g. "1,2,5"
	Sample      int    // keep every Nth page when no explicit list
	Delay       time.Duration
	Force       bool
	Provider    string
	Model       string

	// Client overrides the provider lookup; used by tests.
	Client vision.Provider
}

// Counts summarizes a finished batch for the caller to print.
type Counts struct {
	Selected      int
	Analyzed      int
	Skipped       int
	ParseFailures int
	Errors        int
}

// Run processes the selected pages sequentially. Setup problems (no pages,
// bad credentials, unreadable results file) abort before the first model
// call; everything after that is recorded per page and never stops the batch.
func Run(ctx context.Context, opts Options) (*Counts, error) {
	selected, err := pages.Select(opts.PagesDir, opts.List, opts.Sample)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client, err = vision.NewProvider(opts.Provider)
		if err != nil {
			return nil, err
		}
	}

	model := opts.Model
	if model == "" {
		model = vision.DefaultModel(opts.Provider)
	}

	store, err := graphs.LoadResultStore(opts.ResultsPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Starting analysis", "pages", len(selected), "provider", opts.Provider, "model", model, "resume", store.Len())

	counts := &Counts{Selected: len(selected)}
	for i, page := range selected {
		if _, ok := store.Get(page); ok && !opts.Force {
			slog.Info("Skipping page, already analyzed", "page", page)
			counts.Skipped++
			continue
		}

		imagePath := filepath.Join(opts.PagesDir, pages.FileName(page))
		if _, err := os.Stat(imagePath); err != nil {
			slog.Warn("Page image not found, skipping", "page", page, "path", imagePath)
			counts.Skipped++
			continue
		}

		slog.Info("Analyzing page", "page", page, "progress", fmt.Sprintf("%d/%d", i+1, len(selected)))

		result := describePage(ctx, client, page, imagePath, model)
		store.Set(result)
		if err := store.Save(); err != nil {
			// Losing the output file is not a per-page condition.
			return counts, err
		}

		counts.Analyzed++
		switch {
		case result.Error != "":
			counts.Errors++
		case result.ParseFailed:
			counts.ParseFailures++
		}

		if i < len(selected)-1 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return counts, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	slog.Info("Analysis finished",
		"analyzed", counts.Analyzed,
		"skipped", counts.Skipped,
		"parse_failures", counts.ParseFailures,
		"errors", counts.Errors)
	return counts, nil
}

func describePage(ctx context.Context, client vision.Provider, page int, imagePath, model string) *graphs.PageResult {
	result := &graphs.PageResult{Page: page, Model: model}

	content, err := client.DescribePage(ctx, vision.Config{
		Model: model,
		// Zero temperature: we want the numbers off the axes, not creativity.
		Temperature: 0,
		Prompt:      vision.DescribePrompt,
		ImagePath:   imagePath,
	})
	if err != nil {
		slog.Warn("Model call failed", "page", page, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Content = content
	descriptions, err := graphs.ParseGraphArray(content)
	if err != nil {
		slog.Warn("Failed to parse model reply", "page", page, "error", err)
		result.ParseFailed = true
		return result
	}

	result.Graphs = descriptions
	slog.Info("Described page", "page", page, "graphs", len(descriptions))
	return result
}
