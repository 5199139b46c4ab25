// Package vision sends page images to a vision-capable LLM and returns the
// raw text completion. Parsing the reply is the caller's concern.
package vision

import (
	"context"
	"fmt"
	"os"
)

// Config represents one page description request.
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	ImagePath   string
}

// Provider defines the interface for a vision LLM provider.
type Provider interface {
	DescribePage(ctx context.Context, config Config) (string, error)
}

// NewProvider resolves a provider by name and validates its credentials up
// front, so a missing token aborts the batch before any page is processed.
func NewProvider(name string) (Provider, error) {
	switch name {
	case "openai":
		if apiToken() == "" {
			return nil, fmt.Errorf("set NMR_API_TOKEN or OPENAI_API_KEY in the environment")
		}
		return NewOpenAI(), nil
	case "ollama":
		return NewOllama(), nil
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil, fmt.Errorf("set GEMINI_API_KEY in the environment")
		}
		return NewGemini(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the provider's default model, overridable via env.
// gpt-4o reads axis tick numbers noticeably better than the mini models,
// which tend to return null for visible_min/max.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-pro"
	default:
		return ""
	}
}

func apiToken() string {
	if token := os.Getenv("NMR_API_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("OPENAI_API_KEY")
}
