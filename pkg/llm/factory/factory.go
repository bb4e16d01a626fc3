package factory

import (
	"context"
	"fmt"
	"strings"

	"agrisense-be/pkg/llm"
	"agrisense-be/pkg/llm/gemini"
	"agrisense-be/pkg/llm/ollama"
	"agrisense-be/pkg/llm/openai"
)

type Config struct {
	Provider string // "openai" (default), "ollama", "gemini"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai", "groq":
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "gemini":
		return gemini.NewProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
