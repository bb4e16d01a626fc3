package embedding

import (
	"context"
	"fmt"
	"strings"
)

// NewProvider picks the embedding backend by name ("ollama" or "gemini").
func NewProvider(ctx context.Context, provider, ollamaURL, ollamaModel, geminiKey string) (EmbeddingProvider, error) {
	switch strings.ToLower(provider) {
	case "", "ollama":
		return NewOllamaProvider(ollamaURL, ollamaModel), nil
	case "gemini":
		return NewGeminiProvider(ctx, geminiKey)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
