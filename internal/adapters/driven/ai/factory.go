// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/4ug-aug/Metabrain/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/4ug-aug/Metabrain/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/4ug-aug/Metabrain/internal/adapters/driven/llm/ollama"
	openaillm "github.com/4ug-aug/Metabrain/internal/adapters/driven/llm/openai"
	"github.com/4ug-aug/Metabrain/internal/core/domain"
	"github.com/4ug-aug/Metabrain/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings *domain.Settings) (driven.LLMService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.Endpoint,
			Model:   settings.LLMModel,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.LLMModel,
		})

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
func CreateEmbeddingService(settings *domain.Settings) (driven.EmbeddingService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.Endpoint,
			Model:   settings.EmbeddingModel,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.Endpoint,
			Model:   settings.EmbeddingModel,
		})

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CheckConnection creates both AI services from settings and validates that
// the provider is reachable. Intended for settings commands so bad
// credentials surface at configuration time rather than mid-sync.
func CheckConnection(ctx context.Context, settings *domain.Settings) error {
	llm, err := CreateLLMService(settings)
	if err != nil {
		return fmt.Errorf("create LLM service: %w", err)
	}
	defer llm.Close()

	embedder, err := CreateEmbeddingService(settings)
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}
	defer embedder.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := llm.Ping(pingCtx); err != nil {
		return fmt.Errorf("LLM service unreachable: %w", err)
	}
	if err := embedder.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding service unreachable: %w", err)
	}
	return nil
}
