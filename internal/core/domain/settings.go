package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// Default settings values.
const (
	DefaultEndpoint       = "http://localhost:11434"
	DefaultLLMModel       = "llama3.2"
	DefaultEmbeddingModel = "nomic-embed-text"
)

// Settings holds the runtime configuration persisted in the settings table.
// Engines snapshot settings at the start of an operation, so a mutation only
// affects operations started after it.
type Settings struct {
	// VaultPath is the root directory of the local markdown vault.
	VaultPath string

	// Provider selects the AI backend variant ("ollama" or "openai").
	Provider AIProvider

	// Endpoint is the AI provider base URL.
	Endpoint string

	// LLMModel is the generation model name.
	LLMModel string

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// APIKey authenticates against cloud providers. Empty for local ones.
	APIKey string

	// OutlineBaseURL is the Outline wiki API base URL (optional).
	OutlineBaseURL string

	// OutlineAPIKey authenticates against the Outline API (optional).
	OutlineAPIKey string
}

// DefaultSettings returns settings with sensible local defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Provider:       AIProviderOllama,
		Endpoint:       DefaultEndpoint,
		LLMModel:       DefaultLLMModel,
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// Validate checks that the settings name a usable provider configuration.
func (s *Settings) Validate() error {
	if !s.Provider.IsValid() {
		return ErrUnsupportedProvider
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
