package domain

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider

	// Model is the embedding model name. Empty uses the provider default.
	Model string

	// BaseURL overrides the provider's API base URL.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// Dimensions overrides the model's default vector size.
	Dimensions int
}

// IsConfigured returns true if the settings name a valid provider.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid()
}

// LLMSettings configures the text-generation provider.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider AIProvider

	// Model is the LLM model name. Empty uses the provider default.
	Model string

	// BaseURL overrides the provider's API base URL.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the settings name a valid provider.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid()
}

// ChunkingSettings configures the segmenter.
type ChunkingSettings struct {
	// TargetTokens is the per-segment token budget.
	TargetTokens int

	// OverlapTokens is the carry-over budget between adjacent segments.
	OverlapTokens int
}
