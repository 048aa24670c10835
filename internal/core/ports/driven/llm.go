package driven

import "context"

// LLMService turns retrieved segments into prose. Only the surrounding
// orchestration calls it; the verifier consumes the resulting string and
// never generates text itself.
//
// Implementations may include:
//   - OpenAI (GPT-4 family)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a completion for the given system and user
	// prompts, bounded by maxOutputTokens.
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxOutputTokens int) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
