// Package file provides the TOML configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// Config is the on-disk configuration, stored as TOML in the plainterms
// config directory.
type Config struct {
	// DataDir overrides where the bundle database lives.
	DataDir string `toml:"data_dir,omitempty"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Model      string `toml:"model,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	APIKey     string `toml:"api_key,omitempty"`
	Dimensions int    `toml:"dimensions,omitempty"`
}

// LLMConfig configures the text-generation provider.
type LLMConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

// ChunkingConfig configures the segmenter.
type ChunkingConfig struct {
	TargetTokens  int `toml:"target_tokens,omitempty"`
	OverlapTokens int `toml:"overlap_tokens,omitempty"`
}

// ConfigStore reads and writes the TOML configuration file.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a config store. If configDir is empty, defaults
// to ~/.plainterms/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".plainterms")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the configuration. A missing file is not an error; it yields
// an empty config so first runs work without setup.
func (s *ConfigStore) Load() (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	return &cfg, nil
}

// Save persists the configuration with restricted permissions; it can
// hold API keys.
func (s *ConfigStore) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// EmbeddingSettings converts the embedding section to domain settings,
// falling back to environment variables for the API key.
func (c *Config) EmbeddingSettings() *domain.EmbeddingSettings {
	apiKey := c.Embedding.APIKey
	if apiKey == "" && domain.AIProvider(c.Embedding.Provider) == domain.AIProviderOpenAI {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return &domain.EmbeddingSettings{
		Provider:   domain.AIProvider(c.Embedding.Provider),
		Model:      c.Embedding.Model,
		BaseURL:    c.Embedding.BaseURL,
		APIKey:     apiKey,
		Dimensions: c.Embedding.Dimensions,
	}
}

// LLMSettings converts the llm section to domain settings, falling back
// to environment variables for the API key.
func (c *Config) LLMSettings() *domain.LLMSettings {
	apiKey := c.LLM.APIKey
	if apiKey == "" {
		switch domain.AIProvider(c.LLM.Provider) {
		case domain.AIProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case domain.AIProviderAnthropic:
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	return &domain.LLMSettings{
		Provider: domain.AIProvider(c.LLM.Provider),
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		APIKey:   apiKey,
	}
}

// ChunkingSettings converts the chunking section to domain settings.
func (c *Config) ChunkingSettings() domain.ChunkingSettings {
	return domain.ChunkingSettings{
		TargetTokens:  c.Chunking.TargetTokens,
		OverlapTokens: c.Chunking.OverlapTokens,
	}
}
