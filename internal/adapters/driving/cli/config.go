package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plainterms/plainterms-cli/internal/adapters/driven/ai"
	"github.com/plainterms/plainterms-cli/internal/adapters/driven/config/file"
	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// configStore is wired by the composition root.
var configStore *file.ConfigStore

// SetConfigStore wires the configuration store into the config command.
func SetConfigStore(store *file.ConfigStore) {
	configStore = store
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and configure the embedding and LLM providers.

Without a subcommand, shows the current configuration. Embeddings power
retrieval; the LLM powers the ask command. Both are optional: without
them plainterms still segments, stores, and verifies documents.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	RunE:  runConfigEmbedding,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	RunE:  runConfigLLM,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEmbeddingCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

// Providers that can serve each role. Anthropic has no embeddings API.
var (
	embeddingProviders = []domain.AIProvider{domain.AIProviderOllama, domain.AIProviderOpenAI}
	llmProviders       = []domain.AIProvider{domain.AIProviderOllama, domain.AIProviderOpenAI, domain.AIProviderAnthropic}

	defaultEmbeddingModels = map[domain.AIProvider]string{
		domain.AIProviderOllama: "nomic-embed-text",
		domain.AIProviderOpenAI: "text-embedding-3-small",
	}
	defaultLLMModels = map[domain.AIProvider]string{
		domain.AIProviderOllama:    "llama3.2",
		domain.AIProviderOpenAI:    "gpt-4o-mini",
		domain.AIProviderAnthropic: "claude-sonnet-4-20250514",
	}
)

func requiresAPIKey(p domain.AIProvider) bool {
	return p != domain.AIProviderOllama
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	cmd.Println("[Embedding]")
	printProviderSection(cmd, cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.APIKey)
	cmd.Println()

	cmd.Println("[LLM]")
	printProviderSection(cmd, cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.APIKey)
	cmd.Println()

	cmd.Println("[Chunking]")
	if cfg.Chunking.TargetTokens > 0 {
		cmd.Printf("  Target tokens: %d\n", cfg.Chunking.TargetTokens)
	} else {
		cmd.Println("  Target tokens: (default)")
	}
	if cfg.Chunking.OverlapTokens > 0 {
		cmd.Printf("  Overlap tokens: %d\n", cfg.Chunking.OverlapTokens)
	} else {
		cmd.Println("  Overlap tokens: (default)")
	}

	return nil
}

func printProviderSection(cmd *cobra.Command, provider, model, baseURL, apiKey string) {
	if provider == "" {
		cmd.Println("  Provider: (not configured)")
		return
	}
	cmd.Printf("  Provider: %s\n", provider)
	if model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if requiresAPIKey(domain.AIProvider(provider)) {
		if apiKey != "" {
			cmd.Printf("  API key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Println("  API key: (not set, will fall back to environment)")
		}
	}
}

func runConfigEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select embedding provider")
	for i, p := range embeddingProviders {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(embeddingProviders), 1)
	provider := embeddingProviders[idx-1]

	defaultModel := defaultEmbeddingModels[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if requiresAPIKey(provider) {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("an API key is required for this provider")
		}
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Embedding = file.EmbeddingConfig{
		Provider: provider.String(),
		Model:    model,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateEmbeddingConfig(cfg.EmbeddingSettings()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration is not usable: %w", err)
	}
	cmd.Println("OK")

	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Embedding provider configured: %s (%s)\n", provider, model)
	return nil
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM provider")
	for i, p := range llmProviders {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(llmProviders), 1)
	provider := llmProviders[idx-1]

	defaultModel := defaultLLMModels[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if requiresAPIKey(provider) {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("an API key is required for this provider")
		}
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.LLM = file.LLMConfig{
		Provider: provider.String(),
		Model:    model,
		APIKey:   apiKey,
	}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateLLMConfig(cfg.LLMSettings()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration is not usable: %w", err)
	}
	cmd.Println("OK")

	if err := configStore.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("LLM provider configured: %s (%s)\n", provider, model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when stdin is a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
