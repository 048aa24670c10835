// Command plainterms is a CLI for asking questions about legal documents
// with citations verified against the source text.
package main

import (
	"fmt"
	"os"

	"github.com/plainterms/plainterms-cli/internal/adapters/driven/ai"
	"github.com/plainterms/plainterms-cli/internal/adapters/driven/config/file"
	"github.com/plainterms/plainterms-cli/internal/adapters/driven/storage/sqlite"
	"github.com/plainterms/plainterms-cli/internal/adapters/driving/cli"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening bundle database: %w", err)
	}
	defer store.Close()

	// AI providers are optional. A failed or missing provider degrades the
	// corresponding capability instead of blocking the whole CLI.
	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		embedder = nil
	}
	llm, err := ai.CreateAndValidateLLMService(cfg.LLMSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		llm = nil
	}

	ingestService := services.NewIngestService(store.BundleStore(), store.EmbeddingCache(), cfg.ChunkingSettings())
	retrievalService := services.NewRetrievalService(embedder, store.EmbeddingCache())
	verificationService := services.NewVerificationService()

	var askService driving.AskService
	if llm != nil {
		askService = services.NewAskService(store.BundleStore(), llm, retrievalService, verificationService)
	}

	cli.SetVersion(version)
	cli.SetConfigStore(configStore)
	cli.SetServices(cli.Services{
		Bundle:       ingestService,
		Retrieval:    retrievalService,
		Verification: verificationService,
		Ask:          askService,
	})

	return cli.Execute()
}
