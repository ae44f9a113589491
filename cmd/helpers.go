package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/paperscout/paperscout/internal/agent"
	"github.com/paperscout/paperscout/internal/catalog"
	"github.com/paperscout/paperscout/internal/config"
	"github.com/paperscout/paperscout/internal/embeddings"
	"github.com/paperscout/paperscout/internal/llm"
	"github.com/paperscout/paperscout/internal/registry"
	"github.com/paperscout/paperscout/internal/vectordb"
)

// loadConfig loads and validates the config, providing a friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `paperscout init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Warnings and errors only, unless
// --verbose is set.
func newLogger() *zap.Logger {
	c := zap.NewDevelopmentConfig()
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	l, err := c.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = config.ProviderOpenAI
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(provider).EmbeddingModel
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, os.Getenv("OLLAMA_HOST")), nil
	default:
		// Groq serves no embeddings; everything else goes through the
		// OpenAI-compatible embeddings API.
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for %s embeddings", model)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model), os.Getenv("OPENAI_API_BASE")), nil
	}
}

// openStore opens the persistent vector store under the data directory.
func openStore(cfg *config.Config) (*vectordb.ChromemStore, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder, filepath.Join(cfg.DataDir, "index"), cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	return store, nil
}

// openRegistry opens the SQLite paper registry under the data directory.
func openRegistry(cfg *config.Config) (*registry.Store, error) {
	return registry.Open(filepath.Join(cfg.DataDir, "papers.db"))
}

// newCatalog creates the arXiv catalog client.
func newCatalog(cfg *config.Config) catalog.Catalog {
	return catalog.NewArxivClient(cfg.CatalogBaseURL)
}

// newAgent assembles the retrieval+generation agent from config.
func newAgent(cfg *config.Config, store vectordb.PaperStore, logger *zap.Logger) (*agent.Agent, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return agent.New(store, provider, cfg.Model, logger), nil
}
