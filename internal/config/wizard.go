package config

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to paperscout! Let's configure your research agent.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Generation provider.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"groq", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	preset := GetPreset(cfg.Provider)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:     "Completion model",
		Default:   preset.Model,
		AllowEdit: true,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model prompt: %w", err)
	}
	cfg.Model = model

	// 3. Embedding provider. Groq serves no embeddings; those go to
	// OpenAI or a local Ollama.
	embedPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "ollama"},
	}
	_, embedStr, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider selection: %w", err)
	}
	cfg.EmbeddingProvider = ProviderType(embedStr)
	cfg.EmbeddingModel = GetPreset(cfg.EmbeddingProvider).EmbeddingModel

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (vector index and paper registry)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("Remember to set %s before running commands that generate text.\n", envVar)
	}

	return cfg, nil
}
