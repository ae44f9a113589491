package config

// ModelPreset describes the default models for a provider.
type ModelPreset struct {
	Model          string
	EmbeddingModel string
}

// presets maps each provider to its default model choices.
var presets = map[ProviderType]ModelPreset{
	ProviderGroq:   {Model: "qwen/qwen3-32b", EmbeddingModel: "text-embedding-3-small"},
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama: {Model: "llama3", EmbeddingModel: "nomic-embed-text"},
}

// DefaultConfig returns a Config with sensible defaults: Groq for
// generation, OpenAI for embeddings, local data directory.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGroq,
		Model:             "qwen/qwen3-32b",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data",
		Collection:        "papers",
		CatalogBaseURL:    "http://export.arxiv.org/api/query",
		MaxResults:        50,
		TopK:              5,
		ServerPort:        8787,
	}
}

// GetPreset returns the default model choices for the given provider.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := presets[provider]; ok {
		return preset
	}
	return presets[ProviderGroq]
}
