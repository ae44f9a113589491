package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level paperscout configuration, corresponding to
// .paperscout.yml. Environment variables with the PAPERSCOUT_ prefix
// override file values.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Collection        string       `yaml:"collection" koanf:"collection"`
	CatalogBaseURL    string       `yaml:"catalog_base_url" koanf:"catalog_base_url"`
	MaxResults        int          `yaml:"max_results" koanf:"max_results"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	ServerPort        int          `yaml:"server_port" koanf:"server_port"`
	AllowAllOrigins   bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
