package llm

import (
	"fmt"
	"os"
)

// NewProvider creates an LLM provider for the given provider type and
// model. Supported types: "groq", "openai", "ollama". API keys and base
// URL overrides come from the conventional environment variables.
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "groq":
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
		}
		return NewGroqProvider(apiKey, model, os.Getenv("GROQ_API_BASE")), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
