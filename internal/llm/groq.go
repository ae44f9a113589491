package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// DefaultGroqModel is the completion model used when none is configured.
	DefaultGroqModel = "qwen/qwen3-32b"
)

// GroqProvider implements Provider using the Groq API (OpenAI-compatible).
type GroqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider creates a new Groq provider. baseURL may be empty for
// the public Groq endpoint.
func NewGroqProvider(apiKey, model, baseURL string) *GroqProvider {
	if model == "" {
		model = DefaultGroqModel
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &GroqProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *GroqProvider) Name() string {
	return "groq"
}

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, chatRequest(req, p.model))
	if err != nil {
		return nil, fmt.Errorf("%w: groq: %v", ErrGeneration, err)
	}
	return chatResponse(resp), nil
}

// chatRequest maps a CompletionRequest onto the OpenAI-compatible wire
// request, shared by the Groq and OpenAI providers.
func chatRequest(req CompletionRequest, fallbackModel string) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = fallbackModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	var messages []openai.ChatCompletionMessage
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
		Stop:        req.Stop,
	}
}

// chatResponse maps an OpenAI-compatible response back. A response with
// no choices degrades to its string rendering rather than failing.
func chatResponse(resp openai.ChatCompletionResponse) *CompletionResponse {
	out := &CompletionResponse{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
	}

	if len(resp.Choices) == 0 {
		out.Content = fmt.Sprintf("%+v", resp)
		return out
	}

	out.Content = resp.Choices[0].Message.Content
	out.FinishReason = string(resp.Choices[0].FinishReason)
	return out
}
