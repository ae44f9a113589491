package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewProvider(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "test-key")

	for _, name := range []string{"groq", "openai", "ollama"} {
		p, err := NewProvider(name, "")
		if err != nil {
			t.Errorf("NewProvider(%q): %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Name() = %q, want %q", p.Name(), name)
		}
	}

	if _, err := NewProvider("anthropic", ""); err == nil {
		t.Error("expected error for unsupported provider type")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	if _, err := NewProvider("groq", ""); err == nil {
		t.Error("expected error when GROQ_API_KEY is unset")
	}
}

func TestChatRequestDefaults(t *testing.T) {
	req := chatRequest(CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}, "fallback-model")

	if req.Model != "fallback-model" {
		t.Errorf("model = %q, want fallback", req.Model)
	}
	if req.MaxTokens != defaultMaxTokens {
		t.Errorf("max tokens = %d, want %d", req.MaxTokens, defaultMaxTokens)
	}
	if req.Temperature != 0 {
		t.Errorf("temperature = %f, want 0", req.Temperature)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestChatResponseDegradesWithoutChoices(t *testing.T) {
	resp := chatResponse(openai.ChatCompletionResponse{Model: "m"})
	// No choices: content is a best-effort rendering, never empty.
	if resp.Content == "" {
		t.Error("degraded content must not be empty")
	}
	if resp.FinishReason != "" {
		t.Errorf("finish reason = %q, want empty", resp.FinishReason)
	}
}

func TestGroqComplete(t *testing.T) {
	var gotPath string
	var gotReq openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: "qwen/qwen3-32b",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: "answer"},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 3},
		})
	}))
	defer srv.Close()

	p := NewGroqProvider("key", "", srv.URL)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "question"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/chat/completions") {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.Model != DefaultGroqModel {
		t.Errorf("request model = %q, want default %q", gotReq.Model, DefaultGroqModel)
	}
	if resp.Content != "answer" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.InputTokens != 10 || resp.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
}

func TestGroqCompleteBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGroqProvider("key", "", srv.URL)
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want wrapped ErrGeneration", err)
	}
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req ollamaChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Error("streaming must be disabled")
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message:         ollamaMessage{Role: "assistant", Content: "local answer"},
			Model:           req.Model,
			Done:            true,
			DoneReason:      "stop",
			PromptEvalCount: 7,
			EvalCount:       2,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "local answer" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("finish reason = %q", resp.FinishReason)
	}
}

func TestOllamaCompleteMalformedResponseDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if err != nil {
		t.Fatalf("malformed response must degrade, not error: %v", err)
	}
	if resp.Content != "not json at all" {
		t.Errorf("content = %q, want raw body", resp.Content)
	}
}

func TestOllamaCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("err = %v, want wrapped ErrGeneration", err)
	}
}
