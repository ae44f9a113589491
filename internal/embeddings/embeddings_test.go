package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestOpenAIEmbedderBatching(t *testing.T) {
	var batchSizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		batchSizes = append(batchSizes, len(req.Input))

		data := make([]openai.Embedding, len(req.Input))
		for i := range data {
			data[i] = openai.Embedding{Index: i, Embedding: []float32{0.1, 0.2}}
		}
		json.NewEncoder(w).Encode(openai.EmbeddingResponse{Data: data})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder("key", ModelTextEmbedding3Small, srv.URL)

	texts := make([]string, 150)
	for i := range texts {
		texts[i] = "text"
	}

	vecs, err := e.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 150 {
		t.Errorf("got %d vectors, want 150", len(vecs))
	}
	// 150 texts -> one full batch of 100, one of 50.
	if len(batchSizes) != 2 || batchSizes[0] != 100 || batchSizes[1] != 50 {
		t.Errorf("batch sizes = %v", batchSizes)
	}
}

func TestOpenAIEmbedderEmptyInput(t *testing.T) {
	e := NewOpenAIEmbedder("key", ModelTextEmbedding3Small, "")
	vecs, err := e.Embed(context.Background(), nil)
	if err != nil || vecs != nil {
		t.Errorf("empty input: vecs=%v err=%v", vecs, err)
	}
}

func TestOpenAIModelDimensions(t *testing.T) {
	if d := ModelTextEmbedding3Small.dimensions(); d != 1536 {
		t.Errorf("small dimensions = %d", d)
	}
	if d := ModelTextEmbedding3Large.dimensions(); d != 3072 {
		t.Errorf("large dimensions = %d", d)
	}
}

func TestOllamaEmbedder(t *testing.T) {
	var inputs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req ollamaEmbedRequest
		json.NewDecoder(r.Body).Decode(&req)
		inputs = append(inputs, req.Input)
		json.NewEncoder(w).Encode(ollamaEmbedResponse{
			Embeddings: [][]float32{{0.5, 0.5, 0.5}},
		})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder("nomic-embed-text", 3, srv.URL)
	vecs, err := e.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Errorf("got %d vectors", len(vecs))
	}
	if len(inputs) != 2 || inputs[0] != "one" || inputs[1] != "two" {
		t.Errorf("inputs = %v", inputs)
	}
	if e.Dimensions() != 3 {
		t.Errorf("dimensions = %d", e.Dimensions())
	}
}

func TestToChromemFunc(t *testing.T) {
	e := stubEmbedder{vec: []float32{1, 0}}
	fn := ToChromemFunc(e)

	vec, err := fn(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 2 || vec[0] != 1 {
		t.Errorf("vec = %v", vec)
	}
}

type stubEmbedder struct {
	vec []float32
}

func (s stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = s.vec
	}
	return out, nil
}

func (s stubEmbedder) Dimensions() int { return len(s.vec) }
func (s stubEmbedder) Name() string    { return "stub" }
