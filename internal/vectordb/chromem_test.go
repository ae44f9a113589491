package vectordb

import (
	"context"
	"hash/fnv"
	"math"
	"testing"
)

// mockEmbedder produces deterministic, normalized vectors derived from
// the text's hash, so identical texts are identical vectors and near
// matches are reproducible across runs.
type mockEmbedder struct{}

func (mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = hashVector(text)
	}
	return out, nil
}

func (mockEmbedder) Dimensions() int { return 8 }
func (mockEmbedder) Name() string    { return "mock" }

func hashVector(text string) []float32 {
	v := make([]float32, 8)
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	var norm float64
	for i := range v {
		seed = seed*6364136223846793005 + 1442695040888963407
		v[i] = float32(int64(seed>>33)) / float32(math.MaxInt32)
		norm += float64(v[i]) * float64(v[i])
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

func testDocs() []Document {
	return []Document{
		{
			ID:      "p1#0",
			Content: "transformers for natural language processing",
			Metadata: map[string]any{
				MetaTitle:    "Attention Survey",
				MetaURL:      "http://arxiv.org/abs/1",
				MetaSourceID: "p1",
			},
		},
		{
			ID:      "p2#0",
			Content: "graph neural networks for molecules",
			Metadata: map[string]any{
				MetaTitle:    "GNN Molecules",
				MetaURL:      "http://arxiv.org/abs/2",
				MetaSourceID: "p2",
			},
		},
		{
			ID:      "p3#0",
			Content: "reinforcement learning for robotics",
			Metadata: map[string]any{
				MetaTitle:    "RL Robots",
				MetaURL:      "http://arxiv.org/abs/3",
				MetaSourceID: "p3",
			},
		},
	}
}

func newTestStore(t *testing.T, dir string) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(mockEmbedder{}, dir, "papers")
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	return store
}

func TestSearchSelfConsistency(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}
	if store.Count() != 3 {
		t.Fatalf("Count = %d, want 3", store.Count())
	}

	// Querying with a document's exact text must rank it first with
	// (near) perfect similarity.
	results, err := store.Search(ctx, "graph neural networks for molecules", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].SourceID != "p2" {
		t.Errorf("top result = %s, want p2", results[0].SourceID)
	}
	if results[0].Score < 0.999 {
		t.Errorf("self-match similarity = %f, want ~1", results[0].Score)
	}
	if results[0].Title != "GNN Molecules" {
		t.Errorf("title = %q", results[0].Title)
	}

	// Descending score order.
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: score[%d]=%f > score[%d]=%f",
				i, results[i].Score, i-1, results[i-1].Score)
		}
	}

	// k=2 over three documents returns exactly two, best first.
	top2, err := store.Search(ctx, "graph neural networks for molecules", 2)
	if err != nil {
		t.Fatalf("Search k=2: %v", err)
	}
	if len(top2) != 2 {
		t.Fatalf("got %d results for k=2, want 2", len(top2))
	}
	if top2[0].SourceID != "p2" {
		t.Errorf("top result = %s, want p2", top2[0].SourceID)
	}
}

func TestSearchClampsKToCollectionSize(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	if err := store.AddDocuments(ctx, testDocs()[:2]); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	results, err := store.Search(ctx, "anything", 10)
	if err != nil {
		t.Fatalf("Search with k > count: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	results, err := store.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search on empty index: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestAddDocumentsOverwritesSameID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	doc := testDocs()[0]
	if err := store.AddDocuments(ctx, []Document{doc}); err != nil {
		t.Fatal(err)
	}
	doc.Content = "updated abstract text"
	if err := store.AddDocuments(ctx, []Document{doc}); err != nil {
		t.Fatal(err)
	}

	if store.Count() != 1 {
		t.Errorf("Count = %d after re-adding same id, want 1", store.Count())
	}
}

func TestPersistAndReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := newTestStore(t, dir)
	if err := store.AddDocuments(ctx, testDocs()); err != nil {
		t.Fatal(err)
	}
	if err := store.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	reloaded := newTestStore(t, dir)
	if reloaded.Count() != 3 {
		t.Fatalf("reloaded Count = %d, want 3", reloaded.Count())
	}

	results, err := reloaded.Search(ctx, "reinforcement learning for robotics", 1)
	if err != nil {
		t.Fatalf("Search after reload: %v", err)
	}
	if len(results) != 1 || results[0].SourceID != "p3" {
		t.Errorf("reloaded search returned %v", results)
	}
}

func TestSearchTitleFallback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	err := store.AddDocuments(ctx, []Document{{
		ID:       "bare",
		Content:  "a document without metadata",
		Metadata: map[string]any{},
	}})
	if err != nil {
		t.Fatal(err)
	}

	results, err := store.Search(ctx, "a document without metadata", 1)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Title != "unknown" {
		t.Errorf("title = %q, want %q", results[0].Title, "unknown")
	}
}
