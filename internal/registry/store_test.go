package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/paperscout/paperscout/internal/catalog"
)

func testPapers() []catalog.Paper {
	return []catalog.Paper{
		{
			ID:        "2101.00001v1",
			Title:     "First Paper",
			URL:       "http://arxiv.org/abs/2101.00001v1",
			Authors:   []string{"Ada Lovelace", "Alan Turing"},
			Published: "2021-01-01",
		},
		{
			ID:    "2102.00002v1",
			Title: "Second Paper",
			URL:   "http://arxiv.org/abs/2102.00002v1",
		},
	}
}

func TestRecordBatchAndList(t *testing.T) {
	ctx := context.Background()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.RecordBatch(ctx, "test query", testPapers()); err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.SourceID] = e
	}
	first := byID["2101.00001v1"]
	if first.Title != "First Paper" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Authors != "Ada Lovelace, Alan Turing" {
		t.Errorf("authors = %q", first.Authors)
	}
	if first.Query != "test query" {
		t.Errorf("query = %q", first.Query)
	}
	if first.IngestedAt.IsZero() {
		t.Error("ingested_at not recorded")
	}
}

func TestRecordBatchUpsert(t *testing.T) {
	ctx := context.Background()
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	papers := testPapers()[:1]
	if err := s.RecordBatch(ctx, "first query", papers); err != nil {
		t.Fatal(err)
	}

	papers[0].Title = "First Paper (revised)"
	if err := s.RecordBatch(ctx, "second query", papers); err != nil {
		t.Fatal(err)
	}

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Errorf("Count = %d after re-recording same id, want 1", n)
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Title != "First Paper (revised)" {
		t.Errorf("title = %q, upsert did not refresh the row", entries[0].Title)
	}
	if entries[0].Query != "second query" {
		t.Errorf("query = %q, upsert did not refresh the row", entries[0].Query)
	}
}

func TestRecordBatchEmpty(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.RecordBatch(context.Background(), "q", nil); err != nil {
		t.Errorf("empty batch must be a no-op, got %v", err)
	}
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.RecordBatch(ctx, "q", testPapers()); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries with limit 1", len(entries))
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "papers.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.RecordBatch(context.Background(), "q", testPapers()); err != nil {
		t.Fatalf("RecordBatch on file-backed store: %v", err)
	}
	n, err := s.Count(context.Background())
	if err != nil || n != 2 {
		t.Errorf("Count = %d, err = %v", n, err)
	}
}
