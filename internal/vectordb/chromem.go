package vectordb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/paperscout/paperscout/internal/embeddings"
)

const exportFile = "chromem.gob.gz"

// ChromemStore implements PaperStore using chromem-go with gob export
// persistence under a data directory.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	dir        string
	name       string
}

// NewChromemStore opens (or creates) a store persisted under dir, using
// the given collection name. A previously exported index is restored if
// present; a corrupt export fails with ErrIndexUnavailable.
func NewChromemStore(embedder embeddings.Embedder, dir, collection string) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	s := &ChromemStore{
		db:        db,
		embedFunc: ef,
		dir:       dir,
		name:      collection,
	}

	path := filepath.Join(dir, exportFile)
	if _, err := os.Stat(path); err == nil {
		if err := db.ImportFromFile(path, ""); err != nil {
			return nil, fmt.Errorf("%w: import %s: %v", ErrIndexUnavailable, path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIndexUnavailable, path, err)
	}

	col := db.GetCollection(collection, ef)
	if col == nil {
		var err error
		col, err = db.GetOrCreateCollection(collection, nil, ef)
		if err != nil {
			return nil, fmt.Errorf("%w: create collection %q: %v", ErrIndexUnavailable, collection, err)
		}
	}
	s.collection = col

	return s, nil
}

// AddDocuments embeds each document's content and stores it with
// flattened metadata. chromem keys documents by ID, so re-ingesting the
// same source id overwrites the existing entry rather than appending a
// duplicate.
func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	cdocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		cdocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: FlattenMetadata(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, cdocs, 1)
}

// Search returns up to k results ranked by descending cosine similarity.
// Fewer than k results are returned if the index holds fewer entries.
func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	hits, err := s.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		meta := h.Metadata
		title := meta[MetaTitle]
		if title == "" {
			title = "unknown"
		}
		results[i] = Result{
			Title:    title,
			URL:      meta[MetaURL],
			Abstract: h.Content,
			Score:    h.Similarity,
			SourceID: meta[MetaSourceID],
		}
	}

	return results, nil
}

// Persist exports the index to <dir>/chromem.gob.gz. A failure mid-batch
// before Persist leaves only the in-memory state partial; the export is
// written whole.
func (s *ChromemStore) Persist(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	return s.db.ExportToFile(filepath.Join(s.dir, exportFile), true, "")
}

// Count returns the number of indexed chunks.
func (s *ChromemStore) Count() int {
	return s.collection.Count()
}
