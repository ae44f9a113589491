package vectordb

import "context"

// PaperStore is the persistent, similarity-queryable store of paper
// abstracts. It exclusively owns index state.
type PaperStore interface {
	// AddDocuments embeds and stores a batch of documents.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search returns up to k results ranked best-first.
	Search(ctx context.Context, query string, k int) ([]Result, error)

	// Persist writes the index to durable storage.
	Persist(ctx context.Context) error

	// Count returns the number of indexed chunks.
	Count() int
}
