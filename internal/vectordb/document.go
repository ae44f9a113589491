package vectordb

import "errors"

// ErrIndexUnavailable indicates the persisted index could not be opened
// or restored (corrupt export, missing embedding backend, bad directory).
var ErrIndexUnavailable = errors.New("vector index unavailable")

// Metadata keys stored alongside each indexed chunk.
const (
	MetaTitle     = "title"
	MetaURL       = "url"
	MetaAuthors   = "authors"
	MetaPublished = "published"
	MetaSourceID  = "source_id"
)

// Document is the unit handed to the store for indexing: one abstract
// (or a chunk of it) plus paper metadata. Metadata values may be of any
// type; they are flattened to scalars before storage.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// Result is one ranked hit from a similarity search. Produced fresh per
// search call and never persisted.
type Result struct {
	Title    string
	URL      string
	Abstract string
	// Score is chromem's cosine similarity: higher means closer.
	Score    float32
	SourceID string
}
