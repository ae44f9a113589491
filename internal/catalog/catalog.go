package catalog

import (
	"context"
	"errors"
)

// ErrFetch indicates the external paper catalog could not be reached or
// returned a malformed response.
var ErrFetch = errors.New("catalog fetch failed")

// Paper is a single record returned by a catalog search. It is immutable
// once ingested; the pipeline never mutates stored copies.
type Paper struct {
	ID        string // catalog-assigned identifier, may be empty
	Title     string
	Abstract  string
	URL       string
	Authors   []string
	Published string // ISO-8601 date, empty if the catalog omits it
}

// Catalog is the external paper-metadata source queried by topic.
// Implementations return results in the catalog's own relevance order.
type Catalog interface {
	Search(ctx context.Context, query string, maxResults int) ([]Paper, error)
}
