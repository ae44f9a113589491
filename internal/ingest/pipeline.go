// Package ingest pulls papers from an external catalog, normalizes them,
// and hands them to the vector store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperscout/paperscout/internal/catalog"
	"github.com/paperscout/paperscout/internal/progress"
	"github.com/paperscout/paperscout/internal/prompt"
	"github.com/paperscout/paperscout/internal/registry"
	"github.com/paperscout/paperscout/internal/vectordb"
)

// ErrIngestion indicates the ingestion pipeline failed before any
// document was indexed, typically because the catalog fetch failed.
// A query with zero matches is NOT an error: it returns (0, nil).
var ErrIngestion = errors.New("ingestion failed")

// DefaultMaxResults is the catalog fetch size when none is given.
const DefaultMaxResults = 50

// Abstracts longer than chunkSize words are split before indexing.
const (
	chunkSize    = 800
	chunkOverlap = 100
)

// Pipeline wires the catalog, vector store, and paper registry together.
// All dependencies are injected; registry and reporter may be nil.
type Pipeline struct {
	catalog  catalog.Catalog
	store    vectordb.PaperStore
	registry *registry.Store
	reporter progress.Reporter
	logger   *zap.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(cat catalog.Catalog, store vectordb.PaperStore, reg *registry.Store, reporter progress.Reporter, logger *zap.Logger) *Pipeline {
	if reporter == nil {
		reporter = progress.Silent{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		catalog:  cat,
		store:    store,
		registry: reg,
		reporter: reporter,
		logger:   logger,
	}
}

// IngestQuery fetches up to n papers matching query (in the catalog's
// relevance order), indexes their abstracts, and returns the number of
// papers processed. The whole batch is treated as all-or-nothing from
// the caller's perspective; the index is persisted after the batch.
func (p *Pipeline) IngestQuery(ctx context.Context, query string, n int) (int, error) {
	if n <= 0 {
		n = DefaultMaxResults
	}

	papers, err := p.catalog.Search(ctx, query, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIngestion, err)
	}
	if len(papers) == 0 {
		p.logger.Info("no catalog matches", zap.String("query", query))
		return 0, nil
	}

	p.reporter.Start(len(papers))
	var docs []vectordb.Document
	for i := range papers {
		normalizePaper(&papers[i])
		docs = append(docs, paperDocuments(papers[i])...)
		p.reporter.Update(i+1, prompt.TruncateDisplay(papers[i].Title, 60))
	}

	if err := p.store.AddDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("indexing papers: %w", err)
	}
	if err := p.store.Persist(ctx); err != nil {
		return 0, fmt.Errorf("persisting index: %w", err)
	}
	p.reporter.Finish()

	if p.registry != nil {
		if err := p.registry.RecordBatch(ctx, query, papers); err != nil {
			// The index is already durable; a registry miss only affects listings.
			p.logger.Warn("recording ingested papers", zap.Error(err))
		}
	}

	p.logger.Info("ingested papers",
		zap.String("query", query),
		zap.Int("papers", len(papers)),
		zap.Int("chunks", len(docs)))

	return len(papers), nil
}

// normalizePaper assigns a fallback id when the catalog omitted one and
// flattens the abstract to a single trimmed line.
func normalizePaper(p *catalog.Paper) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Abstract = strings.TrimSpace(strings.ReplaceAll(p.Abstract, "\n", " "))
}

// paperDocuments converts one paper into indexable documents. Long
// abstracts are split into overlapping word chunks; each chunk carries
// the full paper metadata.
func paperDocuments(p catalog.Paper) []vectordb.Document {
	if p.Abstract == "" {
		// Nothing to embed; the paper still counts as processed.
		return nil
	}

	meta := map[string]any{
		vectordb.MetaTitle:    p.Title,
		vectordb.MetaURL:      p.URL,
		vectordb.MetaAuthors:  p.Authors,
		vectordb.MetaSourceID: p.ID,
	}
	if p.Published != "" {
		meta[vectordb.MetaPublished] = p.Published
	}

	chunks := prompt.ChunkWords(p.Abstract, chunkSize, chunkOverlap)
	if len(chunks) <= 1 {
		return []vectordb.Document{{ID: p.ID, Content: p.Abstract, Metadata: meta}}
	}

	docs := make([]vectordb.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = vectordb.Document{
			ID:       fmt.Sprintf("%s#%d", p.ID, i),
			Content:  chunk,
			Metadata: meta,
		}
	}
	return docs
}
