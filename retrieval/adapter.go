package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hydropure/water-assistant/catalog"
	"github.com/hydropure/water-assistant/models"
)

// ErrNoMatch reports that neither filtering nor fallback retrieval found any
// product. Callers turn this into a polite "no matching products" reply; the
// turn completes normally.
var ErrNoMatch = errors.New("no matching products")

// Searcher is the opaque similarity collaborator: given a free-text query it
// returns up to k ranked documents.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]Document, error)
}

// Fallback is the retriever adapter invoked only when the layered filter
// yields nothing. Every candidate is re-validated against the catalog before
// being accepted, so the retriever can never surface a product that does not
// exist (anti-hallucination guard).
type Fallback struct {
	searcher Searcher
	catalog  *catalog.Store
	topK     int
	take     int
}

func NewFallback(searcher Searcher, store *catalog.Store, topK, take int) *Fallback {
	if topK < 1 {
		topK = 15
	}
	if take < 1 {
		take = 2
	}

	return &Fallback{
		searcher: searcher,
		catalog:  store,
		topK:     topK,
		take:     take,
	}
}

// Lookup asks the retriever for candidates and keeps the first few whose
// names literally occur in the catalog. Returns ErrNoMatch when nothing
// survives the guard.
func (f *Fallback) Lookup(ctx context.Context, query string) ([]models.Product, error) {
	docs, err := f.searcher.Search(ctx, query, f.topK)
	if err != nil {
		return nil, fmt.Errorf("fallback retrieval: %w", err)
	}

	var products []models.Product
	for _, doc := range docs {
		product, ok := f.catalog.Lookup(doc.Name)
		if !ok {
			slog.Warn("discarding retriever result not present in catalog", "name", doc.Name)
			continue
		}

		products = append(products, *product)
		if len(products) == f.take {
			break
		}
	}

	if len(products) == 0 {
		return nil, ErrNoMatch
	}

	return products, nil
}
