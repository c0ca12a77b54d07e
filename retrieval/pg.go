// Package retrieval wraps the semantic similarity collaborator used when the
// rule-based filter engine comes up empty.
package retrieval

import (
	"context"
	"fmt"
	"math"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hydropure/water-assistant/models"
)

// Document is one ranked result from the similarity retriever, mirroring the
// catalog row it was derived from.
type Document struct {
	Content    string
	Name       string
	Price      int
	Category   string
	ImageURL   string
	Similarity float64
}

// Embedder turns text into a query vector. *ollama.LLM satisfies this.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// PgSearcher runs cosine-similarity search over the pgvector-indexed
// products table.
type PgSearcher struct {
	db       *gorm.DB
	embedder Embedder
}

func NewPgSearcher(connStr string, embedder Embedder) (*PgSearcher, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PgSearcher{db: db, embedder: embedder}, nil
}

func normalizeVector(vec []float32) []float32 {
	var sum float32
	for _, v := range vec {
		sum += v * v
	}
	norm := float32(math.Sqrt(float64(sum)))
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= norm
	}

	return vec
}

func vectorToStr(vector []float32) string {
	normalizeVector(vector)

	str := "["
	for i, v := range vector {
		if i > 0 {
			str += ","
		}
		str += fmt.Sprintf("%f", v)
	}

	return str + "]"
}

// Search embeds the raw query text and returns the k most similar products
// as documents, most similar first.
func (s *PgSearcher) Search(ctx context.Context, query string, k int) ([]Document, error) {
	vectors, err := s.embedder.CreateEmbedding(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("generate query embedding: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty query embedding")
	}

	vectorStr := vectorToStr(vectors[0])

	var rows []struct {
		models.Product
		Similarity float64
	}
	err = s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("*, 1 - (embedding <=> ?) as similarity", vectorStr).
		Order("similarity DESC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query similar products: %w", err)
	}

	docs := make([]Document, 0, len(rows))
	for i := range rows {
		p := rows[i].Product
		docs = append(docs, Document{
			Content:    p.DetailedInfo(),
			Name:       p.Name,
			Price:      p.RegularPrice,
			Category:   p.Category,
			ImageURL:   p.FirstImage(),
			Similarity: rows[i].Similarity,
		})
	}

	return docs, nil
}
