package main

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/tmc/langchaingo/llms/ollama"
)

type Handler struct {
	llm *ollama.LLM
	pg  *Pg
}

func NewHandler(llm *ollama.LLM, pg *Pg) *Handler {
	return &Handler{
		llm: llm,
		pg:  pg,
	}
}

func (h *Handler) GenerateTextVector(ctx context.Context, text string) ([]float32, error) {
	embeds, err := h.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(embeds) == 0 {
		return nil, fmt.Errorf("empty embeddings")
	}

	return embeds[0], nil
}

// HandleProductChange refreshes a product's embedding after a change event
// arrives from the CDC pipeline.
func (h *Handler) HandleProductChange(ctx context.Context, event ChangeEvent) error {
	product, err := h.pg.GetProduct(ctx, event.ID)
	if err != nil {
		return err
	}

	vector, err := h.GenerateTextVector(ctx, product.EmbeddingText())
	if err != nil {
		return fmt.Errorf("generate product vector: %w", err)
	}

	if err := h.pg.UpdateProductVector(ctx, event.ID, pgvector.NewVector(vector)); err != nil {
		return fmt.Errorf("update product vector: %w", err)
	}

	return nil
}
