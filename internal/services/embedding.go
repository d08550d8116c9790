package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/KeshavMannem/Trip-Planner/internal/metrics"
)

// EmbeddingService maps text to a fixed-length vector through the OpenAI
// embeddings API. Deterministic for the same text and model version.
type EmbeddingService struct {
	client *openai.Client
}

func NewEmbeddingService(apiKey string) *EmbeddingService {
	return &EmbeddingService{client: openai.NewClient(apiKey)}
}

func (e *EmbeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("input text cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.AdaEmbeddingV2,
	})
	if err != nil {
		metrics.EmbeddingGenerations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		metrics.EmbeddingGenerations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("no embedding data returned")
	}

	metrics.EmbeddingGenerations.WithLabelValues("success").Inc()
	metrics.EmbeddingGenerationDuration.Observe(time.Since(start).Seconds())

	return resp.Data[0].Embedding, nil
}
