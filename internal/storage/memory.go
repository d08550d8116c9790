package storage

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is a brute-force cosine-similarity store. It backs tests and
// single-process runs that have no Postgres; it satisfies the same Store
// contract as PostgresStore but does not survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	embedder Embedder
	ids      []string
	records  map[string]memoryRecord
}

type memoryRecord struct {
	document string
	listing  Listing
	vector   []float32
}

func NewMemoryStore(embedder Embedder) *MemoryStore {
	return &MemoryStore{
		embedder: embedder,
		records:  make(map[string]memoryRecord),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, listing *Listing) error {
	document := listing.DocumentText()

	vector, err := s.embedder.GenerateEmbedding(ctx, document)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[listing.ID]; !exists {
		s.ids = append(s.ids, listing.ID)
	}
	s.records[listing.ID] = memoryRecord{document: document, listing: *listing, vector: vector}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, queryText string, topK int) ([]SearchResult, error) {
	if topK < 1 {
		topK = 1
	}

	queryVector, err := s.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.ids))
	for _, id := range s.ids {
		rec := s.records[id]
		listing := rec.listing
		results = append(results, SearchResult{
			Document:   rec.document,
			Listing:    &listing,
			Similarity: cosineSimilarity(queryVector, rec.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *MemoryStore) All(ctx context.Context) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.ids))
	for _, id := range s.ids {
		rec := s.records[id]
		listing := rec.listing
		results = append(results, SearchResult{Document: rec.document, Listing: &listing})
	}
	return results, nil
}

func (s *MemoryStore) Close() error { return nil }

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
