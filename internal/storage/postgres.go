package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresStore persists listings in a pgvector-backed table. Concurrent
// upserts with the same id are last-write-wins; reads are plain SQL and
// safe to run concurrently.
type PostgresStore struct {
	db       *sql.DB
	embedder Embedder
}

func NewPostgresStore(databaseURL string, embedder Embedder) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &PostgresStore{db: db, embedder: embedder}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	if _, err := s.db.Exec("CREATE EXTENSION IF NOT EXISTS vector;"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS travel_listings (
			id VARCHAR(255) PRIMARY KEY,
			kind VARCHAR(20) NOT NULL,
			document TEXT NOT NULL,
			metadata JSONB NOT NULL,
			embedding vector(1536),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create travel_listings table: %w", err)
	}

	if _, err := s.db.Exec("CREATE INDEX IF NOT EXISTS idx_travel_listings_kind ON travel_listings(kind);"); err != nil {
		return fmt.Errorf("failed to create kind index: %w", err)
	}

	// May fail while the table is empty; ivfflat needs rows to train on.
	vectorIndexSQL := "CREATE INDEX IF NOT EXISTS idx_travel_listings_embedding ON travel_listings USING ivfflat (embedding vector_cosine_ops);"
	_, _ = s.db.Exec(vectorIndexSQL)

	return nil
}

// Upsert embeds the listing's document text and writes document, metadata
// and embedding keyed by listing.ID, overwriting any previous row.
func (s *PostgresStore) Upsert(ctx context.Context, listing *Listing) error {
	document := listing.DocumentText()

	embedding, err := s.embedder.GenerateEmbedding(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	metadata, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing metadata: %w", err)
	}

	query := `
		INSERT INTO travel_listings (id, kind, document, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			kind = EXCLUDED.kind,
			document = EXCLUDED.document,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query,
		listing.ID, string(listing.Kind), document, metadata, pgvector.NewVector(embedding)); err != nil {
		return fmt.Errorf("failed to upsert listing: %w", err)
	}

	return nil
}

// Search embeds queryText and returns the topK nearest documents by cosine
// distance, nearest first. An empty table yields an empty slice.
func (s *PostgresStore) Search(ctx context.Context, queryText string, topK int) ([]SearchResult, error) {
	if topK < 1 {
		topK = 1
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	query := `
		SELECT document, metadata, 1 - (embedding <=> $1) AS similarity
		FROM travel_listings
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			document   string
			metadata   []byte
			similarity float64
		)
		if err := rows.Scan(&document, &metadata, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}

		listing := &Listing{}
		if err := json.Unmarshal(metadata, listing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing metadata: %w", err)
		}

		results = append(results, SearchResult{
			Document:   document,
			Listing:    listing,
			Similarity: similarity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}

	return results, nil
}

// All returns every stored document with its metadata, oldest first.
func (s *PostgresStore) All(ctx context.Context) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT document, metadata FROM travel_listings ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			document string
			metadata []byte
		)
		if err := rows.Scan(&document, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}

		listing := &Listing{}
		if err := json.Unmarshal(metadata, listing); err != nil {
			return nil, fmt.Errorf("failed to unmarshal listing metadata: %w", err)
		}

		results = append(results, SearchResult{Document: document, Listing: listing})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}

	return results, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
