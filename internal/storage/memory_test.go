package storage

import (
	"context"
	"strings"
	"testing"
)

// wordEmbedder produces a deterministic bag-of-words vector over a fixed
// vocabulary, enough for nearest-neighbor assertions without a real model.
type wordEmbedder struct {
	vocabulary []string
}

func newWordEmbedder() *wordEmbedder {
	return &wordEmbedder{vocabulary: []string{
		"hotel", "flight", "paris", "lisbon", "miami", "boston", "rating", "costs",
	}}
}

func (e *wordEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	text = strings.ToLower(text)
	vector := make([]float32, len(e.vocabulary))
	for i, word := range e.vocabulary {
		vector[i] = float32(strings.Count(text, word))
	}
	return vector, nil
}

func TestMemoryStoreSearchEmpty(t *testing.T) {
	store := NewMemoryStore(newWordEmbedder())

	for _, topK := range []int{1, 3, 10} {
		results, err := store.Search(context.Background(), "hotels in Paris", topK)
		if err != nil {
			t.Fatalf("Search() on empty store returned error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Search() on empty store returned %d results, want 0", len(results))
		}
	}
}

func TestMemoryStoreSelfRetrievability(t *testing.T) {
	store := NewMemoryStore(newWordEmbedder())
	ctx := context.Background()

	listings := []*Listing{
		{ID: HotelID("Paris", 0), Kind: KindHotel, Name: "Hotel Lux", Location: "Paris", PricePerNight: "$120", Rating: "8.4"},
		{ID: HotelID("Lisbon", 0), Kind: KindHotel, Name: "Tagus View", Location: "Lisbon", PricePerNight: "$90", Rating: "9.1"},
		{ID: FlightID("Boston", "Miami", 0), Kind: KindFlight, Airline: "Delta", Route: "Boston to Miami", Date: "2026-09-30", Time: "8:05 am", Price: "$214"},
	}
	for _, l := range listings {
		if err := store.Upsert(ctx, l); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	for _, l := range listings {
		results, err := store.Search(ctx, l.DocumentText(), 1)
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Search() returned %d results, want 1", len(results))
		}
		if results[0].Document != l.DocumentText() {
			t.Errorf("nearest document = %q, want %q", results[0].Document, l.DocumentText())
		}
		if results[0].Listing.ID != l.ID {
			t.Errorf("nearest listing id = %q, want %q", results[0].Listing.ID, l.ID)
		}
	}
}

func TestMemoryStoreUpsertOverwrites(t *testing.T) {
	store := NewMemoryStore(newWordEmbedder())
	ctx := context.Background()

	original := &Listing{ID: HotelID("Paris", 0), Kind: KindHotel, Name: "Hotel Lux", Location: "Paris", PricePerNight: "$120", Rating: "8.4"}
	updated := &Listing{ID: HotelID("Paris", 0), Kind: KindHotel, Name: "Hotel Lux", Location: "Paris", PricePerNight: "$135", Rating: "8.4"}

	if err := store.Upsert(ctx, original); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := store.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("All() returned %d records after overwrite, want 1", len(all))
	}
	if all[0].Document != updated.DocumentText() {
		t.Errorf("document = %q, want %q", all[0].Document, updated.DocumentText())
	}
}

func TestMemoryStoreTopKBounds(t *testing.T) {
	store := NewMemoryStore(newWordEmbedder())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l := &Listing{ID: HotelID("Paris", i), Kind: KindHotel, Name: "Hotel", Location: "Paris", PricePerNight: "$100", Rating: "8.0"}
		if err := store.Upsert(ctx, l); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	results, err := store.Search(ctx, "hotels in Paris", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Search(topK=3) returned %d results", len(results))
	}

	// topK below 1 is clamped rather than rejected.
	results, err = store.Search(ctx, "hotels in Paris", 0)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search(topK=0) returned %d results, want 1", len(results))
	}
}
