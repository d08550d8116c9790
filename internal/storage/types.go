package storage

import (
	"context"
	"fmt"
	"strings"
)

type Kind string

const (
	KindHotel  Kind = "hotel"
	KindFlight Kind = "flight"
)

// Listing is a normalized travel offering. Fields a scrape could not
// recover carry the literal "N/A" rather than being empty.
type Listing struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// Hotel fields
	Name          string `json:"name,omitempty"`
	Location      string `json:"location,omitempty"`
	PricePerNight string `json:"price_per_night,omitempty"`
	Rating        string `json:"rating,omitempty"`
	URL           string `json:"url,omitempty"`

	// Flight fields
	Airline  string `json:"airline,omitempty"`
	Route    string `json:"route,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Price    string `json:"price,omitempty"`
	Duration string `json:"duration,omitempty"`
	Layovers string `json:"layovers,omitempty"`
}

// DocumentText derives the single sentence that gets embedded, persisted,
// and shown to the LLM. The format is load-bearing: documents written at
// different times must stay comparable, so never change it without
// rewriting the index.
func (l *Listing) DocumentText() string {
	switch l.Kind {
	case KindFlight:
		return fmt.Sprintf("Flight by %s from %s on %s departing at %s priced at %s.",
			l.Airline, l.Route, l.Date, l.Time, l.Price)
	default:
		return fmt.Sprintf("Hotel %s in %s costs %s per night with rating %s.",
			l.Name, l.Location, l.PricePerNight, l.Rating)
	}
}

// HotelID builds the deterministic store key for the i-th hotel scraped for
// a location. Repeated scrapes of the same location overwrite in place.
func HotelID(location string, i int) string {
	return fmt.Sprintf("hotel_%s_%d", slugify(location), i)
}

// FlightID builds the deterministic store key for the i-th flight scraped
// for a route.
func FlightID(origin, destination string, i int) string {
	return fmt.Sprintf("flight_%s_%s_%d", slugify(origin), slugify(destination), i)
}

func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}

// SearchResult pairs a stored document sentence with its listing metadata.
// Similarity is only populated by stores that compute one.
type SearchResult struct {
	Document   string   `json:"document"`
	Listing    *Listing `json:"listing"`
	Similarity float64  `json:"similarity,omitempty"`
}

// Embedder turns text into a fixed-length vector, deterministic for the
// same text and model version.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Store is the persisted semantic index of travel listings. Upsert embeds
// the listing's document text itself, so a stored embedding can never drift
// from the retrievable sentence. Search on an empty store returns an empty
// slice, never an error.
type Store interface {
	Upsert(ctx context.Context, listing *Listing) error
	Search(ctx context.Context, queryText string, topK int) ([]SearchResult, error)
	All(ctx context.Context) ([]SearchResult, error)
	Close() error
}
