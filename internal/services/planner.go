package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KeshavMannem/Trip-Planner/internal/metrics"
	"github.com/KeshavMannem/Trip-Planner/internal/storage"
)

// ErrUnrecognizedQuery marks questions with no detectable location or route.
var ErrUnrecognizedQuery = errors.New("could not detect a location in the question")

type HotelScraper interface {
	ScrapeHotels(ctx context.Context, location string) ([]*storage.Listing, error)
}

type FlightScraper interface {
	ScrapeFlights(ctx context.Context, origin, destination string) ([]*storage.Listing, error)
}

// RetrievalResult is the ordered context handed to the summarizer. FromCache
// records provenance for logs and metrics only; downstream behavior never
// branches on it.
type RetrievalResult struct {
	Documents []string
	FromCache bool
}

// RetrievalPlanner decides, per query, whether cached documents are good
// enough or a live scrape must run, and writes scraped listings back into
// the store so the next identical query hits the cache.
type RetrievalPlanner struct {
	store   storage.Store
	hotels  HotelScraper
	flights FlightScraper
	topK    int
}

func NewRetrievalPlanner(store storage.Store, hotels HotelScraper, flights FlightScraper, topK int) *RetrievalPlanner {
	if topK < 1 {
		topK = 3
	}
	return &RetrievalPlanner{store: store, hotels: hotels, flights: flights, topK: topK}
}

// AnswerContext runs the probe-gate-scrape algorithm. Cached results are
// trusted only when at least one returned document literally contains the
// query's location or route, case-insensitive; embedding similarity alone
// can surface a different city that merely resembles the query in vector
// space. Cached hits are trusted indefinitely, there is no TTL.
func (p *RetrievalPlanner) AnswerContext(ctx context.Context, query Query) (*RetrievalResult, error) {
	var needle string
	switch query.Kind {
	case QueryHotel:
		needle = query.Location
	case QueryFlight:
		needle = query.RouteText()
	default:
		return nil, ErrUnrecognizedQuery
	}

	results, err := p.store.Search(ctx, query.RawText, p.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search listing store: %w", err)
	}

	if docs := matchingDocuments(results, needle); docs != nil {
		slog.Info("Answering from cached listings",
			slog.String("needle", needle),
			slog.Int("documents", len(docs)))
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return &RetrievalResult{Documents: docs, FromCache: true}, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	if len(results) > 0 {
		slog.Info("Cached listings do not mention the query location, scraping live",
			slog.String("needle", needle))
	} else {
		slog.Info("No cached listings, scraping live", slog.String("needle", needle))
	}

	listings := p.scrape(ctx, query)
	if len(listings) == 0 {
		return &RetrievalResult{}, nil
	}

	documents := make([]string, 0, len(listings))
	for i, listing := range listings {
		switch listing.Kind {
		case storage.KindFlight:
			listing.ID = storage.FlightID(query.Origin, query.Destination, i)
		default:
			listing.ID = storage.HotelID(query.Location, i)
		}

		if err := p.store.Upsert(ctx, listing); err != nil {
			return nil, fmt.Errorf("failed to store scraped listing %s: %w", listing.ID, err)
		}
		documents = append(documents, listing.DocumentText())
		metrics.ListingsStored.WithLabelValues(string(listing.Kind)).Inc()
	}

	return &RetrievalResult{Documents: documents, FromCache: false}, nil
}

// scrape degrades every failure to an empty slice; a broken travel site is
// "no data found", never a request error.
func (p *RetrievalPlanner) scrape(ctx context.Context, query Query) []*storage.Listing {
	start := time.Now()

	var (
		listings []*storage.Listing
		err      error
		kind     string
	)
	if query.Kind == QueryFlight {
		kind = string(storage.KindFlight)
		listings, err = p.flights.ScrapeFlights(ctx, query.Origin, query.Destination)
	} else {
		kind = string(storage.KindHotel)
		listings, err = p.hotels.ScrapeHotels(ctx, query.Location)
	}

	if err != nil {
		slog.Warn("Scrape failed", slog.String("kind", kind), slog.String("error", err.Error()))
		metrics.ScrapesTotal.WithLabelValues(kind, "error").Inc()
		return nil
	}

	metrics.ScrapesTotal.WithLabelValues(kind, "success").Inc()
	metrics.ScrapeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	slog.Info("Scrape completed",
		slog.String("kind", kind),
		slog.Int("listings", len(listings)),
		slog.Duration("duration", time.Since(start)))
	return listings
}

func matchingDocuments(results []storage.SearchResult, needle string) []string {
	if len(results) == 0 {
		return nil
	}

	needle = strings.ToLower(needle)
	found := false
	docs := make([]string, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Document)
		if strings.Contains(strings.ToLower(r.Document), needle) {
			found = true
		}
	}
	if !found {
		return nil
	}
	return docs
}
