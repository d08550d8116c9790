package kayak

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/KeshavMannem/Trip-Planner/internal/scraper"
	"github.com/KeshavMannem/Trip-Planner/internal/storage"
)

// Scraper extracts flight listings from Kayak route result pages. One
// browser process per search, torn down when the call returns.
type Scraper struct {
	baseURL string
	limit   int
	now     func() time.Time
}

func New(baseURL string, limit int) *Scraper {
	return &Scraper{baseURL: strings.TrimRight(baseURL, "/"), limit: limit, now: time.Now}
}

type flightCard struct {
	Airline  string `json:"airline"`
	Times    string `json:"times"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
	Layovers string `json:"layovers"`
}

// ScrapeFlights fetches up to the configured number of flights for a route.
// The search date is fixed at 30 days out; Kayak requires one and the
// question format carries none.
func (s *Scraper) ScrapeFlights(ctx context.Context, origin, destination string) ([]*storage.Listing, error) {
	date := s.now().AddDate(0, 0, 30).Format("2006-01-02")
	searchURL := s.searchURL(origin, destination, date)

	browserCtx, cancel := scraper.NewBrowserContext(ctx)
	defer cancel()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, 90*time.Second)
	defer cancelTimeout()

	var cards []flightCard
	err := chromedp.Run(runCtx,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(5*time.Second),
		chromedp.Evaluate(cardExtractionJS, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("kayak search failed for %s-%s: %w", origin, destination, err)
	}

	slog.Info("Kayak search page scraped",
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.Int("cards", len(cards)))

	if len(cards) > s.limit {
		cards = cards[:s.limit]
	}

	listings := make([]*storage.Listing, 0, len(cards))
	for _, card := range cards {
		listings = append(listings, &storage.Listing{
			Kind:     storage.KindFlight,
			Airline:  scraper.OrNA(strings.TrimSpace(card.Airline)),
			Route:    fmt.Sprintf("%s to %s", origin, destination),
			Date:     date,
			Time:     scraper.OrNA(strings.TrimSpace(card.Times)),
			Price:    scraper.OrNA(strings.TrimSpace(card.Price)),
			Duration: scraper.OrNA(strings.TrimSpace(card.Duration)),
			Layovers: scraper.OrNA(strings.TrimSpace(card.Layovers)),
		})
	}

	return listings, nil
}

func (s *Scraper) searchURL(origin, destination, date string) string {
	return fmt.Sprintf("%s/flights/%s-%s/%s",
		s.baseURL, pathSegment(origin), pathSegment(destination), date)
}

func pathSegment(location string) string {
	return strings.Join(strings.Fields(location), "-")
}

const cardExtractionJS = `
(function() {
	var cards = [];
	document.querySelectorAll('div.resultWrapper').forEach(function(card) {
		var pick = function() {
			for (var i = 0; i < arguments.length; i++) {
				var el = card.querySelector(arguments[i]);
				if (el && el.innerText.trim()) return el.innerText.trim();
			}
			return '';
		};

		cards.push({
			airline: pick('div.airlineName', 'span.codeshares-airline-names'),
			times: pick('div.section-times'),
			price: pick('span.price-text'),
			duration: pick('div.duration'),
			layovers: pick('div.stops-text')
		});
	});
	return cards;
})()
`
