package booking

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/KeshavMannem/Trip-Planner/internal/scraper"
	"github.com/KeshavMannem/Trip-Planner/internal/storage"
)

// Scraper extracts hotel listings from Booking.com search result pages.
// One browser process per search, plus one short-lived browser per listing
// for the detail-page price lookup.
type Scraper struct {
	baseURL      string
	limit        int
	priceTimeout time.Duration
}

func New(baseURL string, limit int, priceTimeout time.Duration) *Scraper {
	return &Scraper{baseURL: strings.TrimRight(baseURL, "/"), limit: limit, priceTimeout: priceTimeout}
}

// Detail pages render the nightly price under one of several markups
// depending on experiment bucket; checked in priority order.
var priceSelectors = []string{
	"span[data-testid='price-and-discounted-price']",
	"span[data-testid='price']",
	"div[data-testid='price-and-discounted-price']",
	"div[data-testid='price']",
	"span[class*='bui-price-display__value']",
	"div[class*='bui-price-display__value']",
}

type hotelCard struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Score   string `json:"score"`
	Desc    string `json:"desc"`
	Href    string `json:"href"`
}

// ScrapeHotels fetches up to the configured number of hotel listings for a
// location. Navigation failures and empty pages both come back as an empty
// slice at the caller; the error is for logging only.
func (s *Scraper) ScrapeHotels(ctx context.Context, location string) ([]*storage.Listing, error) {
	return s.ScrapeHotelsWithDates(ctx, location, "", "")
}

// ScrapeHotelsWithDates additionally threads check-in/check-out dates into
// each listing's detail URL so prices reflect the requested stay.
func (s *Scraper) ScrapeHotelsWithDates(ctx context.Context, location, checkin, checkout string) ([]*storage.Listing, error) {
	searchURL := s.searchURL(location)

	browserCtx, cancel := scraper.NewBrowserContext(ctx)
	defer cancel()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, 90*time.Second)
	defer cancelTimeout()

	var cards []hotelCard
	err := chromedp.Run(runCtx,
		chromedp.Navigate(searchURL),
		chromedp.Sleep(5*time.Second),
		chromedp.Evaluate(cardExtractionJS, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("booking search failed for %q: %w", location, err)
	}

	slog.Info("Booking search page scraped",
		slog.String("location", location),
		slog.Int("cards", len(cards)))

	if len(cards) > s.limit {
		cards = cards[:s.limit]
	}

	listings := make([]*storage.Listing, 0, len(cards))
	for _, card := range cards {
		listing := &storage.Listing{
			Kind:   storage.KindHotel,
			Name:   scraper.OrNA(strings.TrimSpace(card.Name)),
			Rating: scraper.OrNA(formatRating(card.Score, card.Desc)),
		}

		listing.Location = strings.TrimSpace(card.Address)
		if listing.Location == "" {
			listing.Location = location
		}

		listing.URL = s.detailURL(card.Href, checkin, checkout)

		listing.PricePerNight = "N/A"
		if listing.URL != "" {
			listing.PricePerNight = s.lookupPrice(ctx, listing.URL)
		}

		listings = append(listings, listing)
	}

	return listings, nil
}

// lookupPrice loads a hotel detail page in its own browser and polls the
// prioritized selector list until one yields text or the bounded wait runs
// out. Absence is "N/A", never an error.
func (s *Scraper) lookupPrice(ctx context.Context, detailURL string) string {
	browserCtx, cancel := scraper.NewBrowserContext(ctx)
	defer cancel()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, s.priceTimeout)
	defer cancelTimeout()

	if err := chromedp.Run(runCtx, chromedp.Navigate(detailURL)); err != nil {
		slog.Warn("Price lookup navigation failed",
			slog.String("url", detailURL),
			slog.String("error", err.Error()))
		return "N/A"
	}

	for {
		var price string
		if err := chromedp.Run(runCtx, chromedp.Evaluate(priceExtractionJS, &price)); err != nil {
			return "N/A"
		}
		if price = strings.TrimSpace(price); price != "" {
			return price
		}

		select {
		case <-runCtx.Done():
			return "N/A"
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (s *Scraper) searchURL(location string) string {
	return fmt.Sprintf("%s/searchresults.html?ss=%s", s.baseURL, url.QueryEscape(location))
}

// detailURL absolutizes a card link, strips its tracking query, and
// appends the stay dates when known.
func (s *Scraper) detailURL(href, checkin, checkout string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	base := strings.SplitN(href, "?", 2)[0]
	if !strings.HasPrefix(base, "http") {
		base = s.baseURL + base
	}

	if checkin != "" && checkout != "" {
		return fmt.Sprintf("%s?checkin=%s&checkout=%s", base, url.QueryEscape(checkin), url.QueryEscape(checkout))
	}
	return base
}

func formatRating(score, desc string) string {
	parts := make([]string, 0, 2)
	if score = strings.TrimSpace(score); score != "" {
		parts = append(parts, score)
	}
	if desc = strings.TrimSpace(desc); desc != "" {
		parts = append(parts, desc)
	}
	return strings.Join(parts, " / ")
}

const cardExtractionJS = `
(function() {
	var cards = [];
	document.querySelectorAll("div[data-testid='property-card']").forEach(function(card) {
		var pick = function(selector) {
			var el = card.querySelector(selector);
			return el ? el.innerText.trim() : '';
		};

		var score = '', desc = '';
		var review = card.querySelector("div[data-testid='review-score']");
		if (review) {
			var divs = review.querySelectorAll('div');
			if (divs.length > 0) score = divs[0].innerText.trim();
			if (divs.length > 1) desc = divs[1].innerText.trim();
		}

		var link = card.querySelector("a[data-testid='title-link']");

		cards.push({
			name: pick("div[data-testid='title']"),
			address: pick("span[data-testid='address']"),
			score: score,
			desc: desc,
			href: link ? link.getAttribute('href') : ''
		});
	});
	return cards;
})()
`

var priceExtractionJS = fmt.Sprintf(`
(function() {
	var selectors = ["%s"];
	for (var i = 0; i < selectors.length; i++) {
		var el = document.querySelector(selectors[i]);
		if (el && el.innerText.trim()) {
			return el.innerText.trim();
		}
	}
	return '';
})()
`, strings.Join(priceSelectors, `","`))
