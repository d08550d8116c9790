package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KeshavMannem/Trip-Planner/internal/storage"
	"github.com/KeshavMannem/Trip-Planner/internal/trips"
)

// DatedHotelScraper scrapes hotels with stay dates threaded into detail URLs.
type DatedHotelScraper interface {
	ScrapeHotelsWithDates(ctx context.Context, location, checkin, checkout string) ([]*storage.Listing, error)
}

// TripHandler serves trip submission, the trip form's hotel preview, and
// the per-user trip summary.
type TripHandler struct {
	service *trips.Service
	hotels  DatedHotelScraper
}

type tripResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Response string `json:"response,omitempty"`
}

func NewTripHandler(service *trips.Service, hotels DatedHotelScraper) *TripHandler {
	return &TripHandler{service: service, hotels: hotels}
}

// HandleSubmit persists a trip request to the relational store.
func (h *TripHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var trip trips.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.service.Submit(r.Context(), trip); err != nil {
		slog.Error("Trip submission failed", slog.String("error", err.Error()))
		writeJSON(w, tripResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, tripResponse{Success: true})
}

// HandleSaveTrip records the trip in memory and returns an HTML hotel list
// for the destination so the form can show a preview immediately.
func (h *TripHandler) HandleSaveTrip(w http.ResponseWriter, r *http.Request) {
	var trip trips.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if trip.Destination == "" {
		http.Error(w, "Destination required", http.StatusBadRequest)
		return
	}

	h.service.Record(trip)

	hotels, err := h.hotels.ScrapeHotelsWithDates(r.Context(), trip.Destination, trip.StartDate, trip.EndDate)
	if err != nil {
		slog.Warn("Hotel scrape failed for trip form",
			slog.String("destination", trip.Destination),
			slog.String("error", err.Error()))
		hotels = nil
	}

	writeJSON(w, tripResponse{Success: true, Response: renderHotelList(hotels)})
}

// HandleSummary answers GET /api/trip/summary?name=<user>.
func (h *TripHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Name required", http.StatusBadRequest)
		return
	}

	summary, err := h.service.Summarize(r.Context(), name)
	if err != nil {
		slog.Error("Trip summary failed", slog.String("name", name), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, queryResponse{Response: summary})
}

func renderHotelList(hotels []*storage.Listing) string {
	var b strings.Builder
	b.WriteString("<h4>Top Hotels:</h4><ul>")
	if len(hotels) == 0 {
		b.WriteString("<li>No hotels found.</li>")
	}
	for _, hotel := range hotels {
		link := fmt.Sprintf("<a href='%s' target='_blank'>%s</a>",
			hotel.URL, html.EscapeString(hotel.Name))
		b.WriteString(fmt.Sprintf("<li>%s (%s) | Price: %s | Rating: %s</li>",
			link,
			html.EscapeString(hotel.Location),
			html.EscapeString(hotel.PricePerNight),
			html.EscapeString(hotel.Rating)))
	}
	b.WriteString("</ul>")
	return b.String()
}
