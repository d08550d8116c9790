package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KeshavMannem/Trip-Planner/internal/services"
)

// RecommendHandler serves the recommendation form: it synthesizes a hotel
// query for the destination, plus a flight query when an origin is given,
// and summarizes the combined context.
type RecommendHandler struct {
	planner    ContextPlanner
	summarizer AnswerSummarizer
}

type recommendRequest struct {
	Destination string `json:"destination"`
	Origin      string `json:"origin,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Budget      string `json:"budget,omitempty"`
}

func NewRecommendHandler(planner ContextPlanner, summarizer AnswerSummarizer) *RecommendHandler {
	return &RecommendHandler{planner: planner, summarizer: summarizer}
}

func (h *RecommendHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Destination == "" {
		http.Error(w, "Destination required", http.StatusBadRequest)
		return
	}

	hotelQuery := services.Query{
		RawText:  fmt.Sprintf("Show me hotels in %s", req.Destination),
		Kind:     services.QueryHotel,
		Location: req.Destination,
	}

	var documents []string
	hotelResult, err := h.planner.AnswerContext(r.Context(), hotelQuery)
	if err != nil {
		slog.Error("Hotel retrieval failed", slog.String("destination", req.Destination), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	documents = append(documents, hotelResult.Documents...)

	withFlights := false
	if req.Origin != "" {
		flightQuery := services.Query{
			RawText:     fmt.Sprintf("Show me flights from %s to %s", req.Origin, req.Destination),
			Kind:        services.QueryFlight,
			Origin:      req.Origin,
			Destination: req.Destination,
		}
		flightResult, err := h.planner.AnswerContext(r.Context(), flightQuery)
		if err != nil {
			slog.Error("Flight retrieval failed", slog.String("destination", req.Destination), slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if len(flightResult.Documents) > 0 {
			withFlights = true
			documents = append(documents, flightResult.Documents...)
		}
	}

	if len(documents) == 0 {
		writeJSON(w, queryResponse{Response: "No hotels or flights were found. Please try again with a different destination."})
		return
	}

	question := fmt.Sprintf("Based on the travel options to %s, suggest the best hotels", req.Destination)
	if withFlights {
		question += " and flights"
	}

	answer := h.summarizer.Summarize(r.Context(), services.Query{RawText: question, Kind: services.QueryHotel, Location: req.Destination}, documents)
	writeJSON(w, queryResponse{Response: answer})
}
