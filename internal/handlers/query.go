package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KeshavMannem/Trip-Planner/internal/metrics"
	"github.com/KeshavMannem/Trip-Planner/internal/services"
)

// ContextPlanner is the retrieval side of the pipeline.
type ContextPlanner interface {
	AnswerContext(ctx context.Context, query services.Query) (*services.RetrievalResult, error)
}

// AnswerSummarizer is the generation side of the pipeline.
type AnswerSummarizer interface {
	Summarize(ctx context.Context, query services.Query, documents []string) string
}

// QueryHandler runs the full interpret-retrieve-summarize pipeline for a
// free-text travel question. Every outcome is a 200 with some answer string;
// only a malformed request body is an HTTP error.
type QueryHandler struct {
	planner    ContextPlanner
	summarizer AnswerSummarizer
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

func NewQueryHandler(planner ContextPlanner, summarizer AnswerSummarizer) *QueryHandler {
	return &QueryHandler{planner: planner, summarizer: summarizer}
}

func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "Query cannot be empty", http.StatusBadRequest)
		return
	}

	query := services.ParseQuery(req.Query)
	if query.Kind == services.QueryUnrecognized {
		metrics.QueriesProcessed.WithLabelValues("unrecognized", "rejected").Inc()
		writeJSON(w, queryResponse{Response: "Could not detect a location in your question."})
		return
	}

	kind := "hotel"
	if query.Kind == services.QueryFlight {
		kind = "flight"
	}

	result, err := h.planner.AnswerContext(r.Context(), query)
	if err != nil {
		slog.Error("Retrieval failed", slog.String("query", req.Query), slog.String("error", err.Error()))
		metrics.QueriesProcessed.WithLabelValues(kind, "error").Inc()
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	answer := h.summarizer.Summarize(r.Context(), query, result.Documents)
	metrics.QueriesProcessed.WithLabelValues(kind, "success").Inc()

	slog.Info("Query answered",
		slog.String("kind", kind),
		slog.Bool("from_cache", result.FromCache),
		slog.Int("documents", len(result.Documents)))

	writeJSON(w, queryResponse{Response: answer})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}
