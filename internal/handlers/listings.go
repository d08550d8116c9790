package handlers

import (
	"log/slog"
	"net/http"

	"github.com/KeshavMannem/Trip-Planner/internal/storage"
)

// ListingsHandler dumps every stored document with its metadata, the
// operational "what is in the index" view.
type ListingsHandler struct {
	store storage.Store
}

func NewListingsHandler(store storage.Store) *ListingsHandler {
	return &ListingsHandler{store: store}
}

func (h *ListingsHandler) HandleListings(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.All(r.Context())
	if err != nil {
		slog.Error("Failed to dump listings", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []storage.SearchResult{}
	}

	writeJSON(w, results)
}
