package trips

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/KeshavMannem/Trip-Planner/internal/metrics"
)

// Trip is a user-submitted trip request.
type Trip struct {
	Name        string `json:"name"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Budget      string `json:"budget"`
}

type LLMRunner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Service persists trip submissions and keeps the session-scoped trip list
// that the trip form reads back. The list is owned here behind a mutex,
// never a package global.
type Service struct {
	db     *sql.DB
	runner LLMRunner

	mu    sync.Mutex
	trips []Trip
}

func NewService(db *sql.DB, runner LLMRunner) *Service {
	return &Service{db: db, runner: runner}
}

func (s *Service) InitSchema() error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS trip_requests (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			destination VARCHAR(255) NOT NULL,
			start_date VARCHAR(64),
			end_date VARCHAR(64),
			budget VARCHAR(64),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create trip_requests table: %w", err)
	}
	return nil
}

// Submit writes a trip request to the relational store.
func (s *Service) Submit(ctx context.Context, trip Trip) error {
	query := `
		INSERT INTO trip_requests (name, destination, start_date, end_date, budget)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query,
		trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Budget); err != nil {
		metrics.TripsSubmitted.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to insert trip request: %w", err)
	}

	metrics.TripsSubmitted.WithLabelValues("success").Inc()
	return nil
}

// Record appends a trip to the in-memory session list.
func (s *Service) Record(trip Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, trip)
}

// Trips returns a copy of the in-memory session list.
func (s *Service) Trips() []Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

// Summarize loads every trip stored for a user and asks the local model for
// a short friendly summary. No trips is a normal answer, not an error.
func (s *Service) Summarize(ctx context.Context, name string) (string, error) {
	query := `
		SELECT name, destination, start_date, end_date, budget
		FROM trip_requests
		WHERE name = $1
	`
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return "", fmt.Errorf("failed to load trips for %q: %w", name, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var trip Trip
		if err := rows.Scan(&trip.Name, &trip.Destination, &trip.StartDate, &trip.EndDate, &trip.Budget); err != nil {
			return "", fmt.Errorf("failed to scan trip row: %w", err)
		}
		lines = append(lines, fmt.Sprintf("%s has a trip to %s from %s to %s with a budget of %s",
			trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Budget))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to iterate trip rows: %w", err)
	}

	if len(lines) == 0 {
		return "No trips found for that user.", nil
	}

	prompt := fmt.Sprintf("Summarize this trip info:\n%s\n\nProvide a short, friendly summary.",
		strings.Join(lines, "\n"))

	answer, err := s.runner.Run(ctx, prompt)
	if err != nil {
		slog.Error("Trip summary LLM invocation failed", slog.String("error", err.Error()))
		return "Failed to get LLM response.", nil
	}

	return strings.TrimSpace(answer), nil
}
