package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KeshavMannem/Trip-Planner/internal/config"
	"github.com/KeshavMannem/Trip-Planner/internal/handlers"
	"github.com/KeshavMannem/Trip-Planner/internal/logging"
	"github.com/KeshavMannem/Trip-Planner/internal/middleware"
	"github.com/KeshavMannem/Trip-Planner/internal/scraper/booking"
	"github.com/KeshavMannem/Trip-Planner/internal/scraper/kayak"
	"github.com/KeshavMannem/Trip-Planner/internal/services"
	"github.com/KeshavMannem/Trip-Planner/internal/storage"
	"github.com/KeshavMannem/Trip-Planner/internal/trips"
)

type ServiceBundle struct {
	Store            storage.Store
	Planner          *services.RetrievalPlanner
	Summarizer       *services.Summarizer
	Trips            *trips.Service
	QueryHandler     *handlers.QueryHandler
	RecommendHandler *handlers.RecommendHandler
	TripHandler      *handlers.TripHandler
	ListingsHandler  *handlers.ListingsHandler
	Config           *config.Config
}

func initializeServices() *ServiceBundle {
	slog.Info("Loading configuration...")

	var cfg *config.Config
	for {
		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			slog.Error("Invalid configuration, retrying in 30s", "error", err)
			time.Sleep(30 * time.Second)
			continue
		}
		break
	}

	slog.Info("Initializing services...")

	embedder := services.NewEmbeddingService(cfg.OpenAIAPIKey)

	var store *storage.PostgresStore
	for {
		var err error
		store, err = storage.NewPostgresStore(cfg.DatabaseURL, embedder)
		if err != nil {
			slog.Error("Failed to initialize listing store, retrying in 30s", "error", err)
			time.Sleep(30 * time.Second)
			continue
		}
		break
	}

	var db *sql.DB
	for {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err != nil {
			slog.Error("Failed to connect trip database, retrying in 30s", "error", err)
			time.Sleep(30 * time.Second)
			continue
		}
		break
	}

	runner := services.NewOllamaRunner(cfg.OllamaModel)

	hotelScraper := booking.New(cfg.BookingBaseURL, cfg.ScrapeListingLimit, cfg.PriceLookupTimeout)
	flightScraper := kayak.New(cfg.KayakBaseURL, cfg.ScrapeListingLimit)

	planner := services.NewRetrievalPlanner(store, hotelScraper, flightScraper, cfg.SearchTopK)
	summarizer := services.NewSummarizer(runner)

	tripService := trips.NewService(db, runner)
	for {
		if err := tripService.InitSchema(); err != nil {
			slog.Error("Failed to initialize trip schema, retrying in 30s", "error", err)
			time.Sleep(30 * time.Second)
			continue
		}
		break
	}

	slog.Info("All services initialized successfully")

	return &ServiceBundle{
		Store:            store,
		Planner:          planner,
		Summarizer:       summarizer,
		Trips:            tripService,
		QueryHandler:     handlers.NewQueryHandler(planner, summarizer),
		RecommendHandler: handlers.NewRecommendHandler(planner, summarizer),
		TripHandler:      handlers.NewTripHandler(tripService, hotelScraper),
		ListingsHandler:  handlers.NewListingsHandler(store),
		Config:           cfg,
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	logging.SetupLogger()

	slog.Info("Starting Trip Planner", slog.String("version", "1.0.0"))

	bundle := initializeServices()
	defer bundle.Store.Close()

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.MetricsMiddleware)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.APIRateLimitMiddleware())
	apiRouter.HandleFunc("/query", bundle.QueryHandler.HandleQuery).Methods("POST")
	apiRouter.HandleFunc("/recommendations", bundle.RecommendHandler.HandleRecommendations).Methods("POST")
	apiRouter.HandleFunc("/trip/submit", bundle.TripHandler.HandleSubmit).Methods("POST")
	apiRouter.HandleFunc("/trip/summary", bundle.TripHandler.HandleSummary).Methods("GET")
	apiRouter.HandleFunc("/trip", bundle.TripHandler.HandleSaveTrip).Methods("POST")
	apiRouter.HandleFunc("/listings", bundle.ListingsHandler.HandleListings).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Ready"))
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Scrapes and LLM calls can take minutes; each request runs on its own
	// goroutine, so slow pipelines do not serialize other clients.
	server := &http.Server{
		Addr:         ":" + bundle.Config.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", slog.String("port", bundle.Config.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully")
}
