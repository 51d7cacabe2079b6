package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricescope/backend/config"
	httpDelivery "github.com/pricescope/backend/internal/delivery/http"
	"github.com/pricescope/backend/internal/infrastructure/fetch"
	"github.com/pricescope/backend/internal/infrastructure/routing"
	"github.com/pricescope/backend/internal/infrastructure/scraper"
	"github.com/pricescope/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceScope Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	registry := scraper.NewRegistry(fetch.Config{
		Timeout:           cfg.Scraper.Timeout,
		MaxIdleConns:      cfg.Scraper.MaxIdleConns,
		MaxConnsPerHost:   cfg.Scraper.MaxConnsPerHost,
		DelayMin:          cfg.Scraper.DelayMin,
		DelayMax:          cfg.Scraper.DelayMax,
		RequestsPerMinute: cfg.Scraper.RequestsPerMinute,
	})
	routingTable := routing.NewTable()

	log.Printf("Registered site adapters: %v", registry.Sites())
	log.Printf("Routing table covers %d countries", len(routingTable.SupportedCountries()))

	// Initialize usecase layer
	orchestrator := usecase.NewOrchestrator(registry)
	ranker := usecase.NewRanker(usecase.RankerConfig{
		RelevanceThreshold: cfg.Ranker.RelevanceThreshold,
	})
	searchService := usecase.NewSearchService(routingTable, orchestrator, ranker)

	log.Printf("Ranker: relevance threshold=%.2f", cfg.Ranker.RelevanceThreshold)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
