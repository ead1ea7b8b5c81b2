package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/furnet/instance-server/internal/api"
	"github.com/furnet/instance-server/internal/config"
	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/metrics"
	"github.com/furnet/instance-server/internal/netid"
	"github.com/furnet/instance-server/internal/peer"
	"github.com/furnet/instance-server/internal/service"
	"github.com/furnet/instance-server/internal/storage/memory"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Derive this instance's own animal id; it guards against
	// self-registration in the friend workflow.
	localID, err := netid.GenerateAnimalID(cfg.Instance.InstanceURL, cfg.Animal.Name)
	if err != nil {
		log.Fatalf("Invalid INSTANCE_URL %q: %v", cfg.Instance.InstanceURL, err)
	}

	// Initialize storage and seed the demo items
	store := memory.New()
	defer store.Close()
	seedItems(store)

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Outbound peer client and workflows
	client := peer.NewClient()
	friendService := service.NewFriendService(store, client, localID, cfg.Instance.TrustedDomain, m)
	healthService := service.NewHealthService(client, m)

	// Create router
	router := api.NewRouter(cfg, store, friendService, healthService, registry)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting FurNet instance %s on http://%s", localID, cfg.Server.Addr())
	if cfg.Instance.TrustedDomain != "" {
		log.Printf("Friend registrations restricted to hosts matching %q", cfg.Instance.TrustedDomain)
	}

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedItems loads the demo items served by the item endpoints.
func seedItems(store *memory.Store) {
	ctx := context.Background()
	demo := []*domain.Item{
		{ID: "1", Name: "Item 1", Description: "First item"},
		{ID: "2", Name: "Item 2", Description: "Second item"},
	}
	for _, item := range demo {
		if err := store.CreateItem(ctx, item); err != nil {
			log.Printf("Failed to seed item %s: %v", item.ID, err)
		}
	}
}
