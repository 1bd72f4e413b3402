package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/api"
	"github.com/niveshai/niveshai-backend/internal/config"
	"github.com/niveshai/niveshai-backend/internal/database"
	"github.com/niveshai/niveshai-backend/internal/pricing"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/scheduler"
	"github.com/niveshai/niveshai-backend/internal/service"
	"github.com/niveshai/niveshai-backend/internal/stream"
	"github.com/niveshai/niveshai-backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("NiveshAI backend %s", version.Version)

	// Open storage
	db, repo, err := openStore(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	// Price lookups
	provider, err := pricing.New(cfg.Pricing.Provider)
	if err != nil {
		log.Fatalf("Failed to create price provider: %v", err)
	}
	prices := pricing.NewCachedLookup(provider, cfg.Pricing.CacheTTL)
	log.Printf("Price provider: %s (cache %s)", cfg.Pricing.Provider, cfg.Pricing.CacheTTL)

	// Live update stream
	hub := stream.NewHub(nil)
	defer hub.Close()

	// Create services
	portfolioService := service.NewPortfolioService(repo, prices, cfg.Thresholds()).
		WithPublisher(hub).
		WithConcurrency(cfg.Pricing.Concurrency)
	systemService := service.NewSystemService(db, cfg.Database.Driver, cfg.Pricing.Provider)
	chatAdvisor := advisor.New(portfolioService)

	// Scheduled refresh
	var sched *scheduler.Scheduler
	if cfg.Refresh.Schedule != "" {
		sched, err = scheduler.New(cfg.Refresh.Schedule, portfolioService, cfg.Refresh.Timeout)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		systemService.WithFeature("scheduled_refresh", true)
		sched.Start()
		log.Printf("Scheduled refresh: %s", cfg.Refresh.Schedule)
	}

	// Create router
	router := api.NewRouter(systemService, portfolioService, chatAdvisor, hub, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(ctx)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited")
}

// openStore returns the portfolio store for the configured driver. The
// returned *sql.DB is nil for the memory driver.
func openStore(cfg config.DatabaseConfig) (*sql.DB, repository.Store, error) {
	var dsn string
	switch cfg.Driver {
	case config.DriverMemory:
		log.Printf("Using in-memory storage; portfolios are lost on restart")
		return nil, repository.NewMemoryPortfolioRepository(), nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, nil, err
		}
		dsn = cfg.Path
	case config.DriverPostgres:
		dsn = cfg.URL
	}

	db, err := database.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, cfg.Driver); err != nil {
		db.Close()
		return nil, nil, err
	}
	dialect, err := database.Dialect(cfg.Driver)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	v, _ := database.SchemaVersion(db)
	log.Printf("Connected to %s database (schema version %d)", cfg.Driver, v)
	return db, repository.NewPortfolioRepository(db, dialect), nil
}
