package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Muditha98/LaptopInsights/api"
	"github.com/Muditha98/LaptopInsights/config"
	"github.com/Muditha98/LaptopInsights/internal/scraper"
	"github.com/Muditha98/LaptopInsights/internal/tools"
	"github.com/Muditha98/LaptopInsights/llm"
	"github.com/Muditha98/LaptopInsights/logger"
	"github.com/Muditha98/LaptopInsights/services/cache"
	"github.com/Muditha98/LaptopInsights/services/publisher"
	"github.com/Muditha98/LaptopInsights/services/store"
	"github.com/Muditha98/LaptopInsights/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("scrape_interval", cfg.ScrapeInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Sync the product catalog into the store
	catalog := config.Products()
	for _, p := range catalog {
		if err := services.Store.UpsertProduct(p); err != nil {
			log.Fatal().Err(err).Str("product_id", p.ProductID).Msg("Failed to sync catalog")
		}
	}
	log.Info().Int("products", len(catalog)).Msg("Catalog synced")

	// Create scrapers
	var renderer *scraper.Renderer
	if cfg.Scrape.Headless && cfg.ChromeAddr != "" {
		renderer = scraper.NewRenderer(cfg.ChromeAddr, cfg.Scrape)
	}

	scrapers := make([]scraper.Scraper, 0, len(catalog))
	for _, p := range catalog {
		s, err := scraper.NewProductScraper(p, cfg.Scrape, renderer, services.Cache)
		if err != nil {
			log.Fatal().Err(err).Str("product_id", p.ProductID).Msg("Failed to create scraper")
		}
		scrapers = append(scrapers, s)
	}
	log.Info().Int("scraper_count", len(scrapers)).Msg("Created scrapers")

	// Create the worker
	w := worker.NewWorker(ctx, scrapers, services.Store, services.Publisher, cfg.ScrapeInterval)

	// Start the API server
	var llmClient *llm.Client
	if cfg.LLM.Enabled {
		llmClient = llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.APIKey, cfg.LLM.Model)
	}

	apiServer := api.NewServer(tools.New(services.Store), services.Store, w, llmClient, cfg.LLM.Enabled)
	apiDone := make(chan error, 1)
	go func() {
		apiDone <- apiServer.Start(ctx, cfg.APIPort)
	}()

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting price worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or component exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		}
	case err := <-apiDone:
		if err != nil {
			log.Error().Err(err).Msg("API server exited with error")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Store     store.Store
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if closer, ok := s.Store.(interface{ Close() error }); ok {
		closer.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize the persistence layer
	pg, err := store.NewPostgresStore(store.Config{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		DBName:   cfg.DatabaseName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	services.Store = pg

	logger.Info("Connected to Postgres at %s:%s (DB: %s)",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseName)

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	if cacheService == nil {
		return nil, fmt.Errorf("failed to create cache service")
	}
	services.Cache = cacheService

	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize publisher
	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
	if redisPublisher == nil {
		return nil, fmt.Errorf("failed to create redis publisher")
	}
	services.Publisher = redisPublisher

	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	return services, nil
}
