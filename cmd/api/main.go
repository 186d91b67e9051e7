package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/star-burger/backend/internal/adapters/cache"
	"github.com/star-burger/backend/internal/adapters/database"
	"github.com/star-burger/backend/internal/adapters/events"
	"github.com/star-burger/backend/internal/adapters/providers/geocoding"
	"github.com/star-burger/backend/internal/api/handlers"
	"github.com/star-burger/backend/internal/api/middleware"
	"github.com/star-burger/backend/internal/api/routes"
	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/providers"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	"github.com/star-burger/backend/internal/infrastructure/clients/redis"
	"github.com/star-burger/backend/internal/infrastructure/observability"
	"github.com/star-burger/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time order updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	locationAdapter := database.NewLocationAdapter(pgClient)
	productAdapter := database.NewProductAdapter(pgClient)
	restaurantAdapter := database.NewRestaurantAdapter(pgClient)
	orderAdapter := database.NewOrderAdapter(pgClient)

	var geocodingProvider providers.GeocodingProvider
	switch cfg.Geocoder.Provider {
	case "yandex":
		if cfg.Geocoder.APIKey == "" {
			log.Println("Warning: GEOCODER_API_KEY is not set; using mock geocoding provider")
			geocodingProvider = geocoding.NewMockGeocodingProvider()
		} else {
			httpClient := &http.Client{Timeout: time.Duration(cfg.Geocoder.TimeoutSeconds) * time.Second}
			geocodingProvider = geocoding.NewYandexGeocodingProviderWithOptions(cfg.Geocoder.APIKey, cfg.Geocoder.BaseURL, httpClient).
				WithMetrics(metrics)
		}
	default:
		geocodingProvider = geocoding.NewMockGeocodingProvider()
	}

	// Initialize services
	resolver := services.NewLocationResolverService(locationAdapter, geocodingProvider)
	dispatch := services.NewDispatchService()
	productService := services.NewProductService(productAdapter)
	orderService := services.NewOrderService(orderAdapter, productAdapter, resolver, eventBus, cfg.Orders.PhoneRegion)
	dashboardService := services.NewDashboardService(orderAdapter, restaurantAdapter, resolver, dispatch)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, restaurantAdapter)
	bannerHandler := handlers.NewBannerHandler()
	restaurantHandler := handlers.NewRestaurantHandler(restaurantAdapter)
	orderHandler := handlers.NewOrderHandler(orderService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	var streamHandler *handlers.StreamHandler
	if eventBus != nil {
		streamHandler = handlers.NewStreamHandler(eventBus)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		productHandler,
		bannerHandler,
		restaurantHandler,
		orderHandler,
		dashboardHandler,
		streamHandler,
		cacheMiddleware,
		metrics,
		cfg.Server.AllowedOrigins,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
