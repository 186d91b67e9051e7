package routes

import (
	"net/http"

	"github.com/star-burger/backend/internal/api/handlers"
	"github.com/star-burger/backend/internal/api/middleware"
	"github.com/star-burger/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	productHandler    *handlers.ProductHandler
	bannerHandler     *handlers.BannerHandler
	restaurantHandler *handlers.RestaurantHandler
	orderHandler      *handlers.OrderHandler
	dashboardHandler  *handlers.DashboardHandler
	streamHandler     *handlers.StreamHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// NewRouter creates a new router
func NewRouter(
	productHandler *handlers.ProductHandler,
	bannerHandler *handlers.BannerHandler,
	restaurantHandler *handlers.RestaurantHandler,
	orderHandler *handlers.OrderHandler,
	dashboardHandler *handlers.DashboardHandler,
	streamHandler *handlers.StreamHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		productHandler:    productHandler,
		bannerHandler:     bannerHandler,
		restaurantHandler: restaurantHandler,
		orderHandler:      orderHandler,
		dashboardHandler:  dashboardHandler,
		streamHandler:     streamHandler,
		cacheMiddleware:   cacheMiddleware,
		metrics:           metrics,
		allowedOrigins:    allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Storefront endpoints
	r.mux.HandleFunc("GET /api/products", r.productHandler.ListProducts)
	r.mux.HandleFunc("GET /api/products/{id}", r.productHandler.GetProduct)
	r.mux.HandleFunc("GET /api/banners", r.bannerHandler.ListBanners)
	r.mux.HandleFunc("GET /api/restaurants", r.restaurantHandler.ListRestaurants)
	r.mux.HandleFunc("GET /api/restaurants/{id}", r.restaurantHandler.GetRestaurant)

	// Order endpoints
	r.mux.HandleFunc("POST /api/order", r.orderHandler.CreateOrder)
	r.mux.HandleFunc("GET /api/order/{id}", r.orderHandler.GetOrder)

	// Manager endpoints
	r.mux.HandleFunc("GET /api/manager/orders", r.dashboardHandler.ListOrders)
	r.mux.HandleFunc("PATCH /api/manager/orders/{id}", r.orderHandler.UpdateOrder)
	r.mux.HandleFunc("GET /api/manager/products", r.productHandler.ListProductAvailability)
	if r.streamHandler != nil {
		r.mux.HandleFunc("GET /api/manager/orders/stream", r.streamHandler.StreamOrderUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
