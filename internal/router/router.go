package router

import (
	"net/http"

	"freshmart/internal/handler"
	"freshmart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("GET /api/products", productHandler.GetAll)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)

	mux.HandleFunc("GET /api/cart", cartHandler.List)
	mux.HandleFunc("GET /api/cart/count", cartHandler.Count)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{productID}", cartHandler.RemoveItem)

	mux.HandleFunc("POST /api/orders", orderHandler.Commit)
	mux.HandleFunc("POST /api/orders/preview", orderHandler.Preview)
	mux.HandleFunc("GET /api/orders", orderHandler.List)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("POST /api/orders/{id}/pay", orderHandler.Pay)
	mux.HandleFunc("GET /api/orders/{id}/payment", orderHandler.PaymentStatus)
	mux.HandleFunc("POST /api/orders/{id}/review", orderHandler.Review)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
