package router

import (
	"net/http"
	"strings"

	"masala-kart/internal/handler"
	"masala-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	menuHandler *handler.MenuHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	loyaltyHandler *handler.LoyaltyHandler,
	happyHourHandler *handler.HappyHourHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/menu", menuHandler.GetAll)
	mux.HandleFunc("/api/menu/specials", menuHandler.GetSpecials)

	mux.HandleFunc("/api/loyalty/tier", loyaltyHandler.GetTier)
	mux.HandleFunc("/api/loyalty/tiers", loyaltyHandler.GetTiers)

	mux.HandleFunc("/api/happy-hour", happyHourHandler.GetActive)

	// Cart routes are keyed by session ID and dispatched on the path
	// segments after it:
	//   GET    /api/carts/{session}
	//   POST   /api/carts/{session}/items
	//   PATCH  /api/carts/{session}/items/{index}
	//   DELETE /api/carts/{session}/items/{index}
	//   POST   /api/carts/{session}/quote
	//   POST   /api/carts/{session}/checkout
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/carts/"), "/")
		segments := strings.Split(rest, "/")
		if rest == "" || segments[0] == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		sessionID := segments[0]

		switch {
		case len(segments) == 1:
			cartHandler.Get(w, r, sessionID)

		case len(segments) == 2 && segments[1] == "items" && r.Method == http.MethodPost:
			cartHandler.AddItem(w, r, sessionID)

		case len(segments) == 3 && segments[1] == "items" && r.Method == http.MethodPatch:
			cartHandler.UpdateQuantity(w, r, sessionID, segments[2])

		case len(segments) == 3 && segments[1] == "items" && r.Method == http.MethodDelete:
			cartHandler.RemoveItem(w, r, sessionID, segments[2])

		case len(segments) == 2 && segments[1] == "quote" && r.Method == http.MethodPost:
			checkoutHandler.Quote(w, r, sessionID)

		case len(segments) == 2 && segments[1] == "checkout" && r.Method == http.MethodPost:
			checkoutHandler.PlaceOrder(w, r, sessionID)

		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/carts/", cartRouteHandler)

	// Order lookup by ID
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/orders/"), "/")
		if id == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		checkoutHandler.GetOrder(w, r, id)
	}
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
