package handler

import (
	"net/http"
	"strconv"

	"masala-kart/internal/cart"
	"masala-kart/internal/kv"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. Each request loads
// the session's ledger from the store, mutates it and relies on the
// ledger's write-through persistence.
type CartHandler struct {
	store  kv.Store
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store kv.Store, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse renders the ledger state.
type cartResponse struct {
	Lines    []model.CartLine `json:"lines"`
	Subtotal int              `json:"subtotal"`
}

func (h *CartHandler) render(w http.ResponseWriter, status int, ledger *cart.Ledger) {
	lines := ledger.Lines()
	if lines == nil {
		lines = []model.CartLine{}
	}
	writeJSON(w, status, cartResponse{Lines: lines, Subtotal: ledger.Subtotal()})
}

// Get handles GET /api/carts/{session} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	ledger := cart.Load(r.Context(), h.store, sessionID, h.logger)
	h.render(w, http.StatusOK, ledger)
}

// AddItem handles POST /api/carts/{session}/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req model.AddItemRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	ledger := cart.Load(r.Context(), h.store, sessionID, h.logger)
	ledger.AddLine(r.Context(), req.Name, req.Price, req.SpiceLevel, req.Addons)

	h.logger.Debug().
		Str("session_id", sessionID).
		Str("name", req.Name).
		Int("line_count", ledger.Len()).
		Msg("item added to cart")

	h.render(w, http.StatusOK, ledger)
}

// UpdateQuantity handles PATCH /api/carts/{session}/items/{index} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request, sessionID, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	var req model.UpdateQuantityRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	ledger := cart.Load(r.Context(), h.store, sessionID, h.logger)

	// An out-of-range index is expected control flow (UI/state desync),
	// not a fault; the cart is returned unchanged.
	ledger.UpdateQuantity(r.Context(), index, req.Delta)
	h.render(w, http.StatusOK, ledger)
}

// RemoveItem handles DELETE /api/carts/{session}/items/{index} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request, sessionID, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	ledger := cart.Load(r.Context(), h.store, sessionID, h.logger)
	ledger.RemoveLine(r.Context(), index)
	h.render(w, http.StatusOK, ledger)
}
