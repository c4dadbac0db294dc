package handler

import (
	"errors"
	"net/http"

	"masala-kart/internal/checkout"
	"masala-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles quote, checkout and order lookup requests.
type CheckoutHandler struct {
	service checkout.Service
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service checkout.Service, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Quote handles POST /api/carts/{session}/quote requests.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req model.CheckoutRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.Quote(r.Context(), sessionID, req.CouponCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute quote", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// PlaceOrder handles POST /api/carts/{session}/checkout requests.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req model.CheckoutRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), sessionID, req.CouponCode)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, http.StatusBadRequest, domainErr.Message, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to place order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetOrder handles GET /api/orders/{id} requests.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	resp, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get order", h.logger)
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
