package handler

import (
	"net/http"
	"strconv"

	"masala-kart/internal/loyalty"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// LoyaltyHandler handles loyalty tier lookups.
type LoyaltyHandler struct {
	resolver *loyalty.Resolver
	logger   zerolog.Logger
}

// NewLoyaltyHandler creates a new loyalty handler.
func NewLoyaltyHandler(resolver *loyalty.Resolver, logger zerolog.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		resolver: resolver,
		logger:   logger.With().Str("handler", "loyalty").Logger(),
	}
}

// tierResponse wraps the resolved tier with the points it was resolved for.
type tierResponse struct {
	Points int               `json:"points"`
	Tier   model.LoyaltyTier `json:"tier"`
}

// GetTier handles GET /api/loyalty/tier?points=N requests.
func (h *LoyaltyHandler) GetTier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	pointsStr := r.URL.Query().Get("points")
	points, err := strconv.Atoi(pointsStr)
	if err != nil || points < 0 {
		writeError(w, http.StatusBadRequest, "points must be a non-negative integer", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tierResponse{
		Points: points,
		Tier:   h.resolver.TierFor(points),
	})
}

// GetTiers handles GET /api/loyalty/tiers requests.
func (h *LoyaltyHandler) GetTiers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tiers": h.resolver.Tiers()})
}
