package handler

import (
	"net/http"
	"time"

	"masala-kart/internal/happyhour"

	"github.com/rs/zerolog"
)

// HappyHourHandler reports the currently active happy-hour window.
type HappyHourHandler struct {
	selector *happyhour.Selector
	clock    func() time.Time
	logger   zerolog.Logger
}

// NewHappyHourHandler creates a new happy-hour handler. A nil clock
// defaults to time.Now.
func NewHappyHourHandler(selector *happyhour.Selector, clock func() time.Time, logger zerolog.Logger) *HappyHourHandler {
	if clock == nil {
		clock = time.Now
	}
	return &HappyHourHandler{
		selector: selector,
		clock:    clock,
		logger:   logger.With().Str("handler", "happyhour").Logger(),
	}
}

// activeResponse renders the current window, null when none is active.
type activeResponse struct {
	Active bool              `json:"active"`
	Window *happyhour.Window `json:"window"`
}

// GetActive handles GET /api/happy-hour requests.
func (h *HappyHourHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	window := h.selector.Active(h.clock())
	writeJSON(w, http.StatusOK, activeResponse{Active: window != nil, Window: window})
}
