package handler

import (
	"net/http"

	"masala-kart/internal/menu"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service menu.Service
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service menu.Service, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// GetAll handles GET /api/menu requests.
func (h *MenuHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items := h.service.Items(r.Context())
	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// GetSpecials handles GET /api/menu/specials requests.
func (h *MenuHandler) GetSpecials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items := h.service.Specials(r.Context())
	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
