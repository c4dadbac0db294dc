package menu

import (
	"context"
	"time"

	"masala-kart/internal/cache"
	"masala-kart/internal/docstore"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// Service exposes menu reads. Results come through the TTL cache; a
// failed fetch with no cached data yields an empty slice, never an
// error, so the UI keeps whatever it last showed.
type Service interface {
	// Items returns the full menu, ordered by category.
	Items(ctx context.Context) []model.MenuItem

	// Specials returns the active specials with combo pricing applied.
	Specials(ctx context.Context) []model.MenuItem
}

// service implements Service.
type service struct {
	cache         *cache.ReadThrough
	ttl           time.Duration
	comboDiscount float64
	logger        zerolog.Logger
}

// NewService creates a new menu service. comboDiscount is the fraction
// taken off a special's price (e.g. 0.15).
func NewService(rt *cache.ReadThrough, ttl time.Duration, comboDiscount float64, logger zerolog.Logger) Service {
	return &service{
		cache:         rt,
		ttl:           ttl,
		comboDiscount: comboDiscount,
		logger:        logger.With().Str("service", "menu").Logger(),
	}
}

// Items returns the full menu, ordered by category.
func (s *service) Items(ctx context.Context) []model.MenuItem {
	var items []model.MenuItem
	cache.Fetch(ctx, s.cache, "menu_items", "menu_items", s.ttl,
		docstore.QueryOptions{OrderBy: "category"},
		docsToItems,
		func(v []model.MenuItem) { items = v },
	)
	return items
}

// Specials returns the active specials with the combo discount applied
// to each price.
func (s *service) Specials(ctx context.Context) []model.MenuItem {
	var items []model.MenuItem
	cache.Fetch(ctx, s.cache, "specials", "specials", s.ttl,
		docstore.Where("active", "==", true),
		func(docs []docstore.Document) []model.MenuItem {
			specials := docsToItems(docs)
			for i := range specials {
				specials[i].Price = comboPrice(specials[i].Price, s.comboDiscount)
			}
			return specials
		},
		func(v []model.MenuItem) { items = v },
	)
	return items
}

// comboPrice applies the combo discount fraction, rounding down to
// whole rupees.
func comboPrice(price int, discount float64) int {
	return int(float64(price) * (1 - discount))
}

// docsToItems maps raw documents onto menu items. Missing or
// mis-typed fields fall back to zero values rather than failing the
// whole read.
func docsToItems(docs []docstore.Document) []model.MenuItem {
	items := make([]model.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, model.MenuItem{
			ID:          doc.ID,
			Name:        fieldString(doc.Fields, "name"),
			Price:       fieldInt(doc.Fields, "price"),
			Category:    fieldString(doc.Fields, "category"),
			Veg:         fieldBool(doc.Fields, "veg"),
			Description: fieldString(doc.Fields, "description"),
		})
	}
	return items
}

func fieldString(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// fieldInt accepts both float64 (JSON numbers) and int.
func fieldInt(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func fieldBool(fields map[string]any, key string) bool {
	if v, ok := fields[key].(bool); ok {
		return v
	}
	return false
}
