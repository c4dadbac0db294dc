package coupon

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// mapBook implements Book with a mutex-guarded map. Reads dominate;
// RecordUse is the only writer after initialization.
type mapBook struct {
	mu      sync.RWMutex
	coupons map[string]model.Coupon
	logger  zerolog.Logger
}

// BookConfig holds configuration for loading the coupon book.
type BookConfig struct {
	// FilePath is the coupon book location (local path or object key).
	FilePath string
}

// DefaultBookConfig returns the default coupon book configuration.
func DefaultBookConfig() *BookConfig {
	return &BookConfig{
		FilePath: "data/coupons.json",
	}
}

// NewBook loads the coupon book at initialization time.
func NewBook(ctx context.Context, config *BookConfig, loader Loader, logger zerolog.Logger) (Book, error) {
	if config == nil {
		config = DefaultBookConfig()
	}

	logger = logger.With().Str("component", "coupon-book").Logger()

	coupons, err := loader.Load(ctx, config.FilePath)
	if err != nil {
		logger.Error().Err(err).Str("file", config.FilePath).Msg("failed to load coupon book")
		return nil, fmt.Errorf("failed to load coupon book %s: %w", config.FilePath, err)
	}

	b := &mapBook{
		coupons: make(map[string]model.Coupon, len(coupons)),
		logger:  logger,
	}
	for _, c := range coupons {
		code := normalizeCode(c.Code)
		if code == "" {
			logger.Warn().Msg("skipping coupon with empty code")
			continue
		}
		c.Code = code
		b.coupons[code] = c
	}

	logger.Info().Int("coupon_count", len(b.coupons)).Msg("coupon book loaded")

	return b, nil
}

// NewStaticBook builds a book directly from coupons, used in tests and
// seeding.
func NewStaticBook(coupons []model.Coupon, logger zerolog.Logger) Book {
	b := &mapBook{
		coupons: make(map[string]model.Coupon, len(coupons)),
		logger:  logger,
	}
	for _, c := range coupons {
		c.Code = normalizeCode(c.Code)
		b.coupons[c.Code] = c
	}
	return b
}

// Lookup returns a copy of the coupon for a code.
func (b *mapBook) Lookup(code string) (*model.Coupon, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.coupons[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	return &c, true
}

// RecordUse increments the used count for a code.
func (b *mapBook) RecordUse(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.coupons[normalizeCode(code)]
	if !ok {
		return
	}
	c.UsedCount++
	b.coupons[c.Code] = c

	b.logger.Debug().Str("code", c.Code).Int("used_count", c.UsedCount).Msg("coupon use recorded")
}

// Size returns the number of coupons in the book.
func (b *mapBook) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.coupons)
}

// normalizeCode upper-cases and trims a coupon code so lookups are
// case-insensitive.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
