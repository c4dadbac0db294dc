package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading coupon book JSON files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon book loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a JSON coupon book from the local file system.
// The file is expected to contain a JSON array of coupon objects.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Coupon, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon book")

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read coupon book")
		return nil, fmt.Errorf("failed to read coupon book %s: %w", filePath, err)
	}

	var coupons []model.Coupon
	if err := json.Unmarshal(data, &coupons); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse coupon book")
		return nil, fmt.Errorf("failed to parse coupon book %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", len(coupons)).
		Msg("coupon book loaded successfully")

	return coupons, nil
}
