package loyalty

import (
	"fmt"
	"os"

	"masala-kart/internal/model"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Resolver maps an accumulated points balance to a loyalty tier.
// The tier table is fixed at construction and strictly ascending,
// starting at min 0, so every non-negative balance matches a tier.
type Resolver struct {
	tiers []model.LoyaltyTier
}

// tierFile is the on-disk YAML shape of the tier table.
type tierFile struct {
	Tiers []model.LoyaltyTier `yaml:"tiers"`
}

// DefaultTiers returns the built-in tier table.
func DefaultTiers() []model.LoyaltyTier {
	return []model.LoyaltyTier{
		{Name: "Bronze", Min: 0, Color: "#cd7f32", Icon: "medal"},
		{Name: "Silver", Min: 500, Color: "#c0c0c0", Icon: "medal"},
		{Name: "Gold", Min: 1000, Color: "#ffd700", Icon: "trophy"},
		{Name: "Platinum", Min: 2500, Color: "#e5e4e2", Icon: "crown"},
	}
}

// NewResolver builds a resolver, validating the tier table.
func NewResolver(tiers []model.LoyaltyTier) (*Resolver, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}

	if tiers[0].Min != 0 {
		return nil, fmt.Errorf("first tier %q must start at 0 points, got %d", tiers[0].Name, tiers[0].Min)
	}

	for i := 1; i < len(tiers); i++ {
		if tiers[i].Min <= tiers[i-1].Min {
			return nil, fmt.Errorf("tier thresholds must be strictly ascending: %q (%d) after %q (%d)",
				tiers[i].Name, tiers[i].Min, tiers[i-1].Name, tiers[i-1].Min)
		}
	}

	r := &Resolver{tiers: make([]model.LoyaltyTier, len(tiers))}
	copy(r.tiers, tiers)
	return r, nil
}

// LoadResolver reads the tier table from a YAML file. An empty path
// uses the built-in table.
func LoadResolver(path string, logger zerolog.Logger) (*Resolver, error) {
	logger = logger.With().Str("component", "loyalty-resolver").Logger()

	if path == "" {
		logger.Info().Msg("using built-in loyalty tier table")
		return NewResolver(DefaultTiers())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier table %s: %w", path, err)
	}

	var file tierFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tier table %s: %w", path, err)
	}

	r, err := NewResolver(file.Tiers)
	if err != nil {
		return nil, fmt.Errorf("invalid tier table %s: %w", path, err)
	}

	logger.Info().Int("tier_count", len(file.Tiers)).Str("file", path).Msg("loyalty tier table loaded")
	return r, nil
}

// TierFor returns the tier with the greatest threshold not exceeding
// the points balance. Negative balances resolve to the first tier.
func (r *Resolver) TierFor(points int) model.LoyaltyTier {
	tier := r.tiers[0]
	for _, t := range r.tiers[1:] {
		if t.Min > points {
			break
		}
		tier = t
	}
	return tier
}

// Tiers returns a copy of the tier table.
func (r *Resolver) Tiers() []model.LoyaltyTier {
	tiers := make([]model.LoyaltyTier, len(r.tiers))
	copy(tiers, r.tiers)
	return tiers
}
