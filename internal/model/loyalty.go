package model

// LoyaltyTier is a named band of accumulated points.
// Min is the inclusive points threshold at which the tier starts.
type LoyaltyTier struct {
	Name  string `json:"name" yaml:"name"`
	Min   int    `json:"min" yaml:"min"`
	Color string `json:"color" yaml:"color"`
	Icon  string `json:"icon" yaml:"icon"`
}
