package coupon

import (
	"context"

	"masala-kart/internal/model"
)

// Book holds the coupons known to the service, keyed by code.
type Book interface {
	// Lookup returns the coupon for a code, or false if unknown.
	// Lookup never exposes internal state for mutation: callers get
	// a copy.
	Lookup(code string) (*model.Coupon, bool)

	// RecordUse increments the used count for a code after an order
	// is placed. Unknown codes are ignored.
	RecordUse(code string)

	// Size returns the number of coupons in the book.
	Size() int
}

// Loader reads a coupon book definition from some backing source.
type Loader interface {
	// Load reads a JSON coupon book and returns its coupons.
	Load(ctx context.Context, path string) ([]model.Coupon, error)
}

// Result is the outcome of validating a coupon against an order
// context. Rejections are values, never errors; the caller decides
// the messaging.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
