package checkout

import (
	"context"

	"masala-kart/internal/model"

	"github.com/google/uuid"
)

// Service defines the checkout operations.
type Service interface {
	// Quote computes a totals preview for a cart session and an
	// optional coupon code. It has no side effects: nothing is
	// persisted and coupon usage is not recorded. A rejected coupon
	// is reported in the response, not as an error.
	Quote(ctx context.Context, sessionID string, couponCode *string) (*model.QuoteResponse, error)

	// PlaceOrder validates the cart and coupon, persists the order
	// with its frozen totals, records the coupon use and clears the
	// cart.
	PlaceOrder(ctx context.Context, sessionID string, couponCode *string) (*model.OrderResponse, error)

	// GetOrder retrieves a placed order with its lines.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}
