package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a placed customer order with its frozen totals.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SessionID   string    `json:"sessionId" db:"session_id"`
	CouponCode  *string   `json:"couponCode,omitempty" db:"coupon_code"`
	Subtotal    int       `json:"subtotal" db:"subtotal"`
	DeliveryFee int       `json:"deliveryFee" db:"delivery_fee"`
	Discount    int       `json:"discount" db:"discount"`
	Total       int       `json:"total" db:"total"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderLine is a cart line frozen into a placed order.
type OrderLine struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	Name       string    `json:"name" db:"name"`
	UnitPrice  int       `json:"unitPrice" db:"unit_price"`
	Quantity   int       `json:"quantity" db:"quantity"`
	SpiceLevel string    `json:"spiceLevel,omitempty" db:"spice_level"`
	Addons     []Addon   `json:"addons,omitempty" db:"addons"`
}

// AddItemRequest is the payload for adding a line to a cart.
type AddItemRequest struct {
	Name       string  `json:"name" validate:"required"`
	Price      int     `json:"price" validate:"gt=0"`
	SpiceLevel string  `json:"spiceLevel"`
	Addons     []Addon `json:"addons" validate:"dive"`
}

// UpdateQuantityRequest adjusts a line quantity by a signed delta.
// A zero delta is rejected as meaningless.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CheckoutRequest is the payload for quoting or placing an order.
type CheckoutRequest struct {
	CouponCode *string `json:"couponCode,omitempty"`
}

// QuoteResponse carries a totals preview plus the coupon verdict.
type QuoteResponse struct {
	Totals       CheckoutTotals `json:"totals"`
	CouponValid  bool           `json:"couponValid"`
	CouponReason string         `json:"couponReason,omitempty"`
}

// OrderResponse is the payload returned after placing or fetching an order.
type OrderResponse struct {
	Order Order       `json:"order"`
	Lines []OrderLine `json:"lines"`
}
