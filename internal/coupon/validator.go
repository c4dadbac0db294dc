package coupon

import (
	"time"

	"masala-kart/internal/model"
)

// Rejection reasons returned by Validate.
const (
	ReasonNotActive     = "coupon is not active"
	ReasonExpired       = "coupon has expired"
	ReasonUsageLimit    = "coupon usage limit reached"
	ReasonBelowMinOrder = "order is below the minimum order amount"
)

// Validate checks a coupon against the order context. Each precondition
// is independent; the first failing one, checked in the order
// active -> expired -> usage limit -> minimum order, supplies the
// reason. The coupon is never mutated.
func Validate(c *model.Coupon, subtotal int, now time.Time) Result {
	if c == nil || !c.Active {
		return Result{Valid: false, Reason: ReasonNotActive}
	}

	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return Result{Valid: false, Reason: ReasonExpired}
	}

	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return Result{Valid: false, Reason: ReasonUsageLimit}
	}

	if c.MinOrder != nil && subtotal < *c.MinOrder {
		return Result{Valid: false, Reason: ReasonBelowMinOrder}
	}

	return Result{Valid: true}
}

// CalcDiscount computes the discount a coupon yields on a subtotal.
// It does not validate the coupon; callers validate separately so a
// preview can be shown for a not-yet-accepted code. The result is
// always within [0, subtotal].
func CalcDiscount(c *model.Coupon, subtotal int) int {
	if c == nil || subtotal <= 0 {
		return 0
	}

	var discount int
	switch c.Type {
	case model.CouponTypePercent:
		discount = subtotal * c.Discount / 100
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	case model.CouponTypeFlat:
		discount = c.Discount
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}
