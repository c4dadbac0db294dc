package checkout

import (
	"masala-kart/internal/coupon"
	"masala-kart/internal/model"
)

// Totalizer computes the checkout breakdown from a subtotal and an
// optional coupon. It is a pure projection with no side effects.
type Totalizer struct {
	// FreeDeliveryThreshold is the subtotal at which delivery is free.
	FreeDeliveryThreshold int

	// DeliveryFee is charged below the threshold.
	DeliveryFee int
}

// Totals applies delivery-fee waiver logic and the coupon discount.
// It trusts the caller to have validated the coupon but still honours
// the active flag as a final guard; a nil or inactive coupon yields
// zero discount. The discount cap in CalcDiscount keeps the total
// non-negative.
func (t Totalizer) Totals(subtotal int, c *model.Coupon) model.CheckoutTotals {
	fee := 0
	if subtotal < t.FreeDeliveryThreshold {
		fee = t.DeliveryFee
	}

	discount := 0
	if c != nil && c.Active {
		discount = coupon.CalcDiscount(c, subtotal)
	}

	return model.CheckoutTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       subtotal + fee - discount,
	}
}
