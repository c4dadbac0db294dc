package model

import "time"

// CouponType distinguishes how a coupon discount is computed.
type CouponType string

const (
	// CouponTypePercent discounts a percentage of the subtotal.
	CouponTypePercent CouponType = "percent"

	// CouponTypeFlat discounts a fixed rupee amount.
	CouponTypeFlat CouponType = "flat"
)

// Coupon is a discount rule. Optional constraints are pointers so that
// an absent field (no expiry, no usage cap) is distinguishable from zero.
// Coupons are immutable once handed to validation.
type Coupon struct {
	Code        string     `json:"code"`
	Active      bool       `json:"active"`
	Type        CouponType `json:"type"`
	Discount    int        `json:"discount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UsageLimit  *int       `json:"usageLimit,omitempty"`
	UsedCount   int        `json:"usedCount"`
	MinOrder    *int       `json:"minOrder,omitempty"`
	MaxDiscount *int       `json:"maxDiscount,omitempty"`
}
