package coupon

import (
	"testing"
	"time"

	"masala-kart/internal/model"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		coupon     *model.Coupon
		subtotal   int
		wantValid  bool
		wantReason string
	}{
		{
			name:       "nil coupon",
			coupon:     nil,
			subtotal:   500,
			wantValid:  false,
			wantReason: ReasonNotActive,
		},
		{
			name:       "inactive coupon",
			coupon:     &model.Coupon{Code: "OLD10", Active: false, Type: model.CouponTypePercent, Discount: 10},
			subtotal:   500,
			wantValid:  false,
			wantReason: ReasonNotActive,
		},
		{
			name: "expired coupon",
			coupon: &model.Coupon{
				Code:      "GONE20",
				Active:    true,
				Type:      model.CouponTypePercent,
				Discount:  20,
				ExpiresAt: timePtr(now.Add(-time.Hour)),
			},
			subtotal:   500,
			wantValid:  false,
			wantReason: ReasonExpired,
		},
		{
			name: "expiry in the future is fine",
			coupon: &model.Coupon{
				Code:      "FRESH20",
				Active:    true,
				Type:      model.CouponTypePercent,
				Discount:  20,
				ExpiresAt: timePtr(now.Add(time.Hour)),
			},
			subtotal:  500,
			wantValid: true,
		},
		{
			name: "usage limit reached",
			coupon: &model.Coupon{
				Code:       "CAPPED",
				Active:     true,
				Type:       model.CouponTypeFlat,
				Discount:   50,
				UsageLimit: intPtr(10),
				UsedCount:  10,
			},
			subtotal:   500,
			wantValid:  false,
			wantReason: ReasonUsageLimit,
		},
		{
			name: "one use remaining",
			coupon: &model.Coupon{
				Code:       "LASTONE",
				Active:     true,
				Type:       model.CouponTypeFlat,
				Discount:   50,
				UsageLimit: intPtr(10),
				UsedCount:  9,
			},
			subtotal:  500,
			wantValid: true,
		},
		{
			name: "below minimum order",
			coupon: &model.Coupon{
				Code:     "BIG100",
				Active:   true,
				Type:     model.CouponTypeFlat,
				Discount: 100,
				MinOrder: intPtr(300),
			},
			subtotal:   299,
			wantValid:  false,
			wantReason: ReasonBelowMinOrder,
		},
		{
			name: "exactly at minimum order",
			coupon: &model.Coupon{
				Code:     "BIG100",
				Active:   true,
				Type:     model.CouponTypeFlat,
				Discount: 100,
				MinOrder: intPtr(300),
			},
			subtotal:  300,
			wantValid: true,
		},
		{
			name: "inactive wins over expiry as the reported reason",
			coupon: &model.Coupon{
				Code:      "DEAD",
				Active:    false,
				Type:      model.CouponTypePercent,
				Discount:  20,
				ExpiresAt: timePtr(now.Add(-time.Hour)),
			},
			subtotal:   500,
			wantValid:  false,
			wantReason: ReasonNotActive,
		},
		{
			name:      "no optional constraints",
			coupon:    &model.Coupon{Code: "SIMPLE", Active: true, Type: model.CouponTypePercent, Discount: 10},
			subtotal:  1,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.coupon, tt.subtotal, now)

			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestValidate_DoesNotMutateCoupon(t *testing.T) {
	now := time.Now()
	c := &model.Coupon{
		Code:       "FROZEN",
		Active:     true,
		Type:       model.CouponTypePercent,
		Discount:   20,
		UsageLimit: intPtr(5),
		UsedCount:  2,
	}

	before := *c
	Validate(c, 500, now)

	assert.Equal(t, before, *c)
}

func TestCalcDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   *model.Coupon
		subtotal int
		want     int
	}{
		{
			name:     "nil coupon",
			coupon:   nil,
			subtotal: 500,
			want:     0,
		},
		{
			name:     "percent rounds down",
			coupon:   &model.Coupon{Type: model.CouponTypePercent, Discount: 20},
			subtotal: 498,
			want:     99,
		},
		{
			name:     "percent capped at max discount",
			coupon:   &model.Coupon{Type: model.CouponTypePercent, Discount: 50, MaxDiscount: intPtr(120)},
			subtotal: 1000,
			want:     120,
		},
		{
			name:     "percent below max discount untouched",
			coupon:   &model.Coupon{Type: model.CouponTypePercent, Discount: 10, MaxDiscount: intPtr(120)},
			subtotal: 500,
			want:     50,
		},
		{
			name:     "flat discount",
			coupon:   &model.Coupon{Type: model.CouponTypeFlat, Discount: 100},
			subtotal: 500,
			want:     100,
		},
		{
			name:     "flat discount capped at subtotal",
			coupon:   &model.Coupon{Type: model.CouponTypeFlat, Discount: 100},
			subtotal: 30,
			want:     30,
		},
		{
			name:     "zero subtotal",
			coupon:   &model.Coupon{Type: model.CouponTypePercent, Discount: 20},
			subtotal: 0,
			want:     0,
		},
		{
			name:     "negative discount clamps to zero",
			coupon:   &model.Coupon{Type: model.CouponTypeFlat, Discount: -10},
			subtotal: 500,
			want:     0,
		},
		{
			name:     "over-100 percent clamps to subtotal",
			coupon:   &model.Coupon{Type: model.CouponTypePercent, Discount: 150},
			subtotal: 500,
			want:     500,
		},
		{
			name:     "unknown type yields nothing",
			coupon:   &model.Coupon{Type: "bogus", Discount: 50},
			subtotal: 500,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcDiscount(tt.coupon, tt.subtotal)

			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, max(tt.subtotal, 0))
		})
	}
}

func TestCalcDiscount_IgnoresValidationState(t *testing.T) {
	// Calculation is decoupled from validation so callers can preview
	// a discount for a coupon that would be rejected.
	c := &model.Coupon{Type: model.CouponTypePercent, Discount: 20, Active: false}

	assert.Equal(t, 99, CalcDiscount(c, 498))
}
