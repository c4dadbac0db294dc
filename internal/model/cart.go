package model

// Addon represents an optional extra attached to a cart line.
type Addon struct {
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"gte=0"`
}

// CartLine represents one distinct entry in a cart.
// Prices are whole rupees; there is no minor unit.
type CartLine struct {
	Name       string  `json:"name"`
	Price      int     `json:"price"`
	Quantity   int     `json:"quantity"`
	SpiceLevel string  `json:"spiceLevel,omitempty"`
	Addons     []Addon `json:"addons,omitempty"`
}

// LineTotal returns the line contribution to the cart subtotal:
// (unit price + add-on prices) multiplied by quantity.
func (l CartLine) LineTotal() int {
	unit := l.Price
	for _, a := range l.Addons {
		unit += a.Price
	}
	return unit * l.Quantity
}

// CheckoutTotals is the structured breakdown returned by the totalizer.
// Invariant: Total = Subtotal + DeliveryFee - Discount, with
// 0 <= Discount <= Subtotal and Total >= 0.
type CheckoutTotals struct {
	Subtotal    int `json:"subtotal"`
	DeliveryFee int `json:"deliveryFee"`
	Discount    int `json:"discount"`
	Total       int `json:"total"`
}
