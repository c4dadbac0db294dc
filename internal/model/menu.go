package model

// MenuItem represents a dish on the menu.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Veg         bool   `json:"veg"`
	Description string `json:"description,omitempty"`
}
