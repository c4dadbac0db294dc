package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
)

// seed_data generates the local data files the API reads at startup
// (coupon book, loyalty tiers, happy-hour windows) and, when
// DATABASE_URL is set, creates the schema and seeds the documents
// table with a sample menu.
func main() {
	if err := writeCouponBook("data/coupons.json"); err != nil {
		log.Fatalf("Failed to write coupon book: %v", err)
	}

	if err := writeFile("config/loyalty.yaml", loyaltyYAML); err != nil {
		log.Fatalf("Failed to write loyalty tiers: %v", err)
	}

	if err := writeFile("config/happy_hour.yaml", happyHourYAML); err != nil {
		log.Fatalf("Failed to write happy-hour windows: %v", err)
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		if err := seedDatabase(dbURL); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		fmt.Println("Database schema created and menu documents seeded")
	} else {
		fmt.Println("DATABASE_URL not set, skipping database seed")
	}

	fmt.Println("Seed data generated successfully!")
}

type couponSeed struct {
	Code        string     `json:"code"`
	Active      bool       `json:"active"`
	Type        string     `json:"type"`
	Discount    int        `json:"discount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UsageLimit  *int       `json:"usageLimit,omitempty"`
	MinOrder    *int       `json:"minOrder,omitempty"`
	MaxDiscount *int       `json:"maxDiscount,omitempty"`
}

func writeCouponBook(path string) error {
	nextYear := time.Now().AddDate(1, 0, 0).UTC()
	limit100 := 100
	min300 := 300
	min200 := 200
	cap150 := 150

	coupons := []couponSeed{
		{Code: "WELCOME20", Active: true, Type: "percent", Discount: 20, MinOrder: &min300, MaxDiscount: &cap150},
		{Code: "FLAT50", Active: true, Type: "flat", Discount: 50, MinOrder: &min200},
		{Code: "DIWALI25", Active: true, Type: "percent", Discount: 25, ExpiresAt: &nextYear, UsageLimit: &limit100},
		{Code: "RETIRED10", Active: false, Type: "percent", Discount: 10},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(coupons, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal coupons: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Created %s with %d coupons\n", path, len(coupons))
	return nil
}

const loyaltyYAML = `tiers:
  - name: Bronze
    min: 0
    color: "#cd7f32"
    icon: medal
  - name: Silver
    min: 500
    color: "#c0c0c0"
    icon: medal
  - name: Gold
    min: 1000
    color: "#ffd700"
    icon: trophy
  - name: Platinum
    min: 2500
    color: "#e5e4e2"
    icon: crown
`

const happyHourYAML = `windows:
  - name: Weekday Afternoon
    days: [1, 2, 3, 4, 5]
    start_hour: 14
    end_hour: 17
    discount: 20
    categories: [starters, beverages]
  - name: Weekend Evening
    days: [0, 6]
    start_hour: 16
    end_hour: 19
    discount: 15
    categories: [starters, desserts]
  - name: Chai Time
    days: all
    start_hour: 7
    end_hour: 9
    discount: 10
    categories: [beverages]
`

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection VARCHAR(100) NOT NULL,
	id VARCHAR(100) NOT NULL,
	data JSONB NOT NULL,
	PRIMARY KEY (collection, id)
);

CREATE TABLE IF NOT EXISTS orders (
	id UUID PRIMARY KEY,
	session_id VARCHAR(100) NOT NULL,
	coupon_code VARCHAR(50),
	subtotal INTEGER NOT NULL,
	delivery_fee INTEGER NOT NULL,
	discount INTEGER NOT NULL,
	total INTEGER NOT NULL CHECK (total >= 0),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_lines (
	id UUID PRIMARY KEY,
	order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	name VARCHAR(255) NOT NULL,
	unit_price INTEGER NOT NULL,
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	spice_level VARCHAR(20),
	addons JSONB NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines(order_id);
CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders(session_id);
`

func seedDatabase(dbURL string) error {
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	menuItems := map[string]map[string]any{
		"biryani-chicken": {"name": "Chicken Biryani", "price": 249, "category": "mains", "veg": false, "description": "Hyderabadi style with raita"},
		"biryani-veg":     {"name": "Veg Biryani", "price": 199, "category": "mains", "veg": true},
		"dosa-masala":     {"name": "Masala Dosa", "price": 149, "category": "mains", "veg": true, "description": "With sambar and chutney"},
		"paneer-tikka":    {"name": "Paneer Tikka", "price": 179, "category": "starters", "veg": true},
		"samosa-plate":    {"name": "Samosa Plate", "price": 80, "category": "starters", "veg": true},
		"lassi-mango":     {"name": "Mango Lassi", "price": 60, "category": "beverages", "veg": true},
		"chai-masala":     {"name": "Masala Chai", "price": 40, "category": "beverages", "veg": true},
		"gulab-jamun":     {"name": "Gulab Jamun", "price": 90, "category": "desserts", "veg": true},
	}

	specials := map[string]map[string]any{
		"thali-festive": {"name": "Festive Thali", "price": 400, "category": "combos", "veg": true, "active": true, "description": "Full meal with dessert"},
		"combo-dosa":    {"name": "Dosa Combo", "price": 220, "category": "combos", "veg": true, "active": true},
		"thali-retired": {"name": "Retired Thali", "price": 350, "category": "combos", "veg": true, "active": false},
	}

	for collection, docs := range map[string]map[string]map[string]any{
		"menu_items": menuItems,
		"specials":   specials,
	} {
		for id, fields := range docs {
			payload, err := json.Marshal(fields)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", id, err)
			}
			_, err = conn.Exec(ctx,
				`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
				 ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
				collection, id, payload,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s/%s: %w", collection, id, err)
			}
		}
	}

	return nil
}
