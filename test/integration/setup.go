package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"masala-kart/internal/config"
	"masala-kart/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	dbConfig := config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		// Try with connection string directly
		poolConfig, parseErr := pgxpool.ParseConfig(connStr)
		if parseErr != nil {
			t.Fatalf("failed to parse connection string: %v", parseErr)
		}
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			t.Fatalf("failed to create connection pool: %v", err)
		}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
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

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedMenuDocuments inserts test menu and specials documents.
func SeedMenuDocuments(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	docs := []struct {
		collection string
		id         string
		data       map[string]any
	}{
		{"menu_items", "biryani-chicken", map[string]any{
			"name": "Chicken Biryani", "price": 249, "category": "mains", "veg": false,
			"description": "Hyderabadi style with raita",
		}},
		{"menu_items", "dosa-masala", map[string]any{
			"name": "Masala Dosa", "price": 149, "category": "mains", "veg": true,
		}},
		{"menu_items", "lassi-mango", map[string]any{
			"name": "Mango Lassi", "price": 60, "category": "beverages", "veg": true,
		}},
		{"specials", "thali-festive", map[string]any{
			"name": "Festive Thali", "price": 400, "category": "combos", "veg": true, "active": true,
		}},
		{"specials", "thali-retired", map[string]any{
			"name": "Retired Thali", "price": 350, "category": "combos", "veg": true, "active": false,
		}},
	}

	for _, doc := range docs {
		payload, err := json.Marshal(doc.data)
		if err != nil {
			t.Fatalf("failed to marshal document %s: %v", doc.id, err)
		}
		_, err = pool.Exec(ctx,
			"INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)",
			doc.collection, doc.id, payload,
		)
		if err != nil {
			t.Fatalf("failed to seed document %s: %v", doc.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_lines", "orders", "documents"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
