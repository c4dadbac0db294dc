package integration

import (
	"context"
	"testing"
	"time"

	"masala-kart/internal/docstore"
	"masala-kart/internal/model"
	"masala-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	store := docstore.NewPostgresStore(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded menu items ordered by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenuDocuments(t, testDB.Pool)

		docs, err := store.GetAll(ctx, "menu_items", docstore.QueryOptions{OrderBy: "category"})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "lassi-mango", docs[0].ID) // beverages sorts before mains
		assert.Equal(t, "Mango Lassi", docs[0].Fields["name"])
	})

	t.Run("Where filters by field equality", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenuDocuments(t, testDB.Pool)

		docs, err := store.GetAll(ctx, "specials", docstore.Where("active", "==", true))
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "thali-festive", docs[0].ID)
	})

	t.Run("Limit caps the result set", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenuDocuments(t, testDB.Pool)

		docs, err := store.GetAll(ctx, "menu_items", docstore.QueryOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("Unknown collection yields no documents", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenuDocuments(t, testDB.Pool)

		docs, err := store.GetAll(ctx, "desserts", docstore.QueryOptions{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Invalid field name is rejected", func(t *testing.T) {
		_, err := store.GetAll(ctx, "menu_items", docstore.Where("name; DROP TABLE documents", "==", "x"))
		require.Error(t, err)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("CreateOrder and CreateOrderLines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Begin transaction
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		// Create order
		orderID := uuid.New()
		couponCode := "WELCOME20"
		now := time.Now().UTC()
		order := &model.Order{
			ID:          orderID,
			SessionID:   "table-7",
			CouponCode:  &couponCode,
			Subtotal:    498,
			DeliveryFee: 40,
			Discount:    99,
			Total:       439,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = repo.CreateOrder(ctx, tx, order)
		require.NoError(t, err)

		// Create order lines, one carrying add-ons
		lines := []model.OrderLine{
			{
				ID:         uuid.New(),
				OrderID:    orderID,
				Name:       "Chicken Biryani",
				UnitPrice:  249,
				Quantity:   2,
				SpiceLevel: "hot",
				Addons:     []model.Addon{{Name: "Raita", Price: 20}},
			},
			{
				ID:        uuid.New(),
				OrderID:   orderID,
				Name:      "Mango Lassi",
				UnitPrice: 60,
				Quantity:  1,
			},
		}

		err = repo.CreateOrderLines(ctx, tx, lines)
		require.NoError(t, err)

		// Commit transaction
		err = tx.Commit(ctx)
		require.NoError(t, err)

		// Verify order was created
		retrievedOrder, retrievedLines, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, retrievedOrder)
		assert.Equal(t, orderID, retrievedOrder.ID)
		assert.Equal(t, "table-7", retrievedOrder.SessionID)
		assert.Equal(t, &couponCode, retrievedOrder.CouponCode)
		assert.Equal(t, 439, retrievedOrder.Total)
		require.Len(t, retrievedLines, 2)

		for _, line := range retrievedLines {
			if line.Name == "Chicken Biryani" {
				require.Len(t, line.Addons, 1)
				assert.Equal(t, "Raita", line.Addons[0].Name)
				assert.Equal(t, 20, line.Addons[0].Price)
			}
		}
	})

	t.Run("GetByID returns nil for non-existent order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order, lines, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Nil(t, lines)
	})

	t.Run("Transaction rollback", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Begin transaction
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		// Create order
		orderID := uuid.New()
		now := time.Now().UTC()
		order := &model.Order{
			ID:          orderID,
			SessionID:   "table-9",
			Subtotal:    149,
			DeliveryFee: 40,
			Total:       189,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = repo.CreateOrder(ctx, tx, order)
		require.NoError(t, err)

		// Rollback transaction
		err = tx.Rollback(ctx)
		require.NoError(t, err)

		// Verify order was not persisted
		retrievedOrder, _, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, retrievedOrder)
	})
}
