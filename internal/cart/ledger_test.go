package cart

import (
	"context"
	"testing"

	"masala-kart/internal/kv"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, kv.Store) {
	t.Helper()
	store := kv.NewMemoryStore()
	return Load(context.Background(), store, "test-session", zerolog.Nop()), store
}

func TestLedger_AddLine_MergesIdenticalItems(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", nil)
	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", nil)

	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, 2, ledger.Lines()[0].Quantity)
}

func TestLedger_AddLine_SpiceLevelSplitsIdentity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", nil)
	ledger.AddLine(ctx, "Chicken Biryani", 249, "hot", nil)

	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_AddLine_AddonOrderDoesNotSplitIdentity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Paneer Tikka", 199, "mild", []model.Addon{
		{Name: "Extra Cheese", Price: 30},
		{Name: "Raita", Price: 20},
	})
	ledger.AddLine(ctx, "Paneer Tikka", 199, "mild", []model.Addon{
		{Name: "Raita", Price: 20},
		{Name: "Extra Cheese", Price: 30},
	})

	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, 2, ledger.Lines()[0].Quantity)
}

func TestLedger_AddLine_DifferentAddonPriceSplitsIdentity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Paneer Tikka", 199, "mild", []model.Addon{{Name: "Raita", Price: 20}})
	ledger.AddLine(ctx, "Paneer Tikka", 199, "mild", []model.Addon{{Name: "Raita", Price: 25}})

	assert.Equal(t, 2, ledger.Len())
}

func TestLedger_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name         string
		delta        int
		wantApplied  bool
		wantLen      int
		wantQuantity int
	}{
		{
			name:         "increment",
			delta:        1,
			wantApplied:  true,
			wantLen:      1,
			wantQuantity: 3,
		},
		{
			name:         "decrement",
			delta:        -1,
			wantApplied:  true,
			wantLen:      1,
			wantQuantity: 1,
		},
		{
			name:        "decrement to zero removes line",
			delta:       -2,
			wantApplied: true,
			wantLen:     0,
		},
		{
			name:        "large negative delta removes line",
			delta:       -10,
			wantApplied: true,
			wantLen:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, _ := newTestLedger(t)
			ctx := context.Background()

			ledger.AddLine(ctx, "Masala Dosa", 149, "", nil)
			ledger.AddLine(ctx, "Masala Dosa", 149, "", nil)

			applied := ledger.UpdateQuantity(ctx, 0, tt.delta)

			assert.Equal(t, tt.wantApplied, applied)
			require.Equal(t, tt.wantLen, ledger.Len())
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantQuantity, ledger.Lines()[0].Quantity)
			}
		})
	}
}

func TestLedger_UpdateQuantity_OutOfRangeIsNoOp(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Masala Dosa", 149, "", nil)

	assert.False(t, ledger.UpdateQuantity(ctx, -1, 1))
	assert.False(t, ledger.UpdateQuantity(ctx, 1, 1))
	assert.Equal(t, 1, ledger.Len())
	assert.Equal(t, 1, ledger.Lines()[0].Quantity)
}

func TestLedger_RemoveLine(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Masala Dosa", 149, "", nil)
	ledger.AddLine(ctx, "Filter Coffee", 60, "", nil)

	assert.True(t, ledger.RemoveLine(ctx, 0))
	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, "Filter Coffee", ledger.Lines()[0].Name)

	assert.False(t, ledger.RemoveLine(ctx, 5))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_Subtotal_IncludesAddons(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", []model.Addon{{Name: "Raita", Price: 20}})
	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", []model.Addon{{Name: "Raita", Price: 20}})
	ledger.AddLine(ctx, "Filter Coffee", 60, "", nil)

	// (249+20)*2 + 60
	assert.Equal(t, 598, ledger.Subtotal())
}

func TestLedger_PersistsAndRestores(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	ledger := Load(ctx, store, "session-1", zerolog.Nop())
	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", nil)
	ledger.AddLine(ctx, "Chicken Biryani", 249, "medium", nil)

	restored := Load(ctx, store, "session-1", zerolog.Nop())
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, 2, restored.Lines()[0].Quantity)
	assert.Equal(t, 498, restored.Subtotal())
}

func TestLedger_LoadCorruptDataYieldsEmptyCart(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:session-1", "{not json"))

	ledger := Load(ctx, store, "session-1", zerolog.Nop())
	assert.Equal(t, 0, ledger.Len())
	assert.Equal(t, 0, ledger.Subtotal())
}

func TestLedger_SessionsAreIsolated(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	first := Load(ctx, store, "session-1", zerolog.Nop())
	first.AddLine(ctx, "Masala Dosa", 149, "", nil)

	second := Load(ctx, store, "session-2", zerolog.Nop())
	assert.Equal(t, 0, second.Len())
}
