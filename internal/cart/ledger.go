package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"masala-kart/internal/kv"
	"masala-kart/internal/model"

	"github.com/rs/zerolog"
)

const storageKeyPrefix = "cart:"

// Ledger owns the ordered line collection for one cart session.
// It is the single source of truth for the in-memory lines; the
// key-value store is a write-through side effect, persisted on every
// mutation before the call returns.
type Ledger struct {
	store  kv.Store
	key    string
	logger zerolog.Logger
	lines  []model.CartLine
}

// Load restores the ledger for a session from the key-value store.
// A missing or corrupt persisted cart yields an empty ledger, never
// an error.
func Load(ctx context.Context, store kv.Store, sessionID string, logger zerolog.Logger) *Ledger {
	l := &Ledger{
		store:  store,
		key:    storageKeyPrefix + sessionID,
		logger: logger.With().Str("component", "cart-ledger").Str("session_id", sessionID).Logger(),
	}

	raw, err := store.Get(ctx, l.key)
	if err != nil {
		return l
	}

	if err := json.Unmarshal([]byte(raw), &l.lines); err != nil {
		l.logger.Warn().Err(err).Msg("discarding corrupt persisted cart")
		l.lines = nil
	}

	return l
}

// identityKey builds the merge key for a line: name, spice level and
// the sorted add-on name/price pairs. Lines with equal keys are the
// same item and must merge, never duplicate.
func identityKey(name, spiceLevel string, addons []model.Addon) string {
	parts := make([]string, 0, len(addons))
	for _, a := range addons {
		parts = append(parts, fmt.Sprintf("%s:%d", a.Name, a.Price))
	}
	sort.Strings(parts)

	return name + "|" + spiceLevel + "|" + strings.Join(parts, ",")
}

// AddLine adds one unit of an item. If a line with the same identity
// key already exists its quantity is incremented; otherwise a new line
// is appended with quantity 1.
func (l *Ledger) AddLine(ctx context.Context, name string, price int, spiceLevel string, addons []model.Addon) {
	key := identityKey(name, spiceLevel, addons)

	for i := range l.lines {
		if identityKey(l.lines[i].Name, l.lines[i].SpiceLevel, l.lines[i].Addons) == key {
			l.lines[i].Quantity++
			l.save(ctx)
			return
		}
	}

	line := model.CartLine{
		Name:       name,
		Price:      price,
		Quantity:   1,
		SpiceLevel: spiceLevel,
	}
	if len(addons) > 0 {
		line.Addons = make([]model.Addon, len(addons))
		copy(line.Addons, addons)
	}

	l.lines = append(l.lines, line)
	l.save(ctx)
}

// UpdateQuantity adds delta to the quantity of the line at index.
// An out-of-range index is a no-op and returns false. A resulting
// quantity of zero or less removes the line entirely.
func (l *Ledger) UpdateQuantity(ctx context.Context, index, delta int) bool {
	if index < 0 || index >= len(l.lines) {
		l.logger.Debug().Int("index", index).Msg("quantity update for out-of-range index ignored")
		return false
	}

	l.lines[index].Quantity += delta
	if l.lines[index].Quantity <= 0 {
		l.lines = append(l.lines[:index], l.lines[index+1:]...)
	}

	l.save(ctx)
	return true
}

// RemoveLine deletes the line at index. An out-of-range index is a
// no-op and returns false.
func (l *Ledger) RemoveLine(ctx context.Context, index int) bool {
	if index < 0 || index >= len(l.lines) {
		l.logger.Debug().Int("index", index).Msg("removal of out-of-range index ignored")
		return false
	}

	l.lines = append(l.lines[:index], l.lines[index+1:]...)
	l.save(ctx)
	return true
}

// Clear empties the ledger, e.g. after a successful order placement.
func (l *Ledger) Clear(ctx context.Context) {
	l.lines = nil
	l.save(ctx)
}

// Lines returns a copy of the current line collection.
func (l *Ledger) Lines() []model.CartLine {
	lines := make([]model.CartLine, len(l.lines))
	copy(lines, l.lines)
	return lines
}

// Len returns the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Subtotal sums (unit price + add-on prices) x quantity over all lines.
func (l *Ledger) Subtotal() int {
	subtotal := 0
	for _, line := range l.lines {
		subtotal += line.LineTotal()
	}
	return subtotal
}

// save serializes the full line collection to the store. Persistence
// failures are logged and absorbed; the in-memory ledger remains the
// source of truth.
func (l *Ledger) save(ctx context.Context) {
	data, err := json.Marshal(l.lines)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to serialize cart")
		return
	}

	if err := l.store.Set(ctx, l.key, string(data)); err != nil {
		l.logger.Warn().Err(err).Msg("failed to persist cart")
	}
}
