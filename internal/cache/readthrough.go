package cache

import (
	"context"
	"encoding/json"
	"time"

	"masala-kart/internal/docstore"
	"masala-kart/internal/kv"

	"github.com/rs/zerolog"
)

const cacheKeyPrefix = "cache:"

// entry is the persisted cache record: fetch timestamp plus the
// transformed payload.
type entry struct {
	TS   int64           `json:"ts"` // epoch milliseconds
	Data json.RawMessage `json:"data"`
}

// ReadThrough wraps collection fetches with a TTL cache and a
// stale-on-error fallback. The clock is injectable so TTL behaviour
// is testable without real timers.
type ReadThrough struct {
	store  kv.Store
	docs   docstore.Store
	clock  func() time.Time
	logger zerolog.Logger
}

// NewReadThrough creates the helper. A nil docs handle is allowed and
// turns every fetch into a silent no-op (e.g. offline at startup).
// A nil clock defaults to time.Now.
func NewReadThrough(store kv.Store, docs docstore.Store, clock func() time.Time, logger zerolog.Logger) *ReadThrough {
	if clock == nil {
		clock = time.Now
	}
	return &ReadThrough{
		store:  store,
		docs:   docs,
		clock:  clock,
		logger: logger.With().Str("component", "read-through-cache").Logger(),
	}
}

// Fetch resolves a collection read through the cache:
//
//  1. no remote handle: return without rendering;
//  2. cache entry younger than ttl: render it, no remote call;
//  3. otherwise fetch once, transform, render and cache the result;
//  4. on fetch failure, render the existing entry regardless of age,
//     or render nothing when there is none.
//
// render is invoked at most once per call.
func Fetch[T any](
	ctx context.Context,
	rt *ReadThrough,
	collection, cacheKey string,
	ttl time.Duration,
	opts docstore.QueryOptions,
	transform func([]docstore.Document) T,
	render func(T),
) {
	if rt.docs == nil {
		rt.logger.Debug().Str("collection", collection).Msg("no remote handle configured, skipping fetch")
		return
	}

	now := rt.clock()
	key := cacheKeyPrefix + cacheKey

	cached := rt.readEntry(ctx, key)
	if cached != nil && now.UnixMilli()-cached.TS < ttl.Milliseconds() {
		var data T
		if err := json.Unmarshal(cached.Data, &data); err == nil {
			render(data)
			return
		}
		rt.logger.Warn().Str("key", cacheKey).Msg("discarding corrupt cache payload")
		cached = nil
	}

	docs, err := rt.docs.GetAll(ctx, collection, opts)
	if err != nil {
		rt.logger.Warn().Err(err).Str("collection", collection).Msg("fetch failed")
		if cached != nil {
			var data T
			if unmarshalErr := json.Unmarshal(cached.Data, &data); unmarshalErr == nil {
				rt.logger.Info().Str("key", cacheKey).Msg("serving stale cache entry")
				render(data)
			}
		}
		return
	}

	data := transform(docs)
	render(data)
	rt.writeEntry(ctx, key, now, data)
}

// readEntry returns the decoded cache entry for key, or nil. Corrupt
// entries are treated as absence.
func (rt *ReadThrough) readEntry(ctx context.Context, key string) *entry {
	raw, err := rt.store.Get(ctx, key)
	if err != nil {
		return nil
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		rt.logger.Warn().Str("key", key).Msg("discarding corrupt cache entry")
		return nil
	}
	return &e
}

// writeEntry persists the freshly fetched payload. Failures are
// absorbed: the render already happened and the next call simply
// fetches again.
func (rt *ReadThrough) writeEntry(ctx context.Context, key string, now time.Time, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		rt.logger.Warn().Err(err).Str("key", key).Msg("failed to serialize cache payload")
		return
	}

	raw, err := json.Marshal(entry{TS: now.UnixMilli(), Data: payload})
	if err != nil {
		rt.logger.Warn().Err(err).Str("key", key).Msg("failed to serialize cache entry")
		return
	}

	if err := rt.store.Set(ctx, key, string(raw)); err != nil {
		rt.logger.Warn().Err(err).Str("key", key).Msg("failed to persist cache entry")
	}
}
