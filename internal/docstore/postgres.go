package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store over a documents table holding one
// JSONB payload per (collection, id) pair.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed document store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "docstore").Logger(),
	}
}

var fieldNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var operators = map[string]string{
	"==": "=",
	"!=": "<>",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

// GetAll fetches matching documents. Field names are restricted to
// identifier characters because they are interpolated into the JSONB
// accessor; values always travel as bind parameters.
func (s *postgresStore) GetAll(ctx context.Context, collection string, opts QueryOptions) ([]Document, error) {
	var sb strings.Builder
	sb.WriteString("SELECT id, data FROM documents WHERE collection = $1")

	args := []any{collection}
	for _, cond := range opts.Where {
		if !fieldNamePattern.MatchString(cond.Field) {
			return nil, fmt.Errorf("invalid query field name: %q", cond.Field)
		}
		op, ok := operators[cond.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported query operator: %q", cond.Op)
		}
		args = append(args, fmt.Sprintf("%v", cond.Value))
		fmt.Fprintf(&sb, " AND data->>'%s' %s $%d", cond.Field, op, len(args))
	}

	if opts.OrderBy != "" {
		if !fieldNamePattern.MatchString(opts.OrderBy) {
			return nil, fmt.Errorf("invalid order-by field name: %q", opts.OrderBy)
		}
		fmt.Fprintf(&sb, " ORDER BY data->>'%s'", opts.OrderBy)
		if opts.Descending {
			sb.WriteString(" DESC")
		}
	} else {
		sb.WriteString(" ORDER BY id")
	}

	if opts.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", opts.Limit)
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to query documents")
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan document row")
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal(data, &fields); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("failed to decode document payload")
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}

		docs = append(docs, Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	s.logger.Debug().
		Str("collection", collection).
		Int("count", len(docs)).
		Msg("documents fetched")

	return docs, nil
}
