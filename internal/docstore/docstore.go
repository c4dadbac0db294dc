package docstore

import "context"

// Condition is one field predicate in a query.
type Condition struct {
	Field string
	Op    string // one of ==, !=, <, <=, >, >=
	Value any
}

// QueryOptions narrows and orders a collection read.
type QueryOptions struct {
	Where      []Condition
	OrderBy    string
	Descending bool
	Limit      int
}

// Document is one record in a collection.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store is a read surface over named document collections. The core
// treats it purely as an async read source; writes happen elsewhere.
type Store interface {
	// GetAll fetches the documents of a collection matching the query
	// options, in query order.
	GetAll(ctx context.Context, collection string, opts QueryOptions) ([]Document, error)
}

// Where is a convenience constructor for a single-condition query.
func Where(field, op string, value any) QueryOptions {
	return QueryOptions{Where: []Condition{{Field: field, Op: op, Value: value}}}
}
