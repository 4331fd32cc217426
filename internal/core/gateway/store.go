package gateway

import "context"

// Op represents a filter operator.
type Op string

const (
	// OpEq matches rows where the column equals the value.
	OpEq Op = "eq"
	// OpILike matches rows with a case-insensitive pattern match.
	OpILike Op = "ilike"
	// OpGte matches rows where the column is greater than or equal to the value.
	OpGte Op = "gte"
	// OpLt matches rows where the column is strictly less than the value.
	OpLt Op = "lt"
)

// Filter is one column predicate in a query.
type Filter struct {
	Column string
	Op     Op
	Value  string
}

// Order describes the sort order of a query result.
type Order struct {
	Column     string
	Descending bool
}

// Query describes one declarative read against a gateway table.
type Query struct {
	Table string

	// Select is the column projection, including join-like expansions of
	// referenced tables. Empty means all columns.
	Select string

	// Filters are AND-combined predicates.
	Filters []Filter

	// Or is an OR-combined predicate group, applied in addition to Filters.
	Or []Filter

	Order *Order
	Limit int

	// Single requests exactly one row; the read fails if zero or more than
	// one row matches.
	Single bool
}

// Store is the declarative query interface over the gateway's relational
// storage. Results are decoded into dest, which must be a pointer to a slice
// for multi-row reads or to a struct for single-row reads and writes.
type Store interface {
	// Select executes a read query and decodes the rows into dest.
	Select(ctx context.Context, q Query, dest interface{}) error

	// Insert creates a single row and decodes the created row into dest.
	Insert(ctx context.Context, table string, payload interface{}, dest interface{}) error

	// Update modifies the row with the given id and decodes the updated row
	// into dest.
	Update(ctx context.Context, table, id string, payload interface{}, dest interface{}) error

	// Count returns the number of rows matching the filters without
	// transferring them.
	Count(ctx context.Context, table string, filters []Filter) (int64, error)
}
