// Package query describes requests against the hosted database in a
// transport-neutral way.
//
// A Query is a small, fluent description of one round trip: which table,
// which columns, which filters, how to order and page the rows, and whether
// an exact row count should come back with (or instead of) the rows. The
// repository layer only ever builds Query values and hands them to a Client;
// how the Client turns them into SQL (or anything else) is its own business.
//
// Supported shapes:
//   - select with filters: equality, case-insensitive pattern (ILIKE),
//     not-null and greater-or-equal
//   - ordering by one or more columns, ascending or descending
//   - inclusive range / limit pagination
//   - exact count, optionally "head only" (count without rows)
//   - insert of a single row, optionally returning the stored row
package query

import (
	"context"
	"fmt"
	"regexp"
	"sort"
)

// Kind distinguishes reads from writes.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
)

// Operator is a filter comparison.
type Operator string

const (
	OpEq      Operator = "eq"
	OpILike   Operator = "ilike"
	OpNotNull Operator = "not_null"
	OpGte     Operator = "gte"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter restricts the rows a query touches.
// Value is ignored for OpNotNull.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Ordering sorts the returned rows by a single column.
type Ordering struct {
	Column    string
	Direction Direction
}

// Row is a raw record as returned by the database, keyed by column name.
// It is decoded into a typed model at the repository boundary.
type Row map[string]any

// Response is the outcome of a successful Execute.
//
// Rows is nil for head-only queries. Count is nil unless the query asked
// for an exact count.
type Response struct {
	Rows  []Row
	Count *int64
}

// Client runs a Query and returns the raw response.
type Client interface {
	Execute(ctx context.Context, q *Query) (*Response, error)
}

// Query is a single request description. Build it with From or Insert and
// the chained methods below; the zero value is not useful.
type Query struct {
	Table   string
	Kind    Kind
	Columns []string
	Filters []Filter
	Orders  []Ordering

	// Offset and Limit page the result. Limit 0 means "no limit".
	Offset int
	Limit  int

	// CountRows asks for an exact count of the rows matching Filters,
	// independent of Offset/Limit.
	CountRows bool

	// HeadOnly suppresses the rows; only Count is returned.
	HeadOnly bool

	// Values holds the column values of an insert.
	Values map[string]any

	// ReturnRow makes an insert return the stored row.
	ReturnRow bool
}

// From starts a select against table. Without Select every column is read.
func From(table string) *Query {
	return &Query{Table: table, Kind: KindSelect}
}

// Insert starts an insert of a single row into table.
func Insert(table string, values map[string]any) *Query {
	return &Query{Table: table, Kind: KindInsert, Values: values}
}

// Select limits the columns read.
func (q *Query) Select(columns ...string) *Query {
	q.Columns = append(q.Columns, columns...)
	return q
}

// Eq keeps rows whose column equals value.
func (q *Query) Eq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

// ILike keeps rows whose column matches the SQL LIKE pattern, ignoring case.
// The caller decides whether to wrap the pattern in % wildcards.
func (q *Query) ILike(column, pattern string) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpILike, Value: pattern})
	return q
}

// NotNull keeps rows whose column is not NULL.
func (q *Query) NotNull(column string) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpNotNull})
	return q
}

// Gte keeps rows whose column is greater than or equal to value.
func (q *Query) Gte(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpGte, Value: value})
	return q
}

// Order appends a sort key.
func (q *Query) Order(column string, dir Direction) *Query {
	q.Orders = append(q.Orders, Ordering{Column: column, Direction: dir})
	return q
}

// Range pages the result to the inclusive row interval [from, to].
func (q *Query) Range(from, to int) *Query {
	q.Offset = from
	q.Limit = to - from + 1
	return q
}

// Take caps the number of returned rows.
func (q *Query) Take(n int) *Query {
	q.Limit = n
	return q
}

// CountExact requests an exact count of matching rows.
func (q *Query) CountExact() *Query {
	q.CountRows = true
	return q
}

// Head turns the query into a count-only request. It implies CountExact.
func (q *Query) Head() *Query {
	q.HeadOnly = true
	q.CountRows = true
	return q
}

// Returning makes an insert return the stored row.
func (q *Query) Returning() *Query {
	q.ReturnRow = true
	return q
}

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidIdentifier reports whether name is safe to use as a table or column
// name without further escaping.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Validate checks that the query is well formed: known kind, safe
// identifiers, sane paging and a non-empty insert.
func (q *Query) Validate() error {
	if !ValidIdentifier(q.Table) {
		return fmt.Errorf("invalid table name %q", q.Table)
	}

	for _, c := range q.Columns {
		if c != "*" && !ValidIdentifier(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	for _, f := range q.Filters {
		if !ValidIdentifier(f.Column) {
			return fmt.Errorf("invalid filter column %q", f.Column)
		}
		switch f.Op {
		case OpEq, OpILike, OpNotNull, OpGte:
		default:
			return fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	for _, o := range q.Orders {
		if !ValidIdentifier(o.Column) {
			return fmt.Errorf("invalid order column %q", o.Column)
		}
		if o.Direction != Asc && o.Direction != Desc {
			return fmt.Errorf("invalid order direction %q", o.Direction)
		}
	}
	if q.Offset < 0 || q.Limit < 0 {
		return fmt.Errorf("invalid range: offset %d, limit %d", q.Offset, q.Limit)
	}

	switch q.Kind {
	case KindSelect:
	case KindInsert:
		if len(q.Values) == 0 {
			return fmt.Errorf("insert into %s has no values", q.Table)
		}
		for c := range q.Values {
			if !ValidIdentifier(c) {
				return fmt.Errorf("invalid insert column %q", c)
			}
		}
	default:
		return fmt.Errorf("unknown query kind %d", q.Kind)
	}

	return nil
}

// InsertColumns returns the insert's column names in a stable order.
func (q *Query) InsertColumns() []string {
	cols := make([]string, 0, len(q.Values))
	for c := range q.Values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
