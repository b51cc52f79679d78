package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deppfellow/reciters/internal/query"
)

// quote wraps an identifier in double quotes. Identifiers are checked by
// query.Validate before they get here.
func quote(name string) string {
	return `"` + name + `"`
}

// argList accumulates positional parameters ($1, $2, ...).
type argList struct {
	values []any
}

func (a *argList) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func buildWhere(filters []query.Filter, args *argList) string {
	if len(filters) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(filters))
	for _, f := range filters {
		col := quote(f.Column)
		switch f.Op {
		case query.OpEq:
			clauses = append(clauses, col+" = "+args.add(f.Value))
		case query.OpILike:
			clauses = append(clauses, col+" ILIKE "+args.add(f.Value))
		case query.OpNotNull:
			clauses = append(clauses, col+" IS NOT NULL")
		case query.OpGte:
			clauses = append(clauses, col+" >= "+args.add(f.Value))
		}
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func buildColumns(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == "*" {
			quoted = append(quoted, c)
			continue
		}
		quoted = append(quoted, quote(c))
	}
	return strings.Join(quoted, ", ")
}

// buildSelect renders the row-returning part of a select.
func buildSelect(q *query.Query) (string, []any) {
	args := &argList{}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(buildColumns(q.Columns))
	b.WriteString(" FROM ")
	b.WriteString(quote(q.Table))
	b.WriteString(buildWhere(q.Filters, args))

	if len(q.Orders) > 0 {
		parts := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			dir := "ASC"
			if o.Direction == query.Desc {
				dir = "DESC"
			}
			parts = append(parts, quote(o.Column)+" "+dir)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", q.Offset)
	}

	return b.String(), args.values
}

// buildCount renders the exact count of rows matching the filters.
// Paging and ordering do not affect the count.
func buildCount(q *query.Query) (string, []any) {
	args := &argList{}
	return "SELECT count(*) FROM " + quote(q.Table) + buildWhere(q.Filters, args), args.values
}

// buildInsert renders a single-row insert with columns in a stable order.
func buildInsert(q *query.Query) (string, []any) {
	args := &argList{}

	cols := q.InsertColumns()
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	for _, c := range cols {
		quoted = append(quoted, quote(c))
		placeholders = append(placeholders, args.add(q.Values[c]))
	}

	sql := "INSERT INTO " + quote(q.Table) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	if q.ReturnRow {
		sql += " RETURNING *"
	}
	return sql, args.values
}
