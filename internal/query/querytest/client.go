// Package querytest provides an in-memory query.Client.
//
// It evaluates query.Query values against plain Go tables so repository and
// service code can be exercised without a database. Semantics follow
// PostgreSQL where it matters to callers: ILIKE patterns, NULLS LAST for
// ascending order and NULLS FIRST for descending, counts that ignore paging.
package querytest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/reciters/internal/query"
)

// Client is an in-memory query.Client. The zero value is not usable; call New.
type Client struct {
	mu       sync.Mutex
	tables   map[string][]query.Row
	serials  map[string]string
	nextID   map[string]int64
	failures map[string]error
	executed []query.Query

	// Now stamps created_at on inserted rows that do not carry one.
	Now func() time.Time
}

// New returns an empty Client. Tables default to an "id" serial column;
// use Serial to change that per table.
func New() *Client {
	return &Client{
		tables:   make(map[string][]query.Row),
		serials:  make(map[string]string),
		nextID:   make(map[string]int64),
		failures: make(map[string]error),
		Now:      time.Now,
	}
}

// Serial names the auto-assigned primary key column of table.
func (c *Client) Serial(table, column string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serials[table] = column
	return c
}

// Seed appends rows to table. Rows are copied.
func (c *Client) Seed(table string, rows ...query.Row) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range rows {
		cp := copyRow(r)
		if id, ok := toInt64(cp[c.serialLocked(table)]); ok && id >= c.nextID[table] {
			c.nextID[table] = id
		}
		c.tables[table] = append(c.tables[table], cp)
	}
	return c
}

// FailOn makes every query against table return err. A nil err clears it.
func (c *Client) FailOn(table string, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, table)
	} else {
		c.failures[table] = err
	}
	return c
}

// Executed returns copies of every query run so far, in order.
func (c *Client) Executed() []query.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]query.Query, len(c.executed))
	copy(out, c.executed)
	return out
}

// Rows returns a copy of the current contents of table.
func (c *Client) Rows(table string) []query.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]query.Row, 0, len(c.tables[table]))
	for _, r := range c.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

// Execute implements query.Client.
func (c *Client) Execute(ctx context.Context, q *query.Query) (*query.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.executed = append(c.executed, *q)

	if err := c.failures[q.Table]; err != nil {
		return nil, err
	}

	switch q.Kind {
	case query.KindInsert:
		return c.insertLocked(q), nil
	default:
		return c.selectLocked(q)
	}
}

func (c *Client) serialLocked(table string) string {
	if col, ok := c.serials[table]; ok {
		return col
	}
	return "id"
}

func (c *Client) insertLocked(q *query.Query) *query.Response {
	row := copyRow(q.Values)

	serial := c.serialLocked(q.Table)
	if _, ok := row[serial]; !ok {
		c.nextID[q.Table]++
		row[serial] = c.nextID[q.Table]
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = c.Now()
	}
	c.tables[q.Table] = append(c.tables[q.Table], row)

	resp := &query.Response{}
	if q.ReturnRow {
		resp.Rows = []query.Row{copyRow(row)}
	}
	return resp
}

func (c *Client) selectLocked(q *query.Query) (*query.Response, error) {
	var matched []query.Row
	for _, r := range c.tables[q.Table] {
		ok, err := matches(r, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r)
		}
	}

	resp := &query.Response{}
	if q.CountRows {
		n := int64(len(matched))
		resp.Count = &n
	}
	if q.HeadOnly {
		return resp, nil
	}

	if len(q.Orders) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], q.Orders)
		})
	}

	start := q.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	resp.Rows = make([]query.Row, 0, end-start)
	for _, r := range matched[start:end] {
		resp.Rows = append(resp.Rows, project(r, q.Columns))
	}
	return resp, nil
}

func matches(r query.Row, filters []query.Filter) (bool, error) {
	for _, f := range filters {
		v, present := r[f.Column]
		switch f.Op {
		case query.OpEq:
			if !present || v == nil || !reflect.DeepEqual(v, f.Value) {
				return false, nil
			}
		case query.OpILike:
			s, ok := v.(string)
			pattern, pok := f.Value.(string)
			if !pok {
				return false, fmt.Errorf("ilike on %s: pattern must be a string", f.Column)
			}
			if !ok || !query.MatchILike(pattern, s) {
				return false, nil
			}
		case query.OpNotNull:
			if !present || v == nil {
				return false, nil
			}
		case query.OpGte:
			if !present || v == nil {
				return false, nil
			}
			cmp, err := compare(v, f.Value)
			if err != nil {
				return false, fmt.Errorf("gte on %s: %w", f.Column, err)
			}
			if cmp < 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

// less orders rows the way PostgreSQL does by default: NULLs sort last in
// ascending order and first in descending order.
func less(a, b query.Row, orders []query.Ordering) bool {
	for _, o := range orders {
		av, bv := a[o.Column], b[o.Column]
		desc := o.Direction == query.Desc

		switch {
		case av == nil && bv == nil:
			continue
		case av == nil:
			return desc
		case bv == nil:
			return !desc
		}

		cmp, err := compare(av, bv)
		if err != nil || cmp == 0 {
			continue
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func compare(a, b any) (int, error) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		return at.Compare(bt), nil
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare %T with %T", a, b)
		}
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		}
		return 0, nil
	}

	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		return 0, fmt.Errorf("cannot compare %T with %T", a, b)
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func project(r query.Row, columns []string) query.Row {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		return copyRow(r)
	}
	out := make(query.Row, len(columns))
	for _, c := range columns {
		out[c] = r[c]
	}
	return out
}

func copyRow(r map[string]any) query.Row {
	out := make(query.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
