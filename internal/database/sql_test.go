package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/reciters/internal/query"
)

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name     string
		q        *query.Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "all columns",
			q:       query.From("reciters"),
			wantSQL: `SELECT * FROM "reciters"`,
		},
		{
			name: "filters order and range",
			q: query.From("reciters").
				Eq("category", "Hafs").
				Order("created_at", query.Desc).
				Range(10, 19),
			wantSQL:  `SELECT * FROM "reciters" WHERE "category" = $1 ORDER BY "created_at" DESC LIMIT 10 OFFSET 10`,
			wantArgs: []any{"Hafs"},
		},
		{
			name: "projection ilike and take",
			q: query.From("reciters").
				Select("id").
				ILike("name", "Ali").
				Take(1),
			wantSQL:  `SELECT "id" FROM "reciters" WHERE "name" ILIKE $1 LIMIT 1`,
			wantArgs: []any{"Ali"},
		},
		{
			name: "not null and gte",
			q: query.From("reciters").
				Select("category").
				NotNull("category").
				Gte("created_at", "2024-01-01").
				Order("name", query.Asc),
			wantSQL:  `SELECT "category" FROM "reciters" WHERE "category" IS NOT NULL AND "created_at" >= $1 ORDER BY "name" ASC`,
			wantArgs: []any{"2024-01-01"},
		},
		{
			name:    "first page has no offset",
			q:       query.From("results").Range(0, 9),
			wantSQL: `SELECT * FROM "results" LIMIT 10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildSelect(tt.q)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildCount(t *testing.T) {
	q := query.From("reciters").Eq("category", "Warsh").Range(20, 29).CountExact()

	sql, args := buildCount(q)

	assert.Equal(t, `SELECT count(*) FROM "reciters" WHERE "category" = $1`, sql)
	assert.Equal(t, []any{"Warsh"}, args)
}

func TestBuildInsert(t *testing.T) {
	q := query.Insert("reciters", map[string]any{
		"name":    "Ali Jaber",
		"country": "SA",
	}).Returning()

	sql, args := buildInsert(q)

	assert.Equal(t, `INSERT INTO "reciters" ("country", "name") VALUES ($1, $2) RETURNING *`, sql)
	assert.Equal(t, []any{"SA", "Ali Jaber"}, args)

	q.ReturnRow = false
	sql, _ = buildInsert(q)
	assert.NotContains(t, sql, "RETURNING")
}

func TestExecutor_RejectsInvalidQuery(t *testing.T) {
	// The executor validates before touching the connection, so a nil DBTX
	// is never used here.
	e := NewExecutor(nil)

	_, err := e.Execute(context.Background(), query.From("reciters; drop table x"))
	require.Error(t, err)
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)
	tracer.now = func() time.Time { return current }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "select 1"})
	current = base.Add(50 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "select pg_sleep(1)"})
	current = current.Add(time.Second)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), "pg_sleep")
}

func TestSlowQueryTracer_MissingStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	tracer := newSlowQueryTracer(&logger, time.Nanosecond)

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())
}
