package model

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/reciters/internal/query"
)

func TestDecodeReciter(t *testing.T) {
	created := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

	r, err := Decode[Reciter](query.Row{
		"id":         int64(7),
		"name":       "Abdul Basit",
		"category":   "mujawwad",
		"phone":      nil,
		"created_at": created,
		"unknown":    "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, "Abdul Basit", r.Name)
	require.NotNil(t, r.Category)
	assert.Equal(t, "mujawwad", *r.Category)
	assert.Nil(t, r.Phone)
	assert.Equal(t, created, r.CreatedAt)
}

func TestDecodeReciter_MissingNameFails(t *testing.T) {
	_, err := Decode[Reciter](query.Row{"id": int64(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating row")
}

func TestDecodeReciter_WrongTypeFails(t *testing.T) {
	_, err := Decode[Reciter](query.Row{"id": "seven", "name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding row")
}

func TestDecodeAll(t *testing.T) {
	out, err := DecodeAll[Reciter](nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = DecodeAll[Reciter]([]query.Row{{"id": int64(1), "name": "a"}, {"id": int64(2)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestDecodeResult_NumericGrade(t *testing.T) {
	grade := pgtype.Numeric{Int: big.NewInt(875), Exp: -1, Valid: true}

	r, err := Decode[Result](query.Row{"no": int64(3), "name": "Zaid", "category": "juz 30", "grade": grade})
	require.NoError(t, err)
	assert.InDelta(t, 87.5, r.Grade, 1e-9)
	assert.Equal(t, int64(3), r.No)
	assert.Zero(t, r.ID)
	assert.Zero(t, r.Rank)
}

func TestRank(t *testing.T) {
	results := Rank([]Result{
		{No: 12, Name: "a", Grade: 95},
		{No: 4, Name: "b", Grade: 80},
		{No: 9, Name: "c", Grade: 70},
	})

	for i, want := range []struct {
		id   int64
		rank int
	}{{12, 1}, {4, 2}, {9, 3}} {
		assert.Equal(t, want.id, results[i].ID)
		assert.Equal(t, want.rank, results[i].Rank)
	}
}

func TestSummarizeGrades(t *testing.T) {
	stats := SummarizeGrades([]GradeRow{
		{Grade: 60, Category: "juz 30"},
		{Grade: 70, Category: "juz 29"},
		{Grade: 100, Category: "juz 30"},
	})

	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 77, stats.AverageGrade)
	assert.Equal(t, float64(100), stats.TopGrade)
	assert.Equal(t, map[string]int{"juz 30": 2, "juz 29": 1}, stats.CategoriesCount)
}

func TestSummarizeGrades_RoundsHalfUp(t *testing.T) {
	stats := SummarizeGrades([]GradeRow{{Grade: 76}, {Grade: 77}})
	assert.Equal(t, 77, stats.AverageGrade)
}

func TestSummarizeGrades_Empty(t *testing.T) {
	stats := SummarizeGrades(nil)
	assert.Equal(t, EmptyResultsStats(), stats)
}

func TestNewReciter_Validate(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	assert.NoError(t, (&NewReciter{Name: "Hussary"}).Validate())
	assert.Error(t, (&NewReciter{}).Validate())
	assert.Error(t, (&NewReciter{Name: string(long)}).Validate())
}

func TestNewReciter_Values(t *testing.T) {
	cat := "hafs"
	values := (&NewReciter{Name: "Hussary", Category: &cat}).Values()
	assert.Equal(t, map[string]any{"name": "Hussary", "category": "hafs"}, values)
}
