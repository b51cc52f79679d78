package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Builder(t *testing.T) {
	q := From("reciters").
		Select("id", "name").
		ILike("name", "%ali%").
		Eq("category", "hafs").
		NotNull("category").
		Order("name", Asc).
		Range(10, 19).
		CountExact()

	assert.Equal(t, "reciters", q.Table)
	assert.Equal(t, KindSelect, q.Kind)
	assert.Equal(t, []string{"id", "name"}, q.Columns)
	require.Len(t, q.Filters, 3)
	assert.Equal(t, Filter{Column: "name", Op: OpILike, Value: "%ali%"}, q.Filters[0])
	assert.Equal(t, OpNotNull, q.Filters[2].Op)
	assert.Equal(t, []Ordering{{Column: "name", Direction: Asc}}, q.Orders)
	assert.Equal(t, 10, q.Offset)
	assert.Equal(t, 10, q.Limit)
	assert.True(t, q.CountRows)
	assert.False(t, q.HeadOnly)
	assert.NoError(t, q.Validate())
}

func TestQuery_HeadImpliesCount(t *testing.T) {
	q := From("reciters").Head()
	assert.True(t, q.HeadOnly)
	assert.True(t, q.CountRows)
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr string
	}{
		{name: "bad table", query: From("reciters; drop"), wantErr: "invalid table name"},
		{name: "bad column", query: From("reciters").Select("Name"), wantErr: "invalid column name"},
		{name: "star column", query: From("reciters").Select("*")},
		{name: "bad filter column", query: From("reciters").Eq("a-b", 1), wantErr: "invalid filter column"},
		{name: "bad direction", query: From("reciters").Order("name", "sideways"), wantErr: "invalid order direction"},
		{name: "negative range", query: From("reciters").Range(5, 2), wantErr: "invalid range"},
		{name: "empty insert", query: Insert("reciters", nil), wantErr: "has no values"},
		{name: "bad insert column", query: Insert("reciters", map[string]any{"Name": "x"}), wantErr: "invalid insert column"},
		{name: "good insert", query: Insert("reciters", map[string]any{"name": "x"}).Returning()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQuery_InsertColumnsSorted(t *testing.T) {
	q := Insert("reciters", map[string]any{"name": "a", "category": "b", "country": "c"})
	assert.Equal(t, []string{"category", "country", "name"}, q.InsertColumns())
}

func TestMatchILike(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"%ali%", "Saad Al-Ghamdi, Ali Jaber", true},
		{"%ALI%", "mishary alafasy", false},
		{"%JABER%", "ali jaber", true},
		{"%ala%", "Mishary Alafasy", true},
		{"name", "Name", true},
		{"name", "names", false},
		{"n_me", "NAME", true},
		{"%", "", true},
		{"%%", "anything", true},
		{`100\%`, "100%", true},
		{`100\%`, "1000", false},
		{"a.b", "axb", false},
		{"عبد%", "عبد الباسط", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchILike(tt.pattern, tt.s), "pattern %q vs %q", tt.pattern, tt.s)
	}
}

func TestContains(t *testing.T) {
	assert.Equal(t, "%abc%", Contains("abc"))
	assert.Equal(t, "%%", Contains(""))
}
