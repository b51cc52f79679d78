package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/query"
)

// RecentWindow is how far back GetRegistrationStats counts a registration
// as recent.
const RecentWindow = 7 * 24 * time.Hour

type ReciterRepository struct {
	client query.Client
	now    func() time.Time
}

// NewReciterRepository returns a repository reading the clock through now.
func NewReciterRepository(client query.Client, now func() time.Time) *ReciterRepository {
	if now == nil {
		now = time.Now
	}
	return &ReciterRepository{client: client, now: now}
}

// SearchReciters returns reciters whose name contains term, ignoring case,
// sorted by name. The term is not trimmed.
func (r *ReciterRepository) SearchReciters(ctx context.Context, term string) ([]model.Reciter, error) {
	q := query.From(recitersTable).
		ILike("name", query.Contains(term)).
		Order("name", query.Asc)

	resp, err := r.client.Execute(ctx, q)
	if err != nil {
		return nil, wrap("searching reciters", err)
	}

	reciters, err := model.DecodeAll[model.Reciter](rowsOf(resp))
	if err != nil {
		return nil, wrap("searching reciters", err)
	}
	return reciters, nil
}

// GetReciters returns one page of reciters sorted by name.
//
// Page is 1-based. HasMore is count > page*limit, so a page that ends
// exactly on the last row reports no more.
func (r *ReciterRepository) GetReciters(ctx context.Context, page, limit int) (model.RecitersPage, error) {
	if page < 1 || limit < 1 || page > math.MaxInt/limit {
		return model.EmptyRecitersPage(), fmt.Errorf("getting reciters: invalid page %d or limit %d", page, limit)
	}

	from := (page - 1) * limit
	q := query.From(recitersTable).
		Order("name", query.Asc).
		Range(from, from+limit-1).
		CountExact()

	resp, err := r.client.Execute(ctx, q)
	if err != nil {
		return model.EmptyRecitersPage(), wrap("getting reciters", err)
	}

	data, err := model.DecodeAll[model.Reciter](rowsOf(resp))
	if err != nil {
		return model.EmptyRecitersPage(), wrap("getting reciters", err)
	}

	count := countOf(resp)
	return model.RecitersPage{
		Data:    data,
		Count:   count,
		HasMore: count > int64(page*limit),
	}, nil
}

// GetRecitersByCategory returns reciters in exactly category, sorted by name.
func (r *ReciterRepository) GetRecitersByCategory(ctx context.Context, category string) ([]model.Reciter, error) {
	q := query.From(recitersTable).
		Eq("category", category).
		Order("name", query.Asc)

	resp, err := r.client.Execute(ctx, q)
	if err != nil {
		return nil, wrap("getting reciters by category", err)
	}

	reciters, err := model.DecodeAll[model.Reciter](rowsOf(resp))
	if err != nil {
		return nil, wrap("getting reciters by category", err)
	}
	return reciters, nil
}

type categoryRow struct {
	Category string `db:"category"`
}

// GetRegistrationStats counts all reciters, reciters per category and
// reciters registered within RecentWindow. It takes three round trips,
// run one after another; the first failure aborts.
func (r *ReciterRepository) GetRegistrationStats(ctx context.Context) (model.RegistrationStats, error) {
	totalResp, err := r.client.Execute(ctx, query.From(recitersTable).Head())
	if err != nil {
		return model.EmptyRegistrationStats(), wrap("counting reciters", err)
	}

	categoryResp, err := r.client.Execute(ctx, query.From(recitersTable).
		Select("category").
		NotNull("category"))
	if err != nil {
		return model.EmptyRegistrationStats(), wrap("reading reciter categories", err)
	}

	categories, err := model.DecodeAll[categoryRow](rowsOf(categoryResp))
	if err != nil {
		return model.EmptyRegistrationStats(), wrap("reading reciter categories", err)
	}

	since := r.now().Add(-RecentWindow)
	recentResp, err := r.client.Execute(ctx, query.From(recitersTable).
		Gte("created_at", since).
		Head())
	if err != nil {
		return model.EmptyRegistrationStats(), wrap("counting recent reciters", err)
	}

	stats := model.EmptyRegistrationStats()
	stats.TotalReciters = countOf(totalResp)
	stats.RecentRegistrations = countOf(recentResp)
	for _, c := range categories {
		stats.CategoriesCount[c.Category]++
	}
	return stats, nil
}

// AddReciter validates and inserts a reciter, returning the stored row.
func (r *ReciterRepository) AddReciter(ctx context.Context, in model.NewReciter) (*model.Reciter, error) {
	if err := in.Validate(); err != nil {
		return nil, wrap("adding reciter", err)
	}

	resp, err := r.client.Execute(ctx, query.Insert(recitersTable, in.Values()).Returning())
	if err != nil {
		return nil, wrap("adding reciter", err)
	}

	rows := rowsOf(resp)
	if len(rows) == 0 {
		return nil, fmt.Errorf("adding reciter: insert returned no row")
	}

	reciter, err := model.Decode[model.Reciter](rows[0])
	if err != nil {
		return nil, wrap("adding reciter", err)
	}
	return &reciter, nil
}

// CheckReciterExists reports whether any reciter's name matches name,
// ignoring case. name is used as a LIKE pattern without added wildcards,
// so "%" and "_" inside it still act as wildcards.
func (r *ReciterRepository) CheckReciterExists(ctx context.Context, name string) (bool, error) {
	q := query.From(recitersTable).
		Select("id").
		ILike("name", name).
		Take(1)

	resp, err := r.client.Execute(ctx, q)
	if err != nil {
		return false, wrap("checking reciter exists", err)
	}
	return len(rowsOf(resp)) > 0, nil
}
