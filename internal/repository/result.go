package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/query"
)

type ResultRepository struct {
	client query.Client
}

func NewResultRepository(client query.Client) *ResultRepository {
	return &ResultRepository{client: client}
}

// SearchResults returns results whose name contains the trimmed term,
// highest grade first, ranked.
func (r *ResultRepository) SearchResults(ctx context.Context, term string) ([]model.Result, error) {
	q := query.From(resultsTable).
		ILike("name", query.Contains(strings.TrimSpace(term))).
		Order("grade", query.Desc)

	return r.ranked(ctx, "searching results", q)
}

// GetAllResults returns every result, highest grade first, ranked.
func (r *ResultRepository) GetAllResults(ctx context.Context) ([]model.Result, error) {
	return r.ranked(ctx, "getting results", query.From(resultsTable).Order("grade", query.Desc))
}

func (r *ResultRepository) ranked(ctx context.Context, op string, q *query.Query) ([]model.Result, error) {
	resp, err := r.client.Execute(ctx, q)
	if err != nil {
		return nil, wrap(op, err)
	}

	results, err := model.DecodeAll[model.Result](rowsOf(resp))
	if err != nil {
		return nil, wrap(op, err)
	}
	return model.Rank(results), nil
}

// GetResultsStats summarizes every result's grade and category.
func (r *ResultRepository) GetResultsStats(ctx context.Context) (model.ResultsStats, error) {
	resp, err := r.client.Execute(ctx, query.From(resultsTable).Select("grade", "category"))
	if err != nil {
		return model.EmptyResultsStats(), wrap("getting results stats", err)
	}

	rows, err := model.DecodeAll[model.GradeRow](rowsOf(resp))
	if err != nil {
		return model.EmptyResultsStats(), wrap("getting results stats", err)
	}
	return model.SummarizeGrades(rows), nil
}
