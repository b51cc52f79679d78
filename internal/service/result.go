package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/reciters/internal/errs"
	"github.com/deppfellow/reciters/internal/model"
)

// ResultStore is the result persistence the service depends on.
type ResultStore interface {
	SearchResults(ctx context.Context, term string) ([]model.Result, error)
	GetAllResults(ctx context.Context) ([]model.Result, error)
	GetResultsStats(ctx context.Context) (model.ResultsStats, error)
}

type ResultService struct {
	logger *zerolog.Logger
	store  ResultStore
	policy ErrorPolicy
}

func NewResultService(logger *zerolog.Logger, store ResultStore, policy ErrorPolicy) *ResultService {
	return &ResultService{
		logger: logger,
		store:  store,
		policy: policy,
	}
}

func (s *ResultService) fail(op string, err error) error {
	s.logger.Error().Err(err).Str("operation", op).Msg("result operation failed")
	if s.policy == Propagate {
		return err
	}
	return nil
}

// SearchResults returns ranked results whose name contains the trimmed
// term. Unlike the other reads, a failure is always reported, as an
// *errs.HTTPError whose message can be shown to the user.
func (s *ResultService) SearchResults(ctx context.Context, term string) ([]model.Result, error) {
	results, err := s.store.SearchResults(ctx, term)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", "search_results").Msg("result operation failed")
		return nil, errs.NewResultsSearchError()
	}
	return results, nil
}

// GetAllResults returns every result, ranked. Failures read as empty.
func (s *ResultService) GetAllResults(ctx context.Context) ([]model.Result, error) {
	results, err := s.store.GetAllResults(ctx)
	if err != nil {
		return []model.Result{}, s.fail("get_all_results", err)
	}
	return results, nil
}

func (s *ResultService) GetResultsStats(ctx context.Context) (model.ResultsStats, error) {
	stats, err := s.store.GetResultsStats(ctx)
	if err != nil {
		return model.EmptyResultsStats(), s.fail("get_results_stats", err)
	}
	return stats, nil
}
