package service

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/reciters/internal/cache"
	"github.com/deppfellow/reciters/internal/model"
)

// Cache keys.
const (
	searchKeyPrefix      = "search_"
	registrationStatsKey = "registration_stats"
)

// ReciterStore is the reciter persistence the service depends on.
type ReciterStore interface {
	SearchReciters(ctx context.Context, term string) ([]model.Reciter, error)
	GetReciters(ctx context.Context, page, limit int) (model.RecitersPage, error)
	GetRecitersByCategory(ctx context.Context, category string) ([]model.Reciter, error)
	GetRegistrationStats(ctx context.Context) (model.RegistrationStats, error)
	AddReciter(ctx context.Context, in model.NewReciter) (*model.Reciter, error)
	CheckReciterExists(ctx context.Context, name string) (bool, error)
}

type ReciterService struct {
	logger *zerolog.Logger
	store  ReciterStore
	cache  *cache.Cache
	policy ErrorPolicy
}

func NewReciterService(logger *zerolog.Logger, store ReciterStore, c *cache.Cache, policy ErrorPolicy) *ReciterService {
	return &ReciterService{
		logger: logger,
		store:  store,
		cache:  c,
		policy: policy,
	}
}

// fail logs err and decides what the caller gets back as the error.
func (s *ReciterService) fail(op string, err error) error {
	s.logger.Error().Err(err).Str("operation", op).Msg("reciter operation failed")
	if s.policy == Propagate {
		return err
	}
	return nil
}

// SearchReciters returns reciters whose name contains term. On failure the
// result is an empty slice.
func (s *ReciterService) SearchReciters(ctx context.Context, term string) ([]model.Reciter, error) {
	reciters, err := s.store.SearchReciters(ctx, term)
	if err != nil {
		return []model.Reciter{}, s.fail("search_reciters", err)
	}
	return reciters, nil
}

// SearchRecitersWithCache is SearchReciters behind the cache, keyed by the
// lowercased term. Empty results are cached too. Callers get their own copy
// of the slice.
func (s *ReciterService) SearchRecitersWithCache(ctx context.Context, term string) ([]model.Reciter, error) {
	key := searchKeyPrefix + strings.ToLower(term)

	if v, ok := s.cache.Get(key); ok {
		if reciters, ok := v.([]model.Reciter); ok {
			return slices.Clone(reciters), nil
		}
	}

	reciters, err := s.SearchReciters(ctx, term)
	if err != nil {
		return reciters, err
	}

	s.cache.Set(key, slices.Clone(reciters))
	return reciters, nil
}

// GetReciters returns one page of reciters. On failure the page is empty
// with a zero count.
func (s *ReciterService) GetReciters(ctx context.Context, page, limit int) (model.RecitersPage, error) {
	result, err := s.store.GetReciters(ctx, page, limit)
	if err != nil {
		return model.EmptyRecitersPage(), s.fail("get_reciters", err)
	}
	return result, nil
}

func (s *ReciterService) GetRecitersByCategory(ctx context.Context, category string) ([]model.Reciter, error) {
	reciters, err := s.store.GetRecitersByCategory(ctx, category)
	if err != nil {
		return []model.Reciter{}, s.fail("get_reciters_by_category", err)
	}
	return reciters, nil
}

func (s *ReciterService) GetRegistrationStats(ctx context.Context) (model.RegistrationStats, error) {
	stats, err := s.store.GetRegistrationStats(ctx)
	if err != nil {
		return model.EmptyRegistrationStats(), s.fail("get_registration_stats", err)
	}
	return stats, nil
}

// GetRegistrationStatsWithCache is GetRegistrationStats behind the cache.
func (s *ReciterService) GetRegistrationStatsWithCache(ctx context.Context) (model.RegistrationStats, error) {
	if v, ok := s.cache.Get(registrationStatsKey); ok {
		if stats, ok := v.(model.RegistrationStats); ok {
			return cloneStats(stats), nil
		}
	}

	stats, err := s.GetRegistrationStats(ctx)
	if err != nil {
		return stats, err
	}

	s.cache.Set(registrationStatsKey, cloneStats(stats))
	return stats, nil
}

func cloneStats(stats model.RegistrationStats) model.RegistrationStats {
	stats.CategoriesCount = maps.Clone(stats.CategoriesCount)
	return stats
}

// AddReciter inserts a reciter. A nil reciter means nothing was stored,
// whether the input was invalid or the insert failed. Cached reads are
// left alone; call ClearCache to see the new row immediately.
func (s *ReciterService) AddReciter(ctx context.Context, in model.NewReciter) (*model.Reciter, error) {
	reciter, err := s.store.AddReciter(ctx, in)
	if err != nil {
		return nil, s.fail("add_reciter", err)
	}
	return reciter, nil
}

// CheckReciterExists reports whether a reciter with this name exists,
// ignoring case. Failures read as false.
func (s *ReciterService) CheckReciterExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.store.CheckReciterExists(ctx, name)
	if err != nil {
		return false, s.fail("check_reciter_exists", err)
	}
	return exists, nil
}

// ClearCache drops every cached read.
func (s *ReciterService) ClearCache() {
	s.cache.Clear()
	s.logger.Info().Msg("reciter cache cleared")
}

// CacheSize is the number of cached entries, expired ones included.
func (s *ReciterService) CacheSize() int {
	return s.cache.Len()
}
