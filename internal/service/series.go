package service

import (
	"context"

	"trends-go/pkg/cache"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
	"trends-go/pkg/utils"
)

type seriesService struct {
	fetcher Fetcher
	cache   *cache.SeriesCache
	log     *logger.Logger
}

// NewSeriesService creates a series service on top of a fetcher and a cache.
// A nil cache disables caching entirely.
func NewSeriesService(fetcher Fetcher, seriesCache *cache.SeriesCache) SeriesService {
	return &seriesService{
		fetcher: fetcher,
		cache:   seriesCache,
		log:     logger.GetLogger().WithField("component", "series_service"),
	}
}

func (s *seriesService) InterestOverTime(ctx context.Context, spec trends.QuerySpec) ([]trends.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	key := utils.HashQuery(spec.Key())
	qlog := s.log.WithField("query_hash", utils.HashQueryShort(spec.Key()))

	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			qlog.Debug("Serving series from cache")
			return trends.ToRecords(result), nil
		}
	}

	result, err := s.fetcher.Fetch(ctx, spec)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	qlog.WithField("rows", len(result)).Info("Fetched interest-over-time series")
	return trends.ToRecords(result), nil
}
