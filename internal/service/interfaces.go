package service

import (
	"context"

	"trends-go/pkg/trends"
)

// Fetcher is the slice of the trends fetcher this service depends on.
type Fetcher interface {
	Fetch(ctx context.Context, spec trends.QuerySpec) (trends.SeriesResult, error)
}

// SeriesService serves normalized interest-over-time records, caching fetched
// series so identical queries inside the TTL window reuse the same result.
type SeriesService interface {
	InterestOverTime(ctx context.Context, spec trends.QuerySpec) ([]trends.Record, error)
}
