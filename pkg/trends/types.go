package trends

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxKeywords is the upstream limit on keywords per interest-over-time query.
const MaxKeywords = 5

// QuerySpec describes a single interest-over-time query.
type QuerySpec struct {
	Keywords  []string // 1..MaxKeywords keywords, order preserved
	Timeframe string   // opaque upstream range, e.g. "today 3-m" or "2024-01-01 2024-03-01"
	Geo       string   // ISO region code, empty for worldwide
}

// Validate checks the locally enforced constraints. The timeframe string is an
// upstream contract and is passed through unvalidated.
func (s QuerySpec) Validate() error {
	if len(s.Keywords) == 0 {
		return fmt.Errorf("query requires at least one keyword")
	}
	if len(s.Keywords) > MaxKeywords {
		return fmt.Errorf("query supports at most %d keywords, got %d", MaxKeywords, len(s.Keywords))
	}
	seen := make(map[string]struct{}, len(s.Keywords))
	for _, kw := range s.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("query contains an empty keyword")
		}
		if _, dup := seen[kw]; dup {
			return fmt.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = struct{}{}
	}
	return nil
}

// Key returns a canonical identity string for the query, used for cache keys
// and log correlation. Each part is quoted so keywords containing separator
// characters cannot collide with a different keyword list.
func (s QuerySpec) Key() string {
	parts := make([]string, 0, len(s.Keywords)+2)
	for _, kw := range s.Keywords {
		parts = append(parts, strconv.Quote(kw))
	}
	parts = append(parts, strconv.Quote(s.Timeframe), strconv.Quote(s.Geo))
	return strings.Join(parts, "|")
}

// SeriesRow is one normalized date bucket: an interest score per keyword plus
// the upstream partial-data marker for the most recent bucket.
type SeriesRow struct {
	Date    time.Time
	Values  map[string]int
	Partial bool
}

// SeriesResult is a chronologically ascending series with no duplicate dates.
type SeriesResult []SeriesRow

// TimelinePoint is the raw per-date row shape returned by the upstream client,
// before normalization into SeriesRow.
type TimelinePoint struct {
	Date      string          `json:"date"`
	IsPartial bool            `json:"is_partial"`
	Values    []TimelineValue `json:"values"`
}

// TimelineValue is a single keyword score within a TimelinePoint.
type TimelineValue struct {
	Query string `json:"query"`
	Value int    `json:"value"`
}

// Client is the upstream trends-data collaborator. Implementations own all
// transport, auth and retry concerns; callers treat it as a black box.
type Client interface {
	InterestOverTime(ctx context.Context, spec QuerySpec) ([]TimelinePoint, error)
}

// ClientStats is a snapshot of a client's request counters.
type ClientStats struct {
	TotalRequests  uint64 `json:"total_requests"`
	FailedRequests uint64 `json:"failed_requests"`
}

// StatsProvider is implemented by clients that track request counters for
// health reporting.
type StatsProvider interface {
	Stats() ClientStats
}
