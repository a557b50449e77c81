package trends

import (
	"context"
	"fmt"
	"sort"
	"time"

	"trends-go/pkg/logger"
)

// dateLayouts are tried in order when parsing upstream date strings. Daily
// buckets arrive as plain dates; some gateways echo full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Fetcher turns raw upstream timeline responses into normalized series. It
// performs exactly one outbound call per Fetch and holds no state between
// calls; retry policy belongs to the client or the caller.
type Fetcher struct {
	client Client
	log    *logger.Logger
}

// NewFetcher creates a fetcher backed by the given upstream client.
func NewFetcher(client Client) *Fetcher {
	return &Fetcher{
		client: client,
		log:    logger.GetLogger().WithField("component", "series_fetcher"),
	}
}

// Fetch submits the query to the upstream client and normalizes the tabular
// response. It returns ErrEmptyResult when the upstream reports zero rows and
// an *UpstreamError for any client failure.
func (f *Fetcher) Fetch(ctx context.Context, spec QuerySpec) (SeriesResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	f.log.WithFields(map[string]interface{}{
		"keywords":  len(spec.Keywords),
		"timeframe": spec.Timeframe,
		"geo":       spec.Geo,
	}).Debug("Fetching interest-over-time series")

	points, err := f.client.InterestOverTime(ctx, spec)
	if err != nil {
		f.log.WithError(err).Error("Upstream trends query failed")
		return nil, upstream(err)
	}

	if len(points) == 0 {
		return nil, ErrEmptyResult
	}

	result, err := normalize(points, spec.Keywords)
	if err != nil {
		return nil, &UpstreamError{Kind: KindBadResponse, Err: err}
	}

	f.log.WithField("rows", len(result)).Debug("Series normalized")
	return result, nil
}

// normalize converts raw timeline points into SeriesRows: dates parsed,
// scores keyed by keyword, rows sorted ascending, duplicate dates rejected.
// Keywords absent from a point get a zero score so every row carries the full
// keyword set.
func normalize(points []TimelinePoint, keywords []string) (SeriesResult, error) {
	result := make(SeriesResult, 0, len(points))

	for _, point := range points {
		date, err := parseDate(point.Date)
		if err != nil {
			return nil, err
		}

		values := make(map[string]int, len(keywords))
		for _, kw := range keywords {
			values[kw] = 0
		}
		for _, v := range point.Values {
			// Columns outside the requested keyword set are dropped so each
			// row carries exactly the queried keywords.
			if _, ok := values[v.Query]; ok {
				values[v.Query] = v.Value
			}
		}

		result = append(result, SeriesRow{
			Date:    date,
			Values:  values,
			Partial: point.IsPartial,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	for i := 1; i < len(result); i++ {
		if result[i].Date.Equal(result[i-1].Date) {
			return nil, fmt.Errorf("duplicate date bucket in response: %s", result[i].Date.Format("2006-01-02"))
		}
	}

	return result, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date in response: %q", s)
}
