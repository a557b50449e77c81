package trends

import (
	"context"
	"errors"
	"testing"
)

// mockClient returns canned timeline points or a canned error.
type mockClient struct {
	points []TimelinePoint
	err    error
	calls  int
}

func (m *mockClient) InterestOverTime(ctx context.Context, spec QuerySpec) ([]TimelinePoint, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.points, nil
}

func threeDayTimeline() []TimelinePoint {
	return []TimelinePoint{
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 10}}},
		{Date: "2024-01-02", Values: []TimelineValue{{Query: "a", Value: 20}}},
		{Date: "2024-01-03", Values: []TimelineValue{{Query: "a", Value: 30}}},
	}
}

func TestFetch_NormalizesRows(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: threeDayTimeline()})

	result, err := fetcher.Fetch(context.Background(), QuerySpec{
		Keywords:  []string{"a"},
		Timeframe: "today 3-m",
		Geo:       "US",
	})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(result))
	}

	expected := []int{10, 20, 30}
	for i, row := range result {
		if row.Values["a"] != expected[i] {
			t.Errorf("Row %d: expected value %d, got %d", i, expected[i], row.Values["a"])
		}
		if row.Partial {
			t.Errorf("Row %d: expected non-partial row", i)
		}
	}

	if got := result[0].Date.Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("Expected first row date 2024-01-01, got %s", got)
	}
}

func TestFetch_SortsUnorderedRows(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: []TimelinePoint{
		{Date: "2024-01-03", Values: []TimelineValue{{Query: "a", Value: 30}}},
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 10}}},
		{Date: "2024-01-02", Values: []TimelineValue{{Query: "a", Value: 20}}},
	}})

	result, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	for i := 1; i < len(result); i++ {
		if !result[i-1].Date.Before(result[i].Date) {
			t.Errorf("Rows not in ascending date order at index %d", i)
		}
	}
}

func TestFetch_EmptyResult(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: nil})

	_, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("Expected ErrEmptyResult, got %v", err)
	}
}

func TestFetch_UpstreamFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fetcher := NewFetcher(&mockClient{err: cause})

	_, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected UpstreamError to wrap the underlying cause")
	}
	if ue.Kind != KindNetwork {
		t.Errorf("Expected KindNetwork, got %s", ue.Kind)
	}
}

func TestFetch_PreservesUpstreamErrorKind(t *testing.T) {
	fetcher := NewFetcher(&mockClient{err: &UpstreamError{
		Kind: KindRateLimited,
		Err:  errors.New("429 too many requests"),
	}})

	_, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if ue.Kind != KindRateLimited {
		t.Errorf("Expected KindRateLimited, got %s", ue.Kind)
	}
}

func TestFetch_DuplicateDatesRejected(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: []TimelinePoint{
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 10}}},
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 20}}},
	}})

	_, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if ue.Kind != KindBadResponse {
		t.Errorf("Expected KindBadResponse, got %s", ue.Kind)
	}
}

func TestFetch_PartialFlagSurfaced(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: []TimelinePoint{
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 10}}},
		{Date: "2024-01-02", IsPartial: true, Values: []TimelineValue{{Query: "a", Value: 20}}},
	}})

	result, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if result[0].Partial {
		t.Error("Expected first row to be complete")
	}
	if !result[1].Partial {
		t.Error("Expected last row to carry the partial flag")
	}
}

func TestFetch_MissingKeywordGetsZero(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: []TimelinePoint{
		{Date: "2024-01-01", Values: []TimelineValue{{Query: "a", Value: 10}}},
	}})

	result, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if v, ok := result[0].Values["b"]; !ok || v != 0 {
		t.Errorf("Expected zero score for missing keyword, got %d (present=%t)", v, ok)
	}
}

func TestFetch_DropsUnknownColumns(t *testing.T) {
	fetcher := NewFetcher(&mockClient{points: []TimelinePoint{
		{Date: "2024-01-01", Values: []TimelineValue{
			{Query: "a", Value: 10},
			{Query: "stray", Value: 99},
		}},
	}})

	result, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: []string{"a"}})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	if _, ok := result[0].Values["stray"]; ok {
		t.Error("Expected column outside the keyword set to be dropped")
	}
	if len(result[0].Values) != 1 {
		t.Errorf("Expected 1 value per row, got %d", len(result[0].Values))
	}

	records := ToRecords(result)
	if len(records[0]) != 2 {
		t.Errorf("Expected date plus one field per keyword, got %v", records[0])
	}
}

func TestFetch_SpecValidation(t *testing.T) {
	client := &mockClient{points: threeDayTimeline()}
	fetcher := NewFetcher(client)

	tests := []struct {
		name     string
		keywords []string
	}{
		{"no keywords", nil},
		{"too many keywords", []string{"a", "b", "c", "d", "e", "f"}},
		{"blank keyword", []string{"a", " "}},
		{"duplicate keyword", []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fetcher.Fetch(context.Background(), QuerySpec{Keywords: tt.keywords})
			if err == nil {
				t.Error("Expected validation error, got nil")
			}

			var ue *UpstreamError
			if errors.As(err, &ue) {
				t.Errorf("Validation failure should not be an UpstreamError: %v", err)
			}
		})
	}

	if client.calls != 0 {
		t.Errorf("Expected no upstream calls for invalid specs, got %d", client.calls)
	}
}
