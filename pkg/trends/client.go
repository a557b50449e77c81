package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/text/language"

	"trends-go/pkg/logger"
)

// ClientConfig carries the explicit client-level settings that the upstream
// service treats as ambient: host language and timezone offset ride along on
// every query instead of living in hidden global state.
type ClientConfig struct {
	Endpoint   string        // trends API gateway base URL
	APIKey     string        // optional bearer token
	HL         string        // host language as a BCP-47 tag, e.g. "en-US"
	TZ         int           // timezone offset from UTC in minutes
	Timeout    time.Duration // per-request timeout
	MaxRetries int
	RetryDelay time.Duration
}

func (c *ClientConfig) applyDefaults() {
	if c.HL == "" {
		c.HL = "en-US"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 1 * time.Second
	}
}

// Validate checks the endpoint and the HL language tag.
func (c ClientConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("trends endpoint is required")
	}
	if c.HL != "" {
		if _, err := language.Parse(c.HL); err != nil {
			return fmt.Errorf("invalid host language %q: %w", c.HL, err)
		}
	}
	return nil
}

type httpClient struct {
	config ClientConfig
	client *fasthttp.Client
	retry  *retryPolicy
	log    *logger.Logger

	// Metrics
	totalRequests  uint64
	failedRequests uint64
}

// NewHTTPClient creates a Client that talks to a trends API gateway over
// fasthttp. The returned client is safe for sequential use only; concurrent
// callers need their own instance or external synchronization.
func NewHTTPClient(config ClientConfig) (Client, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &httpClient{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxConnsPerHost:     16,
			MaxIdleConnDuration: 90 * time.Second,
		},
		retry: newRetryPolicy(config.MaxRetries, config.RetryDelay),
		log:   logger.GetLogger().WithField("component", "trends_client"),
	}, nil
}

func (c *httpClient) InterestOverTime(ctx context.Context, spec QuerySpec) ([]TimelinePoint, error) {
	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()

	var points []TimelinePoint
	err := c.retry.Execute(ctx, func() error {
		var qerr error
		points, qerr = c.doQuery(spec)
		return qerr
	})

	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.log.WithError(err).WithField("query", spec.Key()).Error("Interest-over-time query failed")
		return nil, upstream(err)
	}

	c.log.WithFields(map[string]interface{}{
		"rows":        len(points),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Interest-over-time query completed")
	return points, nil
}

func (c *httpClient) doQuery(spec QuerySpec) ([]TimelinePoint, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.buildURL(spec))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", "trends-go/1.0")
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	if err := c.client.DoTimeout(req, resp, c.config.Timeout); err != nil {
		return nil, &UpstreamError{Kind: KindNetwork, Err: fmt.Errorf("request failed: %w", err)}
	}

	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, &UpstreamError{
			Kind: kindFromStatus(code),
			Err:  fmt.Errorf("trends API returned status %d: %s", code, resp.Body()),
		}
	}

	points, err := decodeTimeline(resp.Body())
	if err != nil {
		return nil, &UpstreamError{Kind: KindBadResponse, Err: err}
	}
	return points, nil
}

func (c *httpClient) buildURL(spec QuerySpec) string {
	params := url.Values{}
	params.Set("keywords", strings.Join(spec.Keywords, ","))
	params.Set("timeframe", spec.Timeframe)
	if spec.Geo != "" {
		params.Set("geo", spec.Geo)
	}
	params.Set("hl", c.config.HL)
	params.Set("tz", strconv.Itoa(c.config.TZ))

	base := c.config.Endpoint
	if strings.Contains(base, "?") {
		return base + "&" + params.Encode()
	}
	return base + "?" + params.Encode()
}

// decodeTimeline parses the gateway response envelope into raw timeline
// points. An explicit non-success status in the envelope is a bad response;
// a success envelope with an empty timeline is a valid zero-row result.
func decodeTimeline(body []byte) ([]TimelinePoint, error) {
	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Timeline []TimelinePoint `json:"timeline"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.Status != "success" {
		return nil, fmt.Errorf("trends API reported %q: %s", envelope.Status, envelope.Message)
	}

	return envelope.Data.Timeline, nil
}

// Stats returns a snapshot of the request counters.
func (c *httpClient) Stats() ClientStats {
	return ClientStats{
		TotalRequests:  atomic.LoadUint64(&c.totalRequests),
		FailedRequests: atomic.LoadUint64(&c.failedRequests),
	}
}
