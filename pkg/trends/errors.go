package trends

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult signals a valid response with zero rows: no data exists for
// the query. Callers should treat it as a reportable outcome, not a failure.
var ErrEmptyResult = errors.New("no trend data available for query")

// ErrorKind classifies upstream failures so callers can distinguish
// rate-limiting from transport problems from malformed payloads.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindRateLimited
	KindAuth
	KindBadResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth"
	case KindBadResponse:
		return "bad_response"
	default:
		return "unknown"
	}
}

// UpstreamError wraps any failure raised by the upstream trends client.
type UpstreamError struct {
	Kind ErrorKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream trends query failed (%s): %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a retry could plausibly succeed. Auth failures and
// malformed payloads will not fix themselves.
func (e *UpstreamError) Retryable() bool {
	switch e.Kind {
	case KindAuth, KindBadResponse:
		return false
	default:
		return true
	}
}

// kindFromStatus maps an HTTP status code to an error kind.
func kindFromStatus(code int) ErrorKind {
	switch {
	case code == 429:
		return KindRateLimited
	case code == 401 || code == 403:
		return KindAuth
	case code >= 500:
		return KindNetwork
	default:
		return KindBadResponse
	}
}

// classifyError falls back to error-text heuristics when no status code is
// available, e.g. for transport-level failures.
func classifyError(err error) ErrorKind {
	if err == nil {
		return KindNetwork
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "429") {
		return KindRateLimited
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "forbidden") {
		return KindAuth
	}

	if strings.Contains(errStr, "decode") || strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "unexpected") {
		return KindBadResponse
	}

	// Timeouts, connection resets, DNS failures and anything unrecognized.
	return KindNetwork
}

// upstream wraps err as an UpstreamError unless it already is one.
func upstream(err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Kind: classifyError(err), Err: err}
}
