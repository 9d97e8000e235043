// Package fetch talks to the remote suggestion endpoint.
//
// The contract is a single GET <url>?term=<term> answered with a JSON array of
// {query, suggest-text, suggest-url} objects. Anything else is an error; the
// widget treats every error as "no suggestions".
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"suggestable/internal/domain"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 4 << 20

// ErrMalformedBody is returned when the body is not a JSON array
var ErrMalformedBody = errors.New("malformed suggestion body")

// Fetcher retrieves suggestions for a term from an endpoint
type Fetcher interface {
	Fetch(ctx context.Context, endpoint, term string) ([]domain.Suggestion, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, endpoint, term string) ([]domain.Suggestion, error)

func (f FetcherFunc) Fetch(ctx context.Context, endpoint, term string) ([]domain.Suggestion, error) {
	return f(ctx, endpoint, term)
}

// StatusError reports a response outside the 2xx range
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("suggestion endpoint returned %s", e.Status)
}

// HTTPFetcher issues suggestion requests over HTTP
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures an HTTPFetcher
type Option func(*HTTPFetcher)

// WithClient replaces the default http.Client
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithTimeout bounds each request; zero means no deadline
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// NewHTTPFetcher creates a fetcher using http.DefaultClient unless overridden
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs GET endpoint?term=term and decodes the result list
func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint, term string) ([]domain.Suggestion, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	target, err := RequestURL(endpoint, term)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return Decode(body)
}

// RequestURL appends term as the "term" query parameter. The endpoint's own
// query is kept verbatim and spaces in term are sent as %20.
func RequestURL(endpoint, term string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	param := "term=" + strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String(), nil
}

// Decode parses a suggestion array. Bare strings are accepted as items with
// only a query, which is what older endpoints return.
func Decode(body []byte) ([]domain.Suggestion, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedBody
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrMalformedBody, result.Type)
	}

	items := make([]domain.Suggestion, 0, len(result.Array()))
	result.ForEach(func(_, v gjson.Result) bool {
		switch {
		case v.IsObject():
			items = append(items, domain.Suggestion{
				Query:       v.Get("query").String(),
				SuggestText: v.Get("suggest-text").String(),
				SuggestURL:  v.Get("suggest-url").String(),
			})
		case v.Type == gjson.String:
			items = append(items, domain.Suggestion{Query: v.String()})
		}
		return true
	})

	return items, nil
}
