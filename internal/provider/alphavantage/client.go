// Package alphavantage is a small client for the AlphaVantage query API:
// GLOBAL_QUOTE, OVERVIEW and SYMBOL_SEARCH.
package alphavantage

import (
	"net/http"
	"net/url"
	"time"

	"portfolioquotes/internal/metrics"
)

const baseURL = "https://www.alphavantage.co/query"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the AlphaVantage API.
type Client struct {
	// baseURL is the query endpoint.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains the query parameters sent with each request (the API key).
	query url.Values
	// now stamps LastUpdated on fetched quotes.
	now     func() time.Time
	metrics *metrics.Metrics
}

// ClientOption is a configuration option for the client.
type ClientOption func(*Client)

// WithBaseURL sets the query endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client authenticated with key.
func NewClient(key string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		now:        time.Now,
	}
	if key != "" {
		c.query.Set("apikey", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}
