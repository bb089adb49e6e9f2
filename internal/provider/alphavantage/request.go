package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"
)

var (
	// ErrRateLimited reports that the API answered with a Note or
	// Information message instead of data, or with HTTP 429.
	ErrRateLimited = errors.New("alphavantage: rate limited")
	// ErrUpstream reports a non-2xx status or an "Error Message" payload.
	ErrUpstream = errors.New("alphavantage: upstream error")
	// ErrMalformed reports a payload that could not be decoded or parsed.
	ErrMalformed = errors.New("alphavantage: malformed response")
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// get calls function with params and returns the decoded JSON object.
func (c *Client) get(ctx context.Context, function string, params map[string]string) (doc map[string]any, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream(function, start, err) }()

	query := maps.Clone(c.query)
	query.Set("function", function)
	for k, v := range params {
		query.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, res.StatusCode)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBody)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding %s response: %v", ErrMalformed, function, err)
	}

	// The API reports throttling and bad calls with HTTP 200 and a message body.
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := doc[key]; ok {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, msg)
		}
	}
	if msg, ok := doc["Error Message"]; ok {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, msg)
	}
	return doc, nil
}
