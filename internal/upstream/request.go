package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/coinfeed/internal/metrics"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Message)
}

// Response is the outcome of one GET.
type Response struct {
	RequestID  string // X-Request-ID sent with the request
	StatusCode int    // 0 when no response arrived
	Body       []byte
}

// Successful reports whether the status is 2xx.
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON decodes the body into v, keeping numbers as json.Number.
// Trailing data after the first JSON value is an error.
func (r *Response) DecodeJSON(v any) error {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode response: trailing data after JSON value")
	}
	return nil
}

// Get performs a GET on rawURL with optional query parameters.
//
// The returned Response is never nil so callers can always log the request
// ID; StatusCode and Body are set whenever the upstream answered. A non-2xx
// answer returns a *StatusError alongside the Response.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*Response, error) {
	fullURL := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		fullURL += sep + query.Encode()
	}

	resp := &Response{RequestID: uuid.NewString()}
	start := time.Now()

	body, status, err := c.do(ctx, fullURL, resp.RequestID)
	resp.StatusCode = status
	resp.Body = body

	outcome := metrics.OutcomeOK
	switch {
	case status == 0:
		outcome = metrics.OutcomeTransport
	case !resp.Successful():
		outcome = metrics.OutcomeHTTPError
	}
	c.metrics.ObserveUpstream(c.service, outcome, time.Since(start))

	c.logger.Debug("upstream request",
		"service", c.service,
		"url", fullURL,
		"status", status,
		"request_id", resp.RequestID,
		"duration", time.Since(start),
	)

	if err != nil {
		return resp, err
	}
	if !resp.Successful() {
		return resp, &StatusError{
			StatusCode: status,
			Message:    http.StatusText(status),
			Body:       body,
		}
	}
	return resp, nil
}

// do sends the request and reads the whole body. status is 0 unless a
// response arrived.
func (c *Client) do(ctx context.Context, fullURL, requestID string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return body, httpResp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return body, httpResp.StatusCode, nil
}
