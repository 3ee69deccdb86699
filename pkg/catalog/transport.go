package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// apiErrorBody is the JSON error envelope returned by the Web API.
type apiErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

const (
	// rateLimitRetries bounds how many times a rate-limited request
	// is reissued before giving up.
	rateLimitRetries = 3

	// defaultRetryAfter is used when a 429 response carries no
	// Retry-After header.
	defaultRetryAfter = 2 * time.Second
)

// call makes an authenticated HTTP request to the Web API.
//
// It handles:
// - Request construction with bearer token and JSON body
// - Response parsing into out (skipped when out is nil or body empty)
// - Error envelope decoding into *Error
// - Bounded retry on 429 (honoring Retry-After) and 5xx
// - Context cancellation
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if c.accessToken == "" {
		return ErrNoAccessToken
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	backoff := 1 * time.Second

	for i := 0; i < rateLimitRetries; i++ {
		c.logDebugf("catalog: %s %s (attempt %d/%d)", method, path, i+1, rateLimitRetries)

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("User-Agent", "venuesync/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && i < rateLimitRetries-1 {
				c.logDebugf("catalog: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return fmt.Errorf("http request failed: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp)
			apiErr := &Error{
				StatusCode: resp.StatusCode,
				Message:    decodeErrorMessage(respBody),
				RetryAfter: int(wait.Seconds()),
			}
			lastErr = apiErr
			if i < rateLimitRetries-1 {
				c.logDebugf("catalog: rate limited, sleeping %s", wait)
				if !sleep(ctx, wait) {
					return ctx.Err()
				}
				continue
			}
			return apiErr
		}

		if resp.StatusCode >= 500 {
			lastErr = &Error{StatusCode: resp.StatusCode, Message: decodeErrorMessage(respBody)}
			if i < rateLimitRetries-1 {
				c.logDebugf("catalog: server error, retrying: %v", lastErr)
				if !sleep(ctx, backoff) {
					return ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return lastErr
		}

		if resp.StatusCode >= 400 {
			return &Error{StatusCode: resp.StatusCode, Message: decodeErrorMessage(respBody)}
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
		}

		c.logDebugf("catalog: %s %s succeeded", method, path)
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeErrorMessage extracts the message from an API error body,
// falling back to the raw body when the envelope does not parse.
func decodeErrorMessage(body []byte) string {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if len(body) == 0 {
		return "no error body"
	}
	return string(body)
}

// retryAfter reads the Retry-After header from a 429 response.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryAfter
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	if urlErr, ok := err.(*url.Error); ok {
		if _, ok := urlErr.Err.(net.Error); ok {
			return true
		}
	}

	return false
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
