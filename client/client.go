// Package client is the REST transport for the Buckler marketplace backend.
// It attaches bearer credentials, retries transient read failures once, and
// runs the single-refresh-then-replay protocol on HTTP 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"buckler/utils"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token and owns the refresh protocol.
// Implementations must let concurrent callers share a single in-flight
// refresh; parallel refreshes would invalidate a freshly rotated token.
type TokenSource interface {
	AccessToken() string
	Refresh(ctx context.Context) error
	// Clear drops the local session after an exhausted refresh.
	Clear()
}

// Client talks to the marketplace backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

// New returns a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  utils.GetLogger(),
	}
}

// SetTokenSource wires the session store in after construction. The session
// store needs the client for its own auth calls, so this runs second.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *Client) tokenSource() TokenSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

type requestOptions struct {
	query     url.Values
	form      url.Values // form-encoded body instead of JSON
	noAuth    bool       // skip bearer attachment
	noRefresh bool       // skip refresh-on-401 (auth endpoints themselves)
}

// do executes one request. Reads (GET) retry once on transport failure;
// mutations never retry. A 401 triggers exactly one shared refresh and one
// replay before the error is surfaced.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, opts requestOptions) error {
	var payload []byte
	contentType := ""
	if opts.form != nil {
		payload = []byte(opts.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, payload, contentType, opts)
	if err != nil {
		if method == http.MethodGet && utils.IsRetryable(err) {
			c.logger.Debug("retrying read after transport failure",
				zap.String("path", path), zap.Error(err))
			resp, err = c.send(ctx, method, path, payload, contentType, opts)
		}
		if err != nil {
			return err
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.noRefresh {
		ts := c.tokenSource()
		resp.Body.Close()
		if ts == nil {
			return &utils.APIError{Status: http.StatusUnauthorized, Detail: "not authenticated"}
		}
		if err := ts.Refresh(ctx); err != nil {
			c.logger.Warn("token refresh failed, clearing session", zap.Error(err))
			ts.Clear()
			return &utils.APIError{Status: http.StatusUnauthorized, Detail: "session expired"}
		}
		resp, err = c.send(ctx, method, path, payload, contentType, opts)
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, contentType string, opts requestOptions) (*http.Response, error) {
	u := c.baseURL + path
	if len(opts.query) > 0 {
		u += "?" + opts.query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if !opts.noAuth {
		if ts := c.tokenSource(); ts != nil {
			if token := ts.AccessToken(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &utils.NetworkError{Err: err}
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail := resp.Status
		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Detail != "" {
			detail = errBody.Detail
		}
		return &utils.APIError{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
