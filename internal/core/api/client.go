// Package api is a client for the campus mobile backend. Each method issues exactly one HTTP
// request and returns a normalized Response; per-call failures never surface as Go errors.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/penwyp/go-campus-client/internal/config"
	"github.com/penwyp/go-campus-client/internal/core/checksum"
	"github.com/penwyp/go-campus-client/internal/util"
)

const (
	// UserAgent mimics the mobile app's HTTP stack.
	UserAgent   = "okhttp/3.12.1"
	contentType = "application/json"
)

// Client talks to the primary backend and the survey backend.
// It is safe for concurrent use; all state is read-only after New.
type Client struct {
	baseURL    string
	surveyURL  string
	authenKey  string
	signer     checksum.Signer
	httpClient *http.Client

	timeout        time.Duration
	clock          checksum.Clock
	ratingJSONBody bool
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient bases requests on a copy of hc; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP timeout, overriding the configured one.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithClock replaces the clock used for timestamp slots.
func WithClock(clock checksum.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithRatingJSONBody makes AddRate send its parameters as a JSON body instead of a query string.
func WithRatingJSONBody() Option {
	return func(c *Client) { c.ratingJSONBody = true }
}

// New validates cfg and builds a client. It fails before any network activity when a base URL,
// the auth key, or any signing secret is missing.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}

	c := &Client{
		baseURL:   cfg.BaseURL,
		surveyURL: cfg.SurveyURL,
		authenKey: cfg.AuthenKey,
	}
	for _, o := range opts {
		o(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: timeout}
	} else {
		hc := *c.httpClient
		c.httpClient = &hc
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	if c.clock == nil {
		tp, err := util.NewTimeProvider(cfg.Timezone)
		if err != nil {
			return nil, err
		}
		c.clock = tp
	}

	signer, err := checksum.New(cfg.Secrets, c.clock)
	if err != nil {
		return nil, err
	}
	c.signer = signer

	util.LogDebug(fmt.Sprintf("Campus client ready: %s", cfg))
	return c, nil
}

// Signer exposes the client's signer, mainly for diagnostics.
func (c *Client) Signer() checksum.Signer {
	return c.signer
}

// authen forwards the caller's token verbatim and falls back to the configured key.
func (c *Client) authen(token string) string {
	if token != "" {
		return token
	}
	return c.authenKey
}

// get issues a GET against the primary backend.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) Response {
	return c.do(ctx, http.MethodGet, c.baseURL, endpoint, params, false)
}

// do performs one request and normalizes the result. With jsonBody set the parameters are sent
// as a JSON object body and the query string stays empty.
func (c *Client) do(ctx context.Context, method, base, endpoint string, params url.Values, jsonBody bool) Response {
	requestID := uuid.NewString()
	start := time.Now()

	target := base + "/" + endpoint
	var body io.Reader
	if jsonBody {
		payload := make(map[string]string, len(params))
		for k := range params {
			payload[k] = params.Get(k)
		}
		data, err := sonic.Marshal(payload)
		if err != nil {
			return transportFailure(fmt.Errorf("failed to encode request body: %w", err))
		}
		body = bytes.NewReader(data)
	} else if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.LogWarnf("Request %s %s failed (request_id=%s): %v", method, endpoint, requestID, withoutURL(err))
		return transportFailure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		util.LogWarnf("Request %s %s failed reading body (request_id=%s): %v", method, endpoint, requestID, err)
		return transportFailure(fmt.Errorf("failed to read response body: %w", err))
	}

	result := httpResponse(resp.StatusCode, raw)
	code, _ := result.Code()
	util.LogDebugFields("Request completed",
		util.Field{Key: "request_id", Value: requestID},
		util.Field{Key: "method", Value: method},
		util.Field{Key: "endpoint", Value: endpoint},
		util.Field{Key: "status", Value: resp.StatusCode},
		util.Field{Key: "code", Value: code},
		util.Field{Key: "success", Value: result.Success},
		util.Field{Key: "elapsed", Value: time.Since(start).String()})
	if !result.Success {
		util.LogInfof("Request %s %s unsuccessful (request_id=%s): status=%d code=%q",
			method, endpoint, requestID, resp.StatusCode, code)
	}
	return result
}

// withoutURL strips the request URL from transport errors; its query carries Authen and checksum.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
