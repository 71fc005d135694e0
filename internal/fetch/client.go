// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/GregConan/knower/internal/httputil"
	"github.com/GregConan/knower/pkg/types"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultLandingTimeout = 20 * time.Second
	defaultUserAgent      = "knower/0.1 (https://github.com/GregConan/knower)"
	defaultRatePerSecond  = 2
)

// defaultHeaders is the header set sent with every request unless a
// call overrides individual entries.
// Accept-Encoding is left to the transport so response bodies arrive
// decompressed.
var defaultHeaders = map[string]string{
	"Accept":  "application/xml,application/xhtml+xml,text/html,*/*",
	"Referer": "api.crossref.org",
}

// Response is a fully read HTTP response. FinalURL reflects any
// redirects the request followed.
type Response struct {
	StatusCode int
	Status     string
	FinalURL   *url.URL
	Header     http.Header
	Body       []byte
}

// Client is the retrieval layer shared by all downloaders. It owns one
// persistent http.Client for connection reuse, paces outbound requests
// through a rate limiter, and appends every received response to an
// ordered, append-only log kept for post-hoc debugging.
type Client struct {
	hc        *http.Client
	noFollow  *http.Client
	limiter   *rate.Limiter
	userAgent string
	timeout   time.Duration
	log       []types.ResponseRecord
}

// NewClient builds a Client from cfg, applying the package defaults for
// any zero fields.
func NewClient(cfg types.HTTPConfig, perSecond float64) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	return &Client{
		hc: &http.Client{},
		noFollow: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
		userAgent: ua,
		timeout:   timeout,
	}
}

// getOptions adjusts one get call. The zero value requests the defaults:
// redirects followed, Client timeout, no extra params or headers.
type getOptions struct {
	params   []Param
	headers  map[string]string
	timeout  time.Duration
	noFollow bool
}

// get issues a GET against rawURL, merging opt.headers over the default
// header set, appending opt.params to the query string, and retrying on
// HTTP 429. The response body is read in full before returning. Every
// response received, success or not, is appended to the log; transport
// failures return a *TransportError.
func (c *Client) get(ctx context.Context, rawURL string, opt getOptions) (*Response, error) {
	if len(opt.params) > 0 {
		sep := "?"
		for _, p := range opt.params {
			rawURL += sep + p.Key + "=" + p.Value
			sep = "&"
		}
	}

	timeout := opt.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range opt.headers {
		req.Header.Set(k, v)
	}

	hc := c.hc
	if opt.noFollow {
		hc = c.noFollow
	}
	resp, err := httputil.DoWithRetry(ctx, hc, req, 0)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	r := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		FinalURL:   resp.Request.URL,
		Header:     resp.Header,
		Body:       body,
	}
	c.log = append(c.log, types.ResponseRecord{
		Time:       time.Now(),
		Method:     http.MethodGet,
		URL:        rawURL,
		FinalURL:   r.FinalURL.String(),
		StatusCode: r.StatusCode,
		BodyBytes:  len(body),
		Header:     r.Header,
	})
	return r, nil
}

// Log returns a copy of the response log, in call order.
func (c *Client) Log() []types.ResponseRecord {
	out := make([]types.ResponseRecord, len(c.log))
	copy(out, c.log)
	return out
}
