package firecrawl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"orb/firescout/pkg/config"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client is the shared transport under both API generations. It owns URL
// building, the same-host authorization guard and the retry policy; the
// version-specific operation sets live in v0.go and v1.go.
type Client struct {
	http   *resty.Client
	apiURL string
	apiKey string
	cfg    config.APIConfig
}

func NewClient(cfg config.APIConfig) *Client {
	httpClient := resty.New().
		SetRetryCount(cfg.NumRetries).
		SetTimeout(cfg.APITimeout).
		SetRetryWaitTime(cfg.MinWaitTime).
		SetRetryMaxWaitTime(cfg.MaxWaitTime).
		// POSTs are retried too; crawl starts carry an idempotency key,
		// so a replay cannot spawn a second job.
		SetAllowNonIdempotentRetry(true).
		AddRetryConditions(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			if r.StatusCode() == http.StatusBadGateway {
				zap.S().Debugw(
					"retrying request",
					"status_code", r.StatusCode(),
					"url", r.Request.URL,
				)
				return true
			}
			return false
		}).
		SetLogger(zap.S())

	return &Client{
		http:   httpClient,
		apiURL: strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.Key,
		cfg:    cfg,
	}
}

// BuildURL resolves an endpoint against the API base URL. Absolute
// endpoints keep their path and query but are forced onto the base
// scheme and host, so a poisoned `next` link can never drag a request
// off to a foreign server.
func (c *Client) BuildURL(endpoint string) string {
	base, err := url.Parse(c.apiURL)
	if err != nil || base.Host == "" {
		return endpoint
	}
	if base.Scheme == "" {
		base.Scheme = "https"
	}

	// Protocol-relative endpoints like //host/path must not slip
	// through as relative ones.
	if strings.HasPrefix(endpoint, "//") {
		endpoint = "https:" + endpoint
	}

	ep, err := url.Parse(endpoint)
	if err != nil {
		return c.apiURL
	}

	if ep.Host != "" {
		path := ep.Path
		if path == "" {
			path = "/"
		}
		rebuilt := url.URL{
			Scheme:   base.Scheme,
			Host:     base.Host,
			Path:     path,
			RawQuery: ep.RawQuery,
		}
		return rebuilt.String()
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(ep).String()
}

// SameHost reports whether the endpoint targets the same host as the API
// base URL. Hostnames are compared case-insensitively with trailing dots
// stripped; ports and schemes are ignored. Relative endpoints always
// target the base host.
func (c *Client) SameHost(endpoint string) bool {
	if !strings.HasPrefix(endpoint, "http://") &&
		!strings.HasPrefix(endpoint, "https://") {
		return true
	}
	target, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	base, err := url.Parse(c.apiURL)
	if err != nil {
		return false
	}
	normalize := func(host string) string {
		return strings.ToLower(strings.TrimSuffix(host, "."))
	}
	return normalize(target.Hostname()) == normalize(base.Hostname())
}

// Headers prepares request headers. The bearer token is attached only
// when the key is non-blank and the endpoint targets the base host; the
// idempotency key is forwarded regardless.
func (c *Client) Headers(endpoint string, idempotencyKey string) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if key := strings.TrimSpace(c.apiKey); key != "" && c.SameHost(endpoint) {
		headers["Authorization"] = "Bearer " + key
	}
	if idempotencyKey != "" {
		headers["x-idempotency-key"] = idempotencyKey
	}
	return headers
}

func (c *Client) post(
	ctx context.Context,
	endpoint string,
	payload any,
	out any,
	idempotencyKey string,
) error {
	body, err := withOrigin(payload)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	resp, err := c.http.R().
		WithContext(ctx).
		SetHeaders(c.Headers(endpoint, idempotencyKey)).
		SetBody(body).
		Post(c.BuildURL(endpoint))
	if err != nil {
		return fmt.Errorf("posting to %s: %w", endpoint, err)
	}
	return decode(resp, out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	resp, err := c.http.R().
		WithContext(ctx).
		SetHeaders(c.Headers(endpoint, "")).
		Get(c.BuildURL(endpoint))
	if err != nil {
		return fmt.Errorf("getting %s: %w", endpoint, err)
	}
	return decode(resp, out)
}

func (c *Client) delete(ctx context.Context, endpoint string, out any) error {
	resp, err := c.http.R().
		WithContext(ctx).
		SetHeaders(c.Headers(endpoint, "")).
		Delete(c.BuildURL(endpoint))
	if err != nil {
		return fmt.Errorf("deleting %s: %w", endpoint, err)
	}
	return decode(resp, out)
}

func decode(resp *resty.Response, out any) error {
	body := resp.Bytes()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return apiError(resp.StatusCode(), body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshalling response: %w", err)
	}
	return nil
}

// The API tracks which client generated a request through the `origin`
// field of the payload.
func withOrigin(payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["origin"] = origin
	return body, nil
}
