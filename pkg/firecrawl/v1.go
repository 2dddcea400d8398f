package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// V1 exposes the current generation of the API.
type V1 struct {
	c *Client
}

func (c *Client) V1() V1 {
	return V1{c: c}
}

type ScrapeOptions struct {
	Formats         []string          `json:"formats,omitempty"`
	OnlyMainContent *bool             `json:"onlyMainContent,omitempty"`
	IncludeTags     []string          `json:"includeTags,omitempty"`
	ExcludeTags     []string          `json:"excludeTags,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	WaitFor         int               `json:"waitFor,omitempty"`
	Timeout         int               `json:"timeout,omitempty"`
}

type ScrapeParams struct {
	URL string `json:"url"`
	ScrapeOptions
}

type ScrapeResponse struct {
	Success bool     `json:"success"`
	Data    Document `json:"data"`
}

type CrawlParams struct {
	URL                string         `json:"url"`
	IncludePaths       []string       `json:"includePaths,omitempty"`
	ExcludePaths       []string       `json:"excludePaths,omitempty"`
	MaxDepth           int            `json:"maxDepth,omitempty"`
	Limit              int            `json:"limit,omitempty"`
	AllowBackwardLinks bool           `json:"allowBackwardLinks,omitempty"`
	AllowExternalLinks bool           `json:"allowExternalLinks,omitempty"`
	IgnoreSitemap      bool           `json:"ignoreSitemap,omitempty"`
	ScrapeOptions      *ScrapeOptions `json:"scrapeOptions,omitempty"`
}

type CrawlResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	URL     string `json:"url"`
}

type CrawlStatus struct {
	Status      JobStatus  `json:"status"`
	Total       int        `json:"total"`
	Completed   int        `json:"completed"`
	CreditsUsed int        `json:"creditsUsed"`
	ExpiresAt   string     `json:"expiresAt,omitempty"`
	Next        *string    `json:"next,omitempty"`
	Data        []Document `json:"data,omitempty"`
}

type CancelCrawlResponse struct {
	Status string `json:"status"`
}

type MapParams struct {
	URL               string `json:"url"`
	Search            string `json:"search,omitempty"`
	IgnoreSitemap     bool   `json:"ignoreSitemap,omitempty"`
	IncludeSubdomains bool   `json:"includeSubdomains,omitempty"`
	Limit             int    `json:"limit,omitempty"`
}

type MapResponse struct {
	Success bool     `json:"success"`
	Links   []string `json:"links"`
}

func (v V1) Scrape(
	ctx context.Context,
	params ScrapeParams,
) (*ScrapeResponse, error) {
	var resp ScrapeResponse
	if err := v.c.post(ctx, "/v1/scrape", params, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Crawl starts an asynchronous crawl job. The request carries an
// idempotency key so a retried start cannot spawn a second job.
func (v V1) Crawl(
	ctx context.Context,
	params CrawlParams,
) (*CrawlResponse, error) {
	var resp CrawlResponse
	key := uuid.NewString()
	if err := v.c.post(ctx, "/v1/crawl", params, &resp, key); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v V1) CrawlStatus(
	ctx context.Context,
	id string,
) (*CrawlStatus, error) {
	var status CrawlStatus
	endpoint := fmt.Sprintf("/v1/crawl/%s", id)
	if err := v.c.get(ctx, endpoint, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (v V1) CancelCrawl(
	ctx context.Context,
	id string,
) (*CancelCrawlResponse, error) {
	var resp CancelCrawlResponse
	endpoint := fmt.Sprintf("/v1/crawl/%s", id)
	if err := v.c.delete(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v V1) Map(
	ctx context.Context,
	params MapParams,
) (*MapResponse, error) {
	var resp MapResponse
	if err := v.c.post(ctx, "/v1/map", params, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForCrawl polls the job until it reaches a terminal state, then
// follows `next` links to collect every page of the result set. The
// pagination links come back as absolute URLs; BuildURL pins them to the
// configured host before they are followed.
func (v V1) WaitForCrawl(
	ctx context.Context,
	id string,
) ([]Document, error) {
	for {
		status, err := retry.DoWithData(
			func() (*CrawlStatus, error) {
				return v.CrawlStatus(ctx, id)
			},
			retry.Context(ctx),
			retry.Attempts(uint(v.c.cfg.NumRetries)+1),
		)
		if err != nil {
			return nil, fmt.Errorf("polling crawl %s: %w", id, err)
		}
		zap.S().Debugw(
			"crawl status",
			"id", id,
			"status", status.Status,
			"completed", status.Completed,
			"total", status.Total,
		)
		switch status.Status {
		case JobStatusCompleted:
			return v.collectPages(ctx, status)
		case JobStatusFailed:
			return status.Data, fmt.Errorf("%w: %s", ErrCrawlFailed, id)
		case JobStatusCancelled:
			return status.Data, fmt.Errorf("%w: %s", ErrCrawlCancelled, id)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(v.c.cfg.PollInterval):
		}
	}
}

func (v V1) collectPages(
	ctx context.Context,
	status *CrawlStatus,
) ([]Document, error) {
	documents := status.Data
	next := status.Next
	for next != nil && *next != "" {
		var page CrawlStatus
		if err := v.c.get(ctx, *next, &page); err != nil {
			return documents, fmt.Errorf("following crawl pagination: %w", err)
		}
		documents = append(documents, page.Data...)
		next = page.Next
	}
	return documents, nil
}
