package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// V0 exposes the legacy generation of the API.
type V0 struct {
	c *Client
}

func (c *Client) V0() V0 {
	return V0{c: c}
}

type V0PageOptions struct {
	OnlyMainContent bool `json:"onlyMainContent,omitempty"`
	IncludeHTML     bool `json:"includeHtml,omitempty"`
	Screenshot      bool `json:"screenshot,omitempty"`
	WaitFor         int  `json:"waitFor,omitempty"`
}

type V0CrawlerOptions struct {
	Includes              []string `json:"includes,omitempty"`
	Excludes              []string `json:"excludes,omitempty"`
	MaxDepth              int      `json:"maxDepth,omitempty"`
	Limit                 int      `json:"limit,omitempty"`
	AllowBackwardCrawling bool     `json:"allowBackwardCrawling,omitempty"`
	IgnoreSitemap         bool     `json:"ignoreSitemap,omitempty"`
}

type V0ScrapeParams struct {
	URL         string         `json:"url"`
	PageOptions *V0PageOptions `json:"pageOptions,omitempty"`
}

type V0Document struct {
	Content  string   `json:"content,omitempty"`
	Markdown string   `json:"markdown,omitempty"`
	HTML     string   `json:"html,omitempty"`
	Metadata Metadata `json:"metadata"`
}

type V0ScrapeResponse struct {
	Success bool       `json:"success"`
	Data    V0Document `json:"data"`
}

type V0CrawlParams struct {
	URL            string            `json:"url"`
	CrawlerOptions *V0CrawlerOptions `json:"crawlerOptions,omitempty"`
	PageOptions    *V0PageOptions    `json:"pageOptions,omitempty"`
}

type V0CrawlResponse struct {
	JobID string `json:"jobId"`
}

type V0CrawlStatus struct {
	Status      JobStatus    `json:"status"`
	Current     int          `json:"current"`
	Total       int          `json:"total"`
	Data        []V0Document `json:"data,omitempty"`
	PartialData []V0Document `json:"partial_data,omitempty"`
}

type V0CancelResponse struct {
	Status string `json:"status"`
}

type V0SearchOptions struct {
	Limit int `json:"limit,omitempty"`
}

type V0SearchParams struct {
	Query         string           `json:"query"`
	PageOptions   *V0PageOptions   `json:"pageOptions,omitempty"`
	SearchOptions *V0SearchOptions `json:"searchOptions,omitempty"`
}

type V0SearchResponse struct {
	Success bool         `json:"success"`
	Data    []V0Document `json:"data"`
}

func (v V0) Scrape(
	ctx context.Context,
	params V0ScrapeParams,
) (*V0ScrapeResponse, error) {
	var resp V0ScrapeResponse
	if err := v.c.post(ctx, "/v0/scrape", params, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Crawl starts an asynchronous crawl job and returns its id. The request
// carries an idempotency key so a retried start cannot spawn a second job.
func (v V0) Crawl(
	ctx context.Context,
	params V0CrawlParams,
) (*V0CrawlResponse, error) {
	var resp V0CrawlResponse
	key := uuid.NewString()
	if err := v.c.post(ctx, "/v0/crawl", params, &resp, key); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v V0) CrawlStatus(
	ctx context.Context,
	jobID string,
) (*V0CrawlStatus, error) {
	var status V0CrawlStatus
	endpoint := fmt.Sprintf("/v0/crawl/status/%s", jobID)
	if err := v.c.get(ctx, endpoint, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (v V0) CancelCrawl(
	ctx context.Context,
	jobID string,
) (*V0CancelResponse, error) {
	var resp V0CancelResponse
	endpoint := fmt.Sprintf("/v0/crawl/cancel/%s", jobID)
	if err := v.c.delete(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v V0) Search(
	ctx context.Context,
	params V0SearchParams,
) (*V0SearchResponse, error) {
	var resp V0SearchResponse
	if err := v.c.post(ctx, "/v0/search", params, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForCrawl polls the job status until it reaches a terminal state and
// returns the collected documents. Transient poll failures are retried
// before giving up on the job.
func (v V0) WaitForCrawl(
	ctx context.Context,
	jobID string,
) ([]V0Document, error) {
	for {
		status, err := retry.DoWithData(
			func() (*V0CrawlStatus, error) {
				return v.CrawlStatus(ctx, jobID)
			},
			retry.Context(ctx),
			retry.Attempts(uint(v.c.cfg.NumRetries)+1),
		)
		if err != nil {
			return nil, fmt.Errorf("polling crawl %s: %w", jobID, err)
		}
		zap.S().Debugw(
			"crawl status",
			"job_id", jobID,
			"status", status.Status,
			"current", status.Current,
			"total", status.Total,
		)
		switch status.Status {
		case JobStatusCompleted:
			return status.Data, nil
		case JobStatusFailed:
			return status.PartialData, fmt.Errorf("%w: %s", ErrCrawlFailed, jobID)
		case JobStatusCancelled:
			return status.PartialData, fmt.Errorf("%w: %s", ErrCrawlCancelled, jobID)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(v.c.cfg.PollInterval):
		}
	}
}
