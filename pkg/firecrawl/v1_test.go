package firecrawl_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"orb/firescout/pkg/firecrawl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV1CrawlLifecycle(t *testing.T) {
	t.Parallel()

	var statusCalls int
	var gotIdempotencyKey string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/crawl", func(w http.ResponseWriter, r *http.Request) {
		gotIdempotencyKey = r.Header.Get("x-idempotency-key")
		_ = json.NewEncoder(w).Encode(firecrawl.CrawlResponse{
			Success: true,
			ID:      "job-1",
		})
	})
	mux.HandleFunc("GET /v1/crawl/job-1", func(w http.ResponseWriter, r *http.Request) {
		statusCalls++
		status := firecrawl.CrawlStatus{Status: firecrawl.JobStatusScraping}
		if statusCalls > 1 {
			status = firecrawl.CrawlStatus{
				Status:    firecrawl.JobStatusCompleted,
				Total:     1,
				Completed: 1,
				Data: []firecrawl.Document{
					{Markdown: "# page", Metadata: firecrawl.Metadata{
						SourceURL:  "https://example.com",
						StatusCode: 200,
					}},
				},
			}
		}
		_ = json.NewEncoder(w).Encode(status)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V1().Crawl(context.Background(), firecrawl.CrawlParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", resp.ID)
	assert.NotEmpty(t, gotIdempotencyKey)

	docs, err := client.V1().WaitForCrawl(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "# page", docs[0].Markdown)
	assert.Equal(t, 2, statusCalls)
}

func TestV1WaitForCrawlPagination(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("GET /v1/crawl/job-2", func(w http.ResponseWriter, r *http.Request) {
		next := fmt.Sprintf("%s/v1/crawl/job-2/page-2", server.URL)
		_ = json.NewEncoder(w).Encode(firecrawl.CrawlStatus{
			Status:    firecrawl.JobStatusCompleted,
			Total:     2,
			Completed: 2,
			Next:      &next,
			Data:      []firecrawl.Document{{Markdown: "first"}},
		})
	})
	mux.HandleFunc("GET /v1/crawl/job-2/page-2", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(firecrawl.CrawlStatus{
			Status: firecrawl.JobStatusCompleted,
			Data:   []firecrawl.Document{{Markdown: "second"}},
		})
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	docs, err := client.V1().WaitForCrawl(context.Background(), "job-2")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].Markdown)
	assert.Equal(t, "second", docs[1].Markdown)
}

func TestV1WaitForCrawlFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(firecrawl.CrawlStatus{
				Status: firecrawl.JobStatusFailed,
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	_, err := client.V1().WaitForCrawl(context.Background(), "job-3")
	require.ErrorIs(t, err, firecrawl.ErrCrawlFailed)
}

func TestV1Map(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/map", r.URL.Path)
			_ = json.NewEncoder(w).Encode(firecrawl.MapResponse{
				Success: true,
				Links:   []string{"https://example.com/a", "https://example.com/b"},
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V1().Map(context.Background(), firecrawl.MapParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Links, 2)
}

func TestV1CancelCrawl(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			_ = json.NewEncoder(w).Encode(firecrawl.CancelCrawlResponse{
				Status: "cancelled",
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V1().CancelCrawl(context.Background(), "job-4")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}
