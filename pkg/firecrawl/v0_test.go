package firecrawl_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orb/firescout/pkg/firecrawl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV0Scrape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v0/scrape", r.URL.Path)
			_ = json.NewEncoder(w).Encode(firecrawl.V0ScrapeResponse{
				Success: true,
				Data: firecrawl.V0Document{
					Content:  "plain text",
					Markdown: "# heading",
					Metadata: firecrawl.Metadata{
						Title:      "Example",
						StatusCode: 200,
					},
				},
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V0().Scrape(context.Background(), firecrawl.V0ScrapeParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "# heading", resp.Data.Markdown)
	assert.Equal(t, "Example", resp.Data.Metadata.Title)
}

func TestV0CrawlLifecycle(t *testing.T) {
	t.Parallel()

	var statusCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v0/crawl", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(firecrawl.V0CrawlResponse{JobID: "abc"})
	})
	mux.HandleFunc("GET /v0/crawl/status/abc", func(w http.ResponseWriter, r *http.Request) {
		statusCalls++
		status := firecrawl.V0CrawlStatus{
			Status:  firecrawl.JobStatusActive,
			Current: 1,
			Total:   2,
		}
		if statusCalls > 1 {
			status = firecrawl.V0CrawlStatus{
				Status:  firecrawl.JobStatusCompleted,
				Current: 2,
				Total:   2,
				Data:    []firecrawl.V0Document{{Markdown: "done"}},
			}
		}
		_ = json.NewEncoder(w).Encode(status)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V0().Crawl(context.Background(), firecrawl.V0CrawlParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "abc", resp.JobID)

	docs, err := client.V0().WaitForCrawl(context.Background(), resp.JobID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "done", docs[0].Markdown)
}

func TestV0CancelCrawl(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/v0/crawl/cancel/abc", r.URL.Path)
			_ = json.NewEncoder(w).Encode(firecrawl.V0CancelResponse{
				Status: "cancelled",
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V0().CancelCrawl(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestV0Search(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v0/search", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(firecrawl.V0SearchResponse{
				Success: true,
				Data: []firecrawl.V0Document{
					{Metadata: firecrawl.Metadata{SourceURL: "https://example.com"}},
				},
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V0().Search(context.Background(), firecrawl.V0SearchParams{
		Query: "example",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "example", gotBody["query"])
}
