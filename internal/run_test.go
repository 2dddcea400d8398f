package internal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orb/firescout/internal"
	"orb/firescout/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConfig(apiURL string, version config.APIVersion) *config.Config {
	cfg := &config.Config{}
	cfg.API.URL = apiURL
	cfg.API.Key = "test-api-key"
	cfg.API.Version = version
	cfg.API.APITimeout = 10 * time.Second
	cfg.API.PollInterval = time.Millisecond
	cfg.Output.Format = config.OutputFormatMarkdown
	return cfg
}

func TestRunTaskV1Scrape(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/scrape", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://example.com", body["url"])
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"markdown": "# Example",
				"metadata": map[string]any{
					"sourceURL":  "https://example.com",
					"statusCode": 200,
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out, err := internal.RunTask(
		context.Background(),
		runConfig(server.URL, config.APIVersionV1),
		internal.Task{
			Operation: internal.OpScrape,
			URL:       "https://example.com",
			Formats:   []string{"markdown"},
		},
	)
	require.NoError(t, err)
	assert.Contains(t, out, "# Example")
}

func TestRunTaskV0Search(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v0/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{
					"content": "plain text result",
					"metadata": map[string]any{
						"sourceURL":  "https://found.example",
						"statusCode": 200,
					},
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out, err := internal.RunTask(
		context.Background(),
		runConfig(server.URL, config.APIVersionV0),
		internal.Task{Operation: internal.OpSearch, Query: "firescout"},
	)
	require.NoError(t, err)
	// v0 documents without markdown fall back to their plain content
	assert.Contains(t, out, "plain text result")
}

func TestRunTaskCrawlWithoutWaiting(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/crawl", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"id":      "job-7",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	out, err := internal.RunTask(
		context.Background(),
		runConfig(server.URL, config.APIVersionV1),
		internal.Task{Operation: internal.OpCrawl, URL: "https://example.com"},
	)
	require.NoError(t, err)
	assert.Equal(t, "crawl job started: job-7\n", out)
}

func TestRunTaskOperationVersionMismatch(t *testing.T) {
	t.Parallel()

	cfg := runConfig("https://api.firecrawl.dev", config.APIVersionV0)
	_, err := internal.RunTask(
		context.Background(), cfg, internal.Task{Operation: internal.OpMap},
	)
	require.ErrorContains(t, err, "not available on the v0 API")

	cfg.API.Version = config.APIVersionV1
	_, err = internal.RunTask(
		context.Background(), cfg, internal.Task{Operation: internal.OpSearch},
	)
	require.ErrorContains(t, err, "not available on the v1 API")
}
