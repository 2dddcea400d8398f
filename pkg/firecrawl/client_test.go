package firecrawl_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orb/firescout/pkg/config"
	"orb/firescout/pkg/firecrawl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(url string) config.APIConfig {
	return config.APIConfig{
		URL:          url,
		Key:          "test-api-key",
		Version:      config.APIVersionV1,
		APITimeout:   5 * time.Second,
		NumRetries:   2,
		MinWaitTime:  time.Millisecond,
		MaxWaitTime:  5 * time.Millisecond,
		PollInterval: time.Millisecond,
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	client := firecrawl.NewClient(testAPIConfig("https://api.firecrawl.dev"))

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			name:     "relative with leading slash",
			endpoint: "/v1/scrape",
			want:     "https://api.firecrawl.dev/v1/scrape",
		},
		{
			name:     "relative without leading slash",
			endpoint: "v1/scrape",
			want:     "https://api.firecrawl.dev/v1/scrape",
		},
		{
			name:     "absolute same host",
			endpoint: "https://api.firecrawl.dev/v1/crawl/123?skip=10",
			want:     "https://api.firecrawl.dev/v1/crawl/123?skip=10",
		},
		{
			name:     "absolute foreign host is pinned to base",
			endpoint: "https://malicious.com/v1/scrape?x=1",
			want:     "https://api.firecrawl.dev/v1/scrape?x=1",
		},
		{
			name:     "absolute foreign host without path",
			endpoint: "https://malicious.com",
			want:     "https://api.firecrawl.dev/",
		},
		{
			name:     "protocol-relative does not slip through",
			endpoint: "//malicious.com/v1/scrape",
			want:     "https://api.firecrawl.dev/v1/scrape",
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, client.BuildURL(test.endpoint))
		})
	}
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	client := firecrawl.NewClient(testAPIConfig("https://api.firecrawl.dev"))

	t.Run("relative endpoint carries bearer", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("/v1/scrape", "")
		assert.Equal(t, "Bearer test-api-key", headers["Authorization"])
	})

	t.Run("same host absolute endpoint carries bearer", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("https://api.firecrawl.dev/v1/scrape", "")
		assert.Equal(t, "Bearer test-api-key", headers["Authorization"])
	})

	t.Run("trailing dot and case are normalized", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("https://API.Firecrawl.dev./v1/scrape", "")
		assert.Equal(t, "Bearer test-api-key", headers["Authorization"])
	})

	t.Run("foreign host drops bearer", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("https://malicious.com/v1/scrape", "")
		assert.NotContains(t, headers, "Authorization")
	})

	t.Run("crafted subdomain drops bearer", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("https://api.firecrawl.dev.evil.com/v1/scrape", "")
		assert.NotContains(t, headers, "Authorization")
	})

	t.Run("blank key never produces bearer", func(t *testing.T) {
		t.Parallel()
		cfg := testAPIConfig("https://api.firecrawl.dev")
		cfg.Key = "   "
		blank := firecrawl.NewClient(cfg)
		headers := blank.Headers("/v1/scrape", "")
		assert.NotContains(t, headers, "Authorization")
	})

	t.Run("idempotency key is forwarded regardless of host", func(t *testing.T) {
		t.Parallel()
		headers := client.Headers("https://malicious.com/v1/scrape", "key-1")
		assert.NotContains(t, headers, "Authorization")
		assert.Equal(t, "key-1", headers["x-idempotency-key"])
	})
}

func TestRetryOnBadGateway(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(firecrawl.ScrapeResponse{
				Success: true,
				Data:    firecrawl.Document{Markdown: "# hello"},
			})
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	resp, err := client.V1().Scrape(context.Background(), firecrawl.ScrapeParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "# hello", resp.Data.Markdown)
	assert.Equal(t, 2, calls)
}

func TestAPIErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"job not found"}`))
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	_, err := client.V1().CrawlStatus(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *firecrawl.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "job not found", apiErr.Message)
}

func TestPostCarriesOriginAndAuth(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"success":true,"data":{"metadata":{"statusCode":200}}}`))
		},
	))
	defer server.Close()

	client := firecrawl.NewClient(testAPIConfig(server.URL))
	_, err := client.V1().Scrape(context.Background(), firecrawl.ScrapeParams{
		URL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-api-key", gotAuth)
	assert.Equal(t, "go-sdk@"+firecrawl.Version, gotBody["origin"])
	assert.Equal(t, "https://example.com", gotBody["url"])
}
