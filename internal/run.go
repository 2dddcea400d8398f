package internal

import (
	"context"
	"fmt"
	"os"

	"orb/firescout/internal/render"
	"orb/firescout/pkg/config"
	"orb/firescout/pkg/firecrawl"

	"go.uber.org/zap"
)

// RunTask executes one task against the configured API generation and
// returns the rendered output.
func RunTask(
	ctx context.Context,
	cfg *config.Config,
	task Task,
) (string, error) {
	client := firecrawl.NewClient(cfg.API)
	switch cfg.API.Version {
	case config.APIVersionV0:
		return runV0(ctx, cfg, client.V0(), task)
	case config.APIVersionV1:
		return runV1(ctx, cfg, client.V1(), task)
	default:
		return "", fmt.Errorf("unexpected API version: %q", cfg.API.Version)
	}
}

func runV0(
	ctx context.Context,
	cfg *config.Config,
	api firecrawl.V0,
	task Task,
) (string, error) {
	format := cfg.Output.Format
	switch task.Operation {
	case OpScrape:
		resp, err := api.Scrape(ctx, firecrawl.V0ScrapeParams{
			URL:         task.URL,
			PageOptions: v0PageOptions(task),
		})
		if err != nil {
			return "", err
		}
		return render.Documents(format, fromV0([]firecrawl.V0Document{resp.Data}))
	case OpCrawl:
		resp, err := api.Crawl(ctx, firecrawl.V0CrawlParams{
			URL: task.URL,
			CrawlerOptions: &firecrawl.V0CrawlerOptions{
				Includes: task.IncludePaths,
				Excludes: task.ExcludePaths,
				MaxDepth: task.MaxDepth,
				Limit:    task.Limit,
			},
			PageOptions: v0PageOptions(task),
		})
		if err != nil {
			return "", err
		}
		if !task.WaitForCompletion {
			return render.CrawlJob(format, resp.JobID)
		}
		docs, err := api.WaitForCrawl(ctx, resp.JobID)
		if err != nil {
			return "", err
		}
		return render.Documents(format, fromV0(docs))
	case OpCrawlStatus:
		status, err := api.CrawlStatus(ctx, task.JobID)
		if err != nil {
			return "", err
		}
		return render.CrawlState(format, status.Status, status.Current, status.Total)
	case OpCancelCrawl:
		resp, err := api.CancelCrawl(ctx, task.JobID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("crawl %s: %s\n", task.JobID, resp.Status), nil
	case OpSearch:
		resp, err := api.Search(ctx, firecrawl.V0SearchParams{
			Query:         task.Query,
			PageOptions:   v0PageOptions(task),
			SearchOptions: &firecrawl.V0SearchOptions{Limit: task.Limit},
		})
		if err != nil {
			return "", err
		}
		return render.Documents(format, fromV0(resp.Data))
	case OpMap:
		return "", fmt.Errorf("map is not available on the v0 API")
	default:
		return "", fmt.Errorf("unexpected operation: %q", task.Operation)
	}
}

func runV1(
	ctx context.Context,
	cfg *config.Config,
	api firecrawl.V1,
	task Task,
) (string, error) {
	format := cfg.Output.Format
	switch task.Operation {
	case OpScrape:
		resp, err := api.Scrape(ctx, firecrawl.ScrapeParams{
			URL:           task.URL,
			ScrapeOptions: v1ScrapeOptions(task),
		})
		if err != nil {
			return "", err
		}
		return render.Documents(format, []firecrawl.Document{resp.Data})
	case OpCrawl:
		opts := v1ScrapeOptions(task)
		resp, err := api.Crawl(ctx, firecrawl.CrawlParams{
			URL:           task.URL,
			IncludePaths:  task.IncludePaths,
			ExcludePaths:  task.ExcludePaths,
			MaxDepth:      task.MaxDepth,
			Limit:         task.Limit,
			ScrapeOptions: &opts,
		})
		if err != nil {
			return "", err
		}
		if !task.WaitForCompletion {
			return render.CrawlJob(format, resp.ID)
		}
		docs, err := api.WaitForCrawl(ctx, resp.ID)
		if err != nil {
			return "", err
		}
		return render.Documents(format, docs)
	case OpCrawlStatus:
		status, err := api.CrawlStatus(ctx, task.JobID)
		if err != nil {
			return "", err
		}
		return render.CrawlState(format, status.Status, status.Completed, status.Total)
	case OpCancelCrawl:
		resp, err := api.CancelCrawl(ctx, task.JobID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("crawl %s: %s\n", task.JobID, resp.Status), nil
	case OpMap:
		resp, err := api.Map(ctx, firecrawl.MapParams{
			URL:    task.URL,
			Search: task.Query,
			Limit:  task.Limit,
		})
		if err != nil {
			return "", err
		}
		return render.Links(format, resp.Links)
	case OpSearch:
		return "", fmt.Errorf("search is not available on the v1 API")
	default:
		return "", fmt.Errorf("unexpected operation: %q", task.Operation)
	}
}

// Emit writes rendered output to stdout and, when configured, mirrors it
// to a file.
func Emit(cfg config.OutputConfig, rendered string) error {
	fmt.Print(rendered)
	if cfg.File == "" {
		return nil
	}
	if err := os.WriteFile(cfg.File, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	zap.S().Infow("output mirrored to file", "path", cfg.File)
	return nil
}

func v0PageOptions(task Task) *firecrawl.V0PageOptions {
	return &firecrawl.V0PageOptions{
		OnlyMainContent: task.OnlyMainContent,
		IncludeHTML:     task.IncludeHTML,
		WaitFor:         task.WaitFor,
	}
}

func v1ScrapeOptions(task Task) firecrawl.ScrapeOptions {
	opts := firecrawl.ScrapeOptions{
		Formats: task.Formats,
		WaitFor: task.WaitFor,
	}
	if task.OnlyMainContent {
		enabled := true
		opts.OnlyMainContent = &enabled
	}
	return opts
}

func fromV0(docs []firecrawl.V0Document) []firecrawl.Document {
	converted := make([]firecrawl.Document, 0, len(docs))
	for _, doc := range docs {
		markdown := doc.Markdown
		if markdown == "" {
			markdown = doc.Content
		}
		converted = append(converted, firecrawl.Document{
			Markdown: markdown,
			HTML:     doc.HTML,
			Metadata: doc.Metadata,
		})
	}
	return converted
}
