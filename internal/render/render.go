// Package render turns API responses into terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"orb/firescout/pkg/config"
	"orb/firescout/pkg/firecrawl"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Documents renders scraped pages in the configured output format. The
// pretty format leads with an overview table and follows with the
// markdown of every page; json is the raw document list; markdown is the
// concatenated page content.
func Documents(
	format config.OutputFormat,
	docs []firecrawl.Document,
) (string, error) {
	switch format {
	case config.OutputFormatJSON:
		return toJSON(docs)
	case config.OutputFormatMarkdown:
		var s strings.Builder
		for _, doc := range docs {
			s.WriteString(doc.Markdown)
			s.WriteString("\n")
		}
		return s.String(), nil
	default:
		return prettyDocuments(docs), nil
	}
}

func prettyDocuments(docs []firecrawl.Document) string {
	var s strings.Builder

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "URL", "Title", "Status", "Links"})
	for i, doc := range docs {
		t.AppendRow(table.Row{
			i + 1,
			doc.Metadata.SourceURL,
			truncate(doc.Metadata.Title, 48),
			doc.Metadata.StatusCode,
			len(doc.Links),
		})
	}
	s.WriteString(t.Render())
	s.WriteString("\n")

	for _, doc := range docs {
		if doc.Markdown == "" {
			continue
		}
		fmt.Fprintf(&s, "\n--- %s\n\n", doc.Metadata.SourceURL)
		s.WriteString(doc.Markdown)
		s.WriteString("\n")
	}
	return s.String()
}

// Links renders a map/search link list.
func Links(format config.OutputFormat, links []string) (string, error) {
	switch format {
	case config.OutputFormatJSON:
		return toJSON(links)
	case config.OutputFormatMarkdown:
		var s strings.Builder
		for _, link := range links {
			fmt.Fprintf(&s, "- %s\n", link)
		}
		return s.String(), nil
	default:
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "URL"})
		for i, link := range links {
			t.AppendRow(table.Row{i + 1, link})
		}
		return t.Render() + "\n", nil
	}
}

// CrawlJob renders the id of a crawl that was started without waiting.
func CrawlJob(format config.OutputFormat, id string) (string, error) {
	if format == config.OutputFormatJSON {
		return toJSON(map[string]string{"id": id})
	}
	return fmt.Sprintf("crawl job started: %s\n", id), nil
}

// CrawlState renders a point-in-time job status.
func CrawlState(
	format config.OutputFormat,
	status firecrawl.JobStatus,
	completed int,
	total int,
) (string, error) {
	if format == config.OutputFormatJSON {
		return toJSON(map[string]any{
			"status":    status,
			"completed": completed,
			"total":     total,
		})
	}
	return fmt.Sprintf("status: %s (%d/%d)\n", status, completed, total), nil
}

func toJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling output: %w", err)
	}
	return string(raw) + "\n", nil
}

// truncate counts runes, not bytes, so a cut never splits a multi-byte
// character in a title.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
