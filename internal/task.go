package internal

// Operation names one action against the API, independent of which
// generation ends up serving it.
type Operation string

const (
	OpScrape      Operation = "scrape"
	OpCrawl       Operation = "crawl"
	OpCrawlStatus Operation = "status"
	OpCancelCrawl Operation = "cancel"
	OpMap         Operation = "map"
	OpSearch      Operation = "search"
)

// Task is one user action: the operation plus the knobs the request
// builders understand. Fields that a given API generation does not
// support are simply ignored by it.
type Task struct {
	Operation Operation
	// Target of scrape/crawl/map operations
	URL string
	// Search term (v0 search, v1 map filtering)
	Query string
	// Id of an already-started crawl job (status/cancel)
	JobID string

	// Scrape shaping
	Formats         []string
	OnlyMainContent bool
	IncludeHTML     bool
	WaitFor         int

	// Crawl shaping
	MaxDepth     int
	Limit        int
	IncludePaths []string
	ExcludePaths []string

	// Block until a started crawl reaches a terminal state instead of
	// returning its job id immediately
	WaitForCompletion bool
}
