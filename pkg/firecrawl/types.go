package firecrawl

// JobStatus is the lifecycle state of an asynchronous crawl job.
type JobStatus string

const (
	// v1 names
	JobStatusScraping  JobStatus = "scraping"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
	// v0 name for an in-flight job
	JobStatusActive JobStatus = "active"
)

func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// Metadata is the page metadata block attached to every document.
type Metadata struct {
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Language      string   `json:"language,omitempty"`
	Keywords      string   `json:"keywords,omitempty"`
	Robots        string   `json:"robots,omitempty"`
	OgTitle       string   `json:"ogTitle,omitempty"`
	OgDescription string   `json:"ogDescription,omitempty"`
	OgURL         string   `json:"ogUrl,omitempty"`
	OgImage       string   `json:"ogImage,omitempty"`
	OgLocaleAlt   []string `json:"ogLocaleAlternate,omitempty"`
	OgSiteName    string   `json:"ogSiteName,omitempty"`
	SourceURL     string   `json:"sourceURL,omitempty"`
	StatusCode    int      `json:"statusCode"`
	Error         string   `json:"error,omitempty"`
}

// Document is one scraped page as the v1 API returns it.
type Document struct {
	Markdown   string   `json:"markdown,omitempty"`
	HTML       string   `json:"html,omitempty"`
	RawHTML    string   `json:"rawHtml,omitempty"`
	Links      []string `json:"links,omitempty"`
	Screenshot string   `json:"screenshot,omitempty"`
	Metadata   Metadata `json:"metadata"`
}
