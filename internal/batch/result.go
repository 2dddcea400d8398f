package batch

import "time"

// Result is one processed URL, shaped for both the JSONL output and the
// ClickHouse sink.
type Result struct {
	URL        string    `json:"url"                   ch:"url"`
	Success    bool      `json:"success"               ch:"success"`
	StatusCode int32     `json:"status_code"           ch:"status_code"`
	Title      string    `json:"title,omitempty"       ch:"title"`
	Markdown   string    `json:"markdown,omitempty"    ch:"markdown"`
	Error      string    `json:"error,omitempty"       ch:"error"`
	ElapsedMs  int64     `json:"elapsed_ms"            ch:"elapsed_ms"`
	Tag        string    `json:"tag,omitempty"         ch:"tag"`
	Timestamp  time.Time `json:"ts"                    ch:"ts"`
}
