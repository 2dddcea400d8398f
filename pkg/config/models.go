package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type APIVersion string

const (
	APIVersionV0 APIVersion = "v0"
	APIVersionV1 APIVersion = "v1"
)

type OutputFormat string

const (
	OutputFormatPretty   OutputFormat = "pretty"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatMarkdown OutputFormat = "markdown"
)

type Config struct {
	// Configuration of interaction between the client and the Firecrawl API
	API APIConfig `yaml:"api"      env:", prefix=FIRECRAWL_"`
	// Logger configuration
	Log LogConfig `yaml:"log"      env:", prefix=LOG_"`
	// How results are rendered and where they go
	Output OutputConfig `yaml:"output"   env:", prefix=OUTPUT_"`
	// Batch mode configuration (file of URLs drained through a worker pool)
	Batch BatchConfig `yaml:"batch"    env:", prefix=BATCH_"`
	// Graceful shutdown logic configuration
	Shutdown ShutdownConfig `yaml:"shutdown" env:", prefix=SHUTDOWN_"`
}

type APIConfig struct {
	// Connection data. The key is only ever attached to requests that
	// target the same host as URL.
	URL string `yaml:"url"     env:"API_URL, default=https://api.firecrawl.dev"`
	Key string `yaml:"key"     env:"API_KEY"                                    display:"-"`
	// Which generation of the API the request builders should speak.
	Version APIVersion `yaml:"version" env:"API_VERSION, default=v1"`
	// Timeout
	APITimeout time.Duration `yaml:"api_timeout"   env:"TIMEOUT, default=3m"`
	// Retries
	NumRetries  int           `yaml:"num_retries"   env:"N_RETRIES, default=3"`
	MinWaitTime time.Duration `yaml:"min_wait_time" env:"MIN_WAIT_TIME, default=2s"`
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"MAX_WAIT_TIME, default=16s"`
	// Crawl job status polling
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL, default=2s"`
}

type CircuitBreakerConfig struct {
	Enabled                 bool          `yaml:"enabled"                    env:"ENABLE, default=false"`
	MaxRequests             uint32        `yaml:"max_requests"               env:"MAX_REQUESTS, default=100"`
	ConsecutiveFailure      uint32        `yaml:"consecutive_failure"        env:"CONSECUTIVE_FAILURE, default=10"`
	TotalFailurePerInterval uint32        `yaml:"total_failure_per_interval" env:"TOTAL_FAILURE_PER_INTERVAL, default=900"`
	Interval                time.Duration `yaml:"interval"                   env:"INTERVAL, default=60s"`
	Timeout                 time.Duration `yaml:"timeout"                    env:"TIMEOUT, default=60s"`
}

type BatchConfig struct {
	// Path to a file with one URL per line
	InputPath string `yaml:"input_path"  env:"INPUT"`
	// Where the JSONL results land
	OutputPath string `yaml:"output_path" env:"OUTPUT, default=results.jsonl"`
	Workers    int    `yaml:"workers"     env:"N_WORKERS, default=4"`
	// Workers exit after this long without a task
	IdleTime        time.Duration `yaml:"idle_time"         env:"IDLE_TIME, default=10s"`
	InsertBatchSize int           `yaml:"insert_batch_size" env:"INSERT_BATCH_SIZE, default=100"`
	SaveTag         string        `yaml:"save_tag"          env:"TAG"`

	// Circuit breaker can be configured to pause the pool instead of
	// hammering an API that keeps failing.
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" env:", prefix=CB_"`

	// Optional ClickHouse sink for batch results
	Sink SinkConfig `yaml:"sink" env:", prefix=SINK_"`
}

type SinkConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"ENABLE, default=false"`
	Host     string `yaml:"host"     env:"HOST, default=127.0.0.1"`
	Port     string `yaml:"port"     env:"PORT, default=9000"`
	Database string `yaml:"database" env:"DB"`
	Username string `yaml:"username" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"                display:"-"`
	Table    string `yaml:"table"    env:"TABLE, default=scrape_results"`
}

type OutputConfig struct {
	Format OutputFormat `yaml:"format" env:"FORMAT, default=pretty"`
	// When set, rendered results are also written to this file
	File string `yaml:"file"   env:"FILE"`
}

type ShutdownConfig struct {
	GracePeriod time.Duration `yaml:"grace_period" env:"GRACE_PERIOD, default=30s"`
}

type LogConfig struct {
	Level    zapcore.Level `yaml:"level"    env:"LEVEL, default=info"`
	Encoding string        `yaml:"encoding" env:"ENCODING, default=console"`
}
