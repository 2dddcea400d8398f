// Package batch drains a file of URLs through a bounded pool of workers,
// scraping each one and writing the results to JSONL and, optionally, to
// ClickHouse.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"orb/firescout/pkg/config"
	"orb/firescout/pkg/firecrawl"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Pool struct {
	cfg            *config.Config
	client         *firecrawl.Client
	circuitBreaker *gobreaker.CircuitBreaker[Result]
	sink           *Sink
}

func New(cfg *config.Config) (*Pool, error) {
	if cfg.Batch.InputPath == "" {
		return nil, errors.New("batch mode requires an input file")
	}

	pool := &Pool{
		cfg:    cfg,
		client: firecrawl.NewClient(cfg.API),
	}

	cb := cfg.Batch.CircuitBreaker
	pool.circuitBreaker = gobreaker.NewCircuitBreaker[Result](
		gobreaker.Settings{
			Name:        "outgoing_requests",
			MaxRequests: cb.MaxRequests,
			Interval:    cb.Interval,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if !cb.Enabled {
					return false
				}
				tooManyTotal := counts.TotalFailures > cb.TotalFailurePerInterval
				tooManyConsecutive := counts.ConsecutiveFailures > cb.ConsecutiveFailure
				return tooManyTotal || tooManyConsecutive
			},
		})

	if cfg.Batch.Sink.Enabled {
		sink, version, err := NewSink(cfg.Batch.Sink)
		if err != nil {
			return nil, fmt.Errorf("initializing sink: %w", err)
		}
		zap.S().Infow(
			"created a new clickhouse client",
			"version", fmt.Sprintf("%v", version.Version),
		)
		pool.sink = sink
	}

	return pool, nil
}

// Run wires the provider, the fetchers and the writer together within a
// given context.
func (p *Pool) Run(ctx context.Context, globalWg *sync.WaitGroup) error {
	if p.sink != nil {
		if err := p.sink.InitTable(ctx); err != nil {
			zap.S().Warnw("table creation script has failed", "error", err)
		} else {
			zap.S().Infow("successfully initialized table for batch results")
		}
	}

	tasks, err := p.startProvider(globalWg, ctx)
	if err != nil {
		return err
	}
	results := p.startFetchers(globalWg, ctx, tasks)
	p.startWriter(globalWg, ctx, results)
	return nil
}

func (p *Pool) startProvider(
	wg *sync.WaitGroup,
	ctx context.Context,
) (chan string, error) {
	file, err := os.Open(p.cfg.Batch.InputPath)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}

	out := make(chan string, 2*p.cfg.Batch.Workers)
	wg.Go(func() {
		defer close(out)
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			zap.S().Errorw("reading input file", "error", err)
		}
	})
	return out, nil
}

func (p *Pool) startFetchers(
	globalWg *sync.WaitGroup,
	ctx context.Context,
	input <-chan string,
) chan Result {
	outputCh := make(chan Result, 2*p.cfg.Batch.InsertBatchSize+1)
	wg := sync.WaitGroup{}
	for i := range p.cfg.Batch.Workers {
		wg.Go(func() {
			p.fetcher(ctx, input, outputCh, i)
		})
	}

	globalWg.Go(func() {
		defer close(outputCh)
		defer zap.S().Info("all fetchers have been stopped")
		wg.Wait()
	})

	return outputCh
}

func (p *Pool) fetcher(
	ctx context.Context,
	input <-chan string,
	output chan<- Result,
	fetcherNum int,
) {
	logger := zap.S().With("fetcher_num", fetcherNum)
	logger.Debugw("fetcher instance is starting up")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			select {
			case url, opened := <-input:
				if !opened {
					logger.Debugw("fetcher has no work left")
					return
				}
				logger.Debugw("pulling a new task", "url", url)
				result, err := p.circuitBreaker.Execute(func() (Result, error) {
					return p.scrapeOne(ctx, url)
				})
				if errors.Is(err, gobreaker.ErrOpenState) ||
					errors.Is(err, gobreaker.ErrTooManyRequests) {
					logger.Warnw("fetcher is paused after too many errors")
					select {
					case <-time.After(p.cfg.Batch.CircuitBreaker.Timeout):
					case <-ctx.Done():
						return
					}
					continue
				}
				if err != nil {
					// failed attempts are results too
					result = failedResult(url, err, p.cfg.Batch.SaveTag)
				}
				select {
				case output <- result:
				case <-ctx.Done():
					return
				}
			case <-time.After(p.cfg.Batch.IdleTime):
				logger.Debugw(
					"no tasks received in fetcher idle time, exiting fetcher",
					"idle_time", p.cfg.Batch.IdleTime,
				)
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

func (p *Pool) scrapeOne(ctx context.Context, url string) (Result, error) {
	started := time.Now()
	var title, markdown string
	var statusCode int
	var err error

	switch p.cfg.API.Version {
	case config.APIVersionV0:
		var resp *firecrawl.V0ScrapeResponse
		resp, err = p.client.V0().Scrape(ctx, firecrawl.V0ScrapeParams{URL: url})
		if err == nil {
			title = resp.Data.Metadata.Title
			markdown = resp.Data.Markdown
			if markdown == "" {
				markdown = resp.Data.Content
			}
			statusCode = resp.Data.Metadata.StatusCode
		}
	default:
		var resp *firecrawl.ScrapeResponse
		resp, err = p.client.V1().Scrape(ctx, firecrawl.ScrapeParams{
			URL:           url,
			ScrapeOptions: firecrawl.ScrapeOptions{Formats: []string{"markdown"}},
		})
		if err == nil {
			title = resp.Data.Metadata.Title
			markdown = resp.Data.Markdown
			statusCode = resp.Data.Metadata.StatusCode
		}
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		URL:        url,
		Success:    true,
		StatusCode: int32(statusCode),
		Title:      title,
		Markdown:   markdown,
		ElapsedMs:  time.Since(started).Milliseconds(),
		Tag:        p.cfg.Batch.SaveTag,
		Timestamp:  time.Now(),
	}, nil
}

func failedResult(url string, err error, tag string) Result {
	result := Result{
		URL:       url,
		Error:     err.Error(),
		Tag:       tag,
		Timestamp: time.Now(),
	}
	var apiErr *firecrawl.APIError
	if errors.As(err, &apiErr) {
		result.StatusCode = int32(apiErr.StatusCode)
	}
	return result
}
