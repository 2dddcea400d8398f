package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"orb/firescout/internal"
	"orb/firescout/internal/batch"
	"orb/firescout/pkg/config"
	"orb/firescout/pkg/log"

	"github.com/briandowns/spinner"
	"go.uber.org/zap"
)

func main() {
	op := flag.String("op", "scrape", "operation: scrape, crawl, status, cancel, map, search")
	url := flag.String("url", "", "target URL")
	query := flag.String("query", "", "search term (v0 search, v1 map filtering)")
	jobID := flag.String("id", "", "crawl job id (status/cancel)")
	wait := flag.Bool("wait", false, "block until a started crawl finishes")
	formats := flag.String("formats", "markdown", "comma-separated scrape formats (v1)")
	onlyMain := flag.Bool("only-main-content", false, "strip navigation and boilerplate")
	limit := flag.Int("limit", 0, "crawl/map page limit")
	maxDepth := flag.Int("max-depth", 0, "crawl depth limit")
	batchMode := flag.Bool("batch", false, "drain the configured input file through the worker pool")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.Log)

	if *batchMode {
		runBatch(ctx, cfg)
		return
	}

	task := internal.Task{
		Operation:         internal.Operation(*op),
		URL:               *url,
		Query:             *query,
		JobID:             *jobID,
		Formats:           strings.Split(*formats, ","),
		OnlyMainContent:   *onlyMain,
		Limit:             *limit,
		MaxDepth:          *maxDepth,
		WaitForCompletion: *wait,
	}

	indicator := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(os.Stderr),
	)
	indicator.Suffix = " waiting for the API..."
	indicator.Start()
	output, err := internal.RunTask(ctx, cfg, task)
	indicator.Stop()
	if err != nil {
		zap.S().Fatalw("running task", "error", err)
	}

	if err := internal.Emit(cfg.Output, output); err != nil {
		zap.S().Fatalw("emitting output", "error", err)
	}
}

func runBatch(ctx context.Context, cfg *config.Config) {
	wg := sync.WaitGroup{}

	pool, err := batch.New(cfg)
	if err != nil {
		zap.S().Fatalw("error in pool initialization", "error", err)
	}
	if err := pool.Run(ctx, &wg); err != nil {
		zap.S().Fatalw("error starting the pool", "error", err)
	}

	timeout := cfg.Shutdown.GracePeriod

	done := make(chan struct{})

	go func() {
		wg.Wait()
		done <- struct{}{}
	}()

	select {
	case <-ctx.Done():
		zap.S().
			Info("shutting down gracefully, Ctrl+C to force. Timeout: ", timeout)
		select {
		case <-time.After(timeout):
			zap.S().Info("shutdown timeout reached, forcefully shutting down")
		case <-done:
			zap.S().Info("shutdown completed")
		}
	case <-done:
		zap.S().Info("writer is stopped, shutting down the application")
	}
}
