// Package crawl provides the hearing ingestion pipeline.
// It coordinates sitemap discovery, MODS and transcript fetching, record
// assembly and index writes, one calendar year at a time.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/hearings"
	"golang.org/x/sync/errgroup"
)

// Crawler indexes every hearing listed in a year's sitemap.
type Crawler struct {
	Sitemaps   hearings.SitemapService
	Processor  Processor
	Repository Repository
	Logger     *slog.Logger

	// Concurrency caps in-flight hearings; zero or less runs all of them at once.
	Concurrency int

	// RetryDelays are the backoff delays for the sitemap fetch.
	// Nil selects DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// Result holds the outcome of crawling one year.
type Result struct {
	Year     int
	Total    int
	Created  int
	Skipped  int
	Ignored  int
	Failed   int
	Failures []Failure
}

// Failure records a hearing whose processing ended in an error.
type Failure struct {
	URL string
	Err error
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Year      int
	Completed int
	Total     int
	URL       string
	Outcome   Outcome
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
	ProgressYearFailed
)

// ProgressFunc is a callback for reporting crawl progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// hearingResult holds the outcome of processing a single URL.
type hearingResult struct {
	url     string
	outcome Outcome
	err     error
}

// CrawlYear indexes every hearing in the sitemap for year.
//
// Hearings are processed concurrently and a failing hearing never cancels its
// siblings; failures are collected in the Result. An error is returned only
// when the sitemap itself cannot be read.
func (c *Crawler) CrawlYear(ctx context.Context, year int, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	sitemapURL := c.Repository.SitemapURL(year)
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	var urls []string
	err := WithRetry(ctx, sitemapURL, delays, c.logf, func(ctx context.Context) error {
		var err error
		urls, err = c.Sitemaps.DiscoverURLs(ctx, sitemapURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sitemap for %d: %w", year, err)
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Year: year, Total: total})

	resultCh := make(chan hearingResult, total)

	// Plain errgroup: no shared context, so one failure cancels nothing.
	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	go func() {
		for _, u := range urls {
			g.Go(func() error {
				outcome, err := c.Processor.Process(ctx, u)
				resultCh <- hearingResult{url: u, outcome: outcome, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{Year: year, Total: total}
	completed := 0
	for r := range resultCh {
		completed++

		if r.err != nil {
			result.Failed++
			result.Failures = append(result.Failures, Failure{URL: r.url, Err: r.err})
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Year:      year,
				Completed: completed,
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
			continue
		}

		switch r.outcome {
		case OutcomeCreated:
			result.Created++
		case OutcomeExists:
			result.Skipped++
		default:
			result.Ignored++
		}
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Year:      year,
			Completed: completed,
			Total:     total,
			URL:       r.url,
			Outcome:   r.outcome,
		})
	}

	progress(ProgressEvent{Type: ProgressFinished, Year: year, Completed: completed, Total: total})

	return result, nil
}

func (c *Crawler) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(fmt.Sprintf(format, args...))
	}
}
