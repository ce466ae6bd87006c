package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/hearings"
	"github.com/fwojciec/hearings/crawl"
)

// urlWidth bounds how much of a hearing URL is printed on routine lines.
const urlWidth = 72

// newProgressPrinter reports campaign progress, one summary line per year.
// Verbose output adds a line per processed hearing.
func newProgressPrinter(stdout, stderr io.Writer, verbose bool) crawl.ProgressFunc {
	var year crawl.Result
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			year = crawl.Result{Year: event.Year, Total: event.Total}
			fmt.Fprintf(stdout, "%d: found %d hearings\n", event.Year, event.Total)
		case crawl.ProgressCompleted:
			switch event.Outcome {
			case crawl.OutcomeCreated:
				year.Created++
			case crawl.OutcomeExists:
				year.Skipped++
			default:
				year.Ignored++
			}
			if verbose {
				fmt.Fprintf(stdout, "  %s %s\n", event.Outcome, crawl.TruncateURL(event.URL, urlWidth))
			}
		case crawl.ProgressFailed:
			year.Failed++
			fmt.Fprintf(stderr, "  skip %s: %s\n", event.URL, describe(event.Error))
		case crawl.ProgressFinished:
			fmt.Fprintf(stdout, "%d: created %d, skipped %d, ignored %d, failed %d\n",
				year.Year, year.Created, year.Skipped, year.Ignored, year.Failed)
		case crawl.ProgressYearFailed:
			fmt.Fprintf(stderr, "%d: sitemap unavailable: %v\n", event.Year, event.Error)
		}
	}
}

// describe prefers the message of application errors.
func describe(err error) string {
	if code := hearings.ErrorCode(err); code != hearings.EINTERNAL {
		return hearings.ErrorMessage(err)
	}
	return err.Error()
}
