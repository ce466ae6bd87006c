package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/hearings"
)

// YearCrawler indexes the hearings of one year.
type YearCrawler interface {
	CrawlYear(ctx context.Context, year int, progress ProgressFunc) (*Result, error)
}

var _ YearCrawler = (*Crawler)(nil)

// Campaign crawls an inclusive range of years in ascending order,
// finishing each year before starting the next.
type Campaign struct {
	Crawler   YearCrawler
	FirstYear int
	LastYear  int
}

// CampaignResult holds the per-year results of a campaign.
type CampaignResult struct {
	Years       []*Result
	FailedYears []int
}

// Totals sums the per-year results into one Result with Year unset.
func (r *CampaignResult) Totals() Result {
	var t Result
	for _, y := range r.Years {
		t.Total += y.Total
		t.Created += y.Created
		t.Skipped += y.Skipped
		t.Ignored += y.Ignored
		t.Failed += y.Failed
		t.Failures = append(t.Failures, y.Failures...)
	}
	return t
}

// Validate returns an error if the year range is empty.
func (c *Campaign) Validate() error {
	if c.FirstYear > c.LastYear {
		return hearings.Errorf(hearings.EINVALID, "first year %d is after last year %d", c.FirstYear, c.LastYear)
	}
	return nil
}

// Run crawls every year in the range.
//
// A year whose sitemap cannot be read is reported and skipped; the remaining
// years still run and the joined errors are returned at the end. Hearing
// failures within a year are part of its Result, not errors.
func (c *Campaign) Run(ctx context.Context, progress ProgressFunc) (*CampaignResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &CampaignResult{}
	var errs []error
	for year := c.FirstYear; year <= c.LastYear; year++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		r, err := c.Crawler.CrawlYear(ctx, year, progress)
		if err != nil {
			result.FailedYears = append(result.FailedYears, year)
			errs = append(errs, err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressYearFailed, Year: year, Error: err})
			}
			continue
		}
		result.Years = append(result.Years, r)
	}

	return result, errors.Join(errs...)
}
