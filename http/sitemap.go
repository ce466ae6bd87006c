package http

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/hearings"
)

// Ensure SitemapService implements hearings.SitemapService.
var _ hearings.SitemapService = (*SitemapService)(nil)

// SitemapService reads repository sitemaps.
// Every request goes through the injected Fetcher, so a rate-limited
// fetcher also limits sitemap traffic.
type SitemapService struct {
	fetcher hearings.Fetcher
}

// NewSitemapService creates a new SitemapService using fetcher.
func NewSitemapService(fetcher hearings.Fetcher) *SitemapService {
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs returns the page URLs listed in the sitemap at sitemapURL.
// Returns an empty slice (not nil) if the sitemap lists no pages.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	urls, err := s.processSitemap(ctx, sitemapURL, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	// Deduplicate, keeping the first occurrence.
	seen := make(map[string]bool, len(urls))
	result := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			result = append(result, u)
		}
	}
	return result, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap %s: %w", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML %s: %w", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return parseURLSet(root), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}

		urls, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// parseURLSet extracts URLs from a <urlset> element, dropping empty entries.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
