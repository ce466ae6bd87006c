package hearings

import "context"

// SitemapService lists the pages published in a sitemap.
type SitemapService interface {
	// DiscoverURLs returns every <url><loc> value in the sitemap at sitemapURL,
	// in document order, without empty entries or duplicates.
	// Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, sitemapURL string) ([]string, error)
}
