package crawl

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/hearings"
)

// DefaultRepositoryURL is the document repository the crawler reads from.
const DefaultRepositoryURL = "https://www.gpo.gov"

// Repository derives the URLs of a hearing's sitemap, metadata and transcript.
type Repository struct {
	BaseURL string
}

// NewRepository returns a Repository rooted at baseURL.
// An empty baseURL selects DefaultRepositoryURL.
func NewRepository(baseURL string) Repository {
	if baseURL == "" {
		baseURL = DefaultRepositoryURL
	}
	return Repository{BaseURL: strings.TrimRight(baseURL, "/")}
}

// SitemapURL returns the hearings sitemap for a calendar year.
func (r Repository) SitemapURL(year int) string {
	return fmt.Sprintf("%s/smap/fdsys/sitemap_%d/%d_CHRG_sitemap.xml", r.BaseURL, year, year)
}

// ContentURL returns the HTML transcript rendition for a page ID.
func (r Repository) ContentURL(pageID string) string {
	return fmt.Sprintf("%s/fdsys/pkg/%s/html/%s.htm", r.BaseURL, pageID, pageID)
}

// MODSURL returns the MODS metadata URL for a hearing detail page.
func MODSURL(detailURL string) string {
	return strings.Replace(detailURL, "content-detail.html", "mods.xml", 1)
}

// PageID returns the last-but-one path segment of a detail page URL,
// e.g. "CHRG-110hhrg12345" for .../pkg/CHRG-110hhrg12345/content-detail.html.
func PageID(detailURL string) (string, error) {
	u, err := url.Parse(detailURL)
	if err != nil {
		return "", hearings.Errorf(hearings.EINVALID, "invalid detail URL %q: %v", detailURL, err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" {
		return "", hearings.Errorf(hearings.EINVALID, "detail URL %q has no page ID", detailURL)
	}
	return segments[len(segments)-2], nil
}

// committeePrintPattern matches page IDs that embed the full hearing identity:
// CHRG-{congress}{h|s}hrg{jacket}-{jacket}.
var committeePrintPattern = regexp.MustCompile(`^CHRG-(\d+)([hs])hrg(\d+-\d+)$`)

// CommitteePrintID derives the hearing ID directly from a page ID.
// It returns false for page IDs that do not follow the two-part jacket
// convention; those hearings need their MODS record to be identified.
func CommitteePrintID(pageID string) (string, bool) {
	m := committeePrintPattern.FindStringSubmatch(pageID)
	if m == nil {
		return "", false
	}
	congress, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	chamber := hearings.ChamberSenate
	if m[2] == "h" {
		chamber = hearings.ChamberHouse
	}
	return hearings.HearingID(chamber, congress, m[3]), true
}
