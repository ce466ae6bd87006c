package crawl_test

import (
	"testing"

	"github.com/fwojciec/hearings"
	"github.com/fwojciec/hearings/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailURL = "https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/content-detail.html"

func TestRepository(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the public repository", func(t *testing.T) {
		t.Parallel()

		repo := crawl.NewRepository("")
		assert.Equal(t, "https://www.gpo.gov/smap/fdsys/sitemap_1995/1995_CHRG_sitemap.xml", repo.SitemapURL(1995))
	})

	t.Run("trims trailing slash from base URL", func(t *testing.T) {
		t.Parallel()

		repo := crawl.NewRepository("http://localhost:8080/")
		assert.Equal(t, "http://localhost:8080/smap/fdsys/sitemap_2001/2001_CHRG_sitemap.xml", repo.SitemapURL(2001))
	})

	t.Run("builds transcript URL from page ID", func(t *testing.T) {
		t.Parallel()

		repo := crawl.NewRepository("")
		assert.Equal(t,
			"https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/html/CHRG-110hhrg12345.htm",
			repo.ContentURL("CHRG-110hhrg12345"))
	})
}

func TestMODSURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/mods.xml", crawl.MODSURL(detailURL))
}

func TestPageID(t *testing.T) {
	t.Parallel()

	t.Run("returns last-but-one path segment", func(t *testing.T) {
		t.Parallel()

		id, err := crawl.PageID(detailURL)
		require.NoError(t, err)
		assert.Equal(t, "CHRG-110hhrg12345", id)
	})

	t.Run("returns EINVALID without enough segments", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.PageID("https://www.gpo.gov/content-detail.html")
		assert.Equal(t, hearings.EINVALID, hearings.ErrorCode(err))
	})

	t.Run("returns EINVALID for unparseable URL", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.PageID("://bad url")
		assert.Equal(t, hearings.EINVALID, hearings.ErrorCode(err))
	})
}

func TestCommitteePrintID(t *testing.T) {
	t.Parallel()

	t.Run("derives house ID from two-part jacket page ID", func(t *testing.T) {
		t.Parallel()

		id, ok := crawl.CommitteePrintID("CHRG-105hhrg47-124")
		require.True(t, ok)
		assert.Equal(t, "H-105-47-124", id)
	})

	t.Run("derives senate ID from two-part jacket page ID", func(t *testing.T) {
		t.Parallel()

		id, ok := crawl.CommitteePrintID("CHRG-106shrg61-123")
		require.True(t, ok)
		assert.Equal(t, "S-106-61-123", id)
	})

	t.Run("rejects single-part jacket page IDs", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.CommitteePrintID("CHRG-110hhrg12345")
		assert.False(t, ok)
	})

	t.Run("rejects other collections", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.CommitteePrintID("CPRT-110HPRT12345")
		assert.False(t, ok)
	})
}
