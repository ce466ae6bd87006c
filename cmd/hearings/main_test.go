package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/hearings"
	main "github.com/fwojciec/hearings/cmd/hearings"
	"github.com/fwojciec/hearings/mock"
	"github.com/fwojciec/hearings/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mods = `<?xml version="1.0" encoding="UTF-8"?>
<mods xmlns="http://www.loc.gov/mods/v3">
  <titleInfo><title>ENERGY INDEPENDENCE</title></titleInfo>
  <extension>
    <chamber>HOUSE</chamber>
    <congress>110</congress>
    <session>1</session>
    <jacketId>12345</jacketId>
    <heldDate>2007-03-01</heldDate>
  </extension>
</mods>`

// newRepository serves a 2007 sitemap with one indexable hearing and one
// record without an extension block. Every other sitemap is missing.
func newRepository(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/smap/fdsys/sitemap_2007/2007_CHRG_sitemap.xml":
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/fdsys/pkg/CHRG-110hhrg12345/content-detail.html</loc></url>
  <url><loc>%[1]s/fdsys/pkg/CHRG-110hhrg99999/content-detail.html</loc></url>
</urlset>`, srv.URL)
		case "/fdsys/pkg/CHRG-110hhrg12345/mods.xml":
			fmt.Fprint(w, mods)
		case "/fdsys/pkg/CHRG-110hhrg12345/html/CHRG-110hhrg12345.htm":
			fmt.Fprint(w, "<html><body><pre>The committee will come to order.</pre></body></html>")
		case "/fdsys/pkg/CHRG-110hhrg99999/mods.xml":
			fmt.Fprint(w, `<mods><titleInfo><title>NO EXTENSION</title></titleInfo></mods>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hearings")
	assert.Contains(t, stdout.String(), "--first-year")
	assert.Contains(t, stdout.String(), "FIRST_YEAR")
	assert.Contains(t, stdout.String(), "mirror")
}

func TestMain_Run_Validation(t *testing.T) {
	t.Parallel()

	for name, args := range map[string][]string{
		"inverted years":   {"--first-year=2001", "--last-year=2000"},
		"zero rate":        {"--first-year=2000", "--last-year=2000", "--requests-per-second=0"},
		"negative rate":    {"--first-year=2000", "--last-year=2000", "--requests-per-second=-1"},
		"negative timeout": {"--first-year=2000", "--last-year=2000", "--fetch-timeout=-1s"},
	} {
		t.Run("rejects "+name+" before any request", func(t *testing.T) {
			t.Parallel()

			var requests atomic.Int32
			srv := newRepository(t, &requests)
			m := main.NewMain()
			var stdout, stderr bytes.Buffer

			err := m.Run(context.Background(), append(args, "--repository-url="+srv.URL), &stdout, &stderr)

			require.Error(t, err)
			assert.Equal(t, hearings.EINVALID, hearings.ErrorCode(err))
			assert.Zero(t, requests.Load())
		})
	}

	t.Run("rejects an unknown content format", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--content-format=pdf"}, &stdout, &stderr)

		require.Error(t, err)
	})
}

func TestMain_Run_SQLite(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := newRepository(t, &requests)
	dbPath := filepath.Join(t.TempDir(), "hearings.db")
	args := []string{
		"--first-year=2007",
		"--last-year=2008",
		"--requests-per-second=1000",
		"--repository-url=" + srv.URL,
		"--db=" + dbPath,
	}

	run := func() (string, string, error) {
		m := main.NewMain()
		m.RetryDelays = []time.Duration{}
		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), args, &stdout, &stderr)
		return stdout.String(), stderr.String(), err
	}

	stdout, stderr, err := run()

	// 2008 has no sitemap: the campaign still covers 2007 but fails overall.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2008")
	assert.Contains(t, stdout, "2007: found 2 hearings")
	assert.Contains(t, stdout, "2007: created 1, skipped 0, ignored 1, failed 0")
	assert.Contains(t, stdout, "Total: created 1, skipped 0, ignored 1, failed 0 of 2 hearings in 2 years")
	assert.Contains(t, stderr, "2008: sitemap unavailable")
	assert.Contains(t, stderr, "Failed years: [2008]")
	assert.Contains(t, stderr, "run=")

	stdout, _, err = run()

	require.Error(t, err)
	assert.Contains(t, stdout, "2007: created 0, skipped 1, ignored 1, failed 0")

	db := sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	defer db.Close()
	h, err := sqlite.NewHearingService(db).FindHearingByID(context.Background(), "H-110-12345")
	require.NoError(t, err)
	assert.Equal(t, "ENERGY INDEPENDENCE", *h.Title)
	assert.Equal(t, "The committee will come to order.", h.Content)
	assert.Equal(t, srv.URL+"/fdsys/pkg/CHRG-110hhrg12345/content-detail.html", h.SourceURL)
}

// fakeRepository serves documents from memory and records requested URLs.
type fakeRepository struct {
	mu        sync.Mutex
	documents map[string]string
	requested []string
}

func (r *fakeRepository) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.requested = append(r.requested, url)
			if doc, ok := r.documents[url]; ok {
				return []byte(doc), nil
			}
			if strings.HasSuffix(url, "_CHRG_sitemap.xml") {
				return []byte(`<urlset></urlset>`), nil
			}
			return nil, fmt.Errorf("HTTP 404 for %s", url)
		},
	}
}

func TestMain_Run_DefaultsLastYearToCurrentYear(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{documents: map[string]string{}}
	m := main.NewMain()
	m.Fetcher = repo.fetcher()
	m.Hearings = &mock.HearingService{}
	m.Now = func() time.Time { return time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC) }
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--first-year=2000"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.gpo.gov/smap/fdsys/sitemap_2000/2000_CHRG_sitemap.xml",
		"https://www.gpo.gov/smap/fdsys/sitemap_2001/2001_CHRG_sitemap.xml",
	}, repo.requested)
}

func TestMain_Run_MarkdownContent(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{documents: map[string]string{
		"https://www.gpo.gov/smap/fdsys/sitemap_2007/2007_CHRG_sitemap.xml": `<urlset>
  <url><loc>https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/content-detail.html</loc></url>
</urlset>`,
		"https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/mods.xml":                    mods,
		"https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/html/CHRG-110hhrg12345.htm": `<html><body><h1>Opening Statement</h1></body></html>`,
	}}
	var created []*hearings.Hearing
	var mu sync.Mutex
	m := main.NewMain()
	m.Fetcher = repo.fetcher()
	m.Hearings = &mock.HearingService{
		HearingExistsFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		CreateHearingFn: func(_ context.Context, h *hearings.Hearing) error {
			mu.Lock()
			defer mu.Unlock()
			created = append(created, h)
			return nil
		},
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--first-year=2007", "--last-year=2007", "--content-format=markdown", "--verbose",
	}, &stdout, &stderr)

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "H-110-12345", created[0].ID)
	assert.Contains(t, created[0].Content, "# Opening Statement")
	assert.Contains(t, stderr.String(), "msg=fetch")
	assert.Contains(t, stderr.String(), `msg="create hearing"`)
}

func TestMain_Run_ReportsFullFailingURL(t *testing.T) {
	t.Parallel()

	failing := "https://www.gpo.gov/fdsys/pkg/CHRG-110jhrg-joint-economic-committee-field-hearing/content-detail.html"
	repo := &fakeRepository{documents: map[string]string{
		"https://www.gpo.gov/smap/fdsys/sitemap_2007/2007_CHRG_sitemap.xml": `<urlset>
  <url><loc>https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/content-detail.html</loc></url>
  <url><loc>` + failing + `</loc></url>
</urlset>`,
		"https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/mods.xml":                    mods,
		"https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/html/CHRG-110hhrg12345.htm": `<html><body><pre>Order.</pre></body></html>`,
	}}
	m := main.NewMain()
	m.Fetcher = repo.fetcher()
	m.Hearings = &mock.HearingService{
		HearingExistsFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		CreateHearingFn: func(_ context.Context, _ *hearings.Hearing) error {
			return nil
		},
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--first-year=2007", "--last-year=2007", "--verbose"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "  skip "+failing+": ")
	assert.Contains(t, stdout.String(), "  created https://www.gpo.gov/fdsys/pkg/CHRG-110hhrg12345/content-detail.html\n")
	assert.Contains(t, stdout.String(), "2007: created 1, skipped 0, ignored 0, failed 1")
}
