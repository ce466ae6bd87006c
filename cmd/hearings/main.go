package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hearings"
	"github.com/fwojciec/hearings/crawl"
	"github.com/fwojciec/hearings/elasticsearch"
	"github.com/fwojciec/hearings/etree"
	"github.com/fwojciec/hearings/goquery"
	"github.com/fwojciec/hearings/htmltomarkdown"
	hhttp "github.com/fwojciec/hearings/http"
	hslog "github.com/fwojciec/hearings/slog"
	"github.com/fwojciec/hearings/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database opened when no Elasticsearch address is configured.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil selects the configured implementation.
	Hearings hearings.HearingService
	Fetcher  hearings.Fetcher

	// RetryDelays overrides the sitemap backoff. Nil keeps the default.
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run parses configuration and runs the crawl campaign.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hearings"),
		kong.Description("Index congressional committee hearings, one sitemap year at a time.\n\n"+
			"Configure it through the environment variables shown below. The flags mirror them for local runs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.LastYear == 0 {
		cli.LastYear = m.Now().Year()
	}
	if err := cli.validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	store, err := m.openStore(ctx, cli, stderr)
	if err != nil {
		return err
	}
	defer m.Close()

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = hhttp.NewFetcher(hhttp.WithTimeout(cli.FetchTimeout))
	}

	var converter hearings.Converter = goquery.NewConverter()
	if cli.ContentFormat == "markdown" {
		converter = htmltomarkdown.NewConverter()
	}

	if cli.Verbose {
		fetcher = hslog.NewLoggingFetcher(fetcher, logger)
		converter = hslog.NewLoggingConverter(converter, logger)
		store = hslog.NewLoggingHearingService(store, logger)
	}

	// One limiter for every request the process makes.
	fetcher = crawl.NewRateLimitedFetcher(fetcher, crawl.NewLimiter(cli.RequestsPerSecond))

	var sitemaps hearings.SitemapService = hhttp.NewSitemapService(fetcher)
	if cli.Verbose {
		sitemaps = hslog.NewLoggingSitemapService(sitemaps, logger)
	}

	repo := crawl.NewRepository(cli.RepositoryURL)
	campaign := &crawl.Campaign{
		Crawler: &crawl.Crawler{
			Sitemaps: sitemaps,
			Processor: &crawl.Builder{
				Fetcher:    fetcher,
				Decoder:    etree.NewDecoder(),
				Converter:  converter,
				Hearings:   store,
				Repository: repo,
				Logger:     logger,
			},
			Repository:  repo,
			Logger:      logger,
			Concurrency: cli.Concurrency,
			RetryDelays: m.RetryDelays,
		},
		FirstYear: cli.FirstYear,
		LastYear:  cli.LastYear,
	}

	logger.Info("campaign started", "first_year", cli.FirstYear, "last_year", cli.LastYear, "rps", cli.RequestsPerSecond)

	result, err := campaign.Run(ctx, newProgressPrinter(stdout, stderr, cli.Verbose))
	if result != nil {
		t := result.Totals()
		fmt.Fprintf(stdout, "Total: created %d, skipped %d, ignored %d, failed %d of %d hearings in %d years\n",
			t.Created, t.Skipped, t.Ignored, t.Failed, t.Total, cli.LastYear-cli.FirstYear+1)
		if len(result.FailedYears) > 0 {
			fmt.Fprintf(stderr, "Failed years: %v\n", result.FailedYears)
		}
	}
	return err
}

// openStore selects Elasticsearch when an address is configured and the local
// SQLite database otherwise.
func (m *Main) openStore(ctx context.Context, cli *CLI, stderr io.Writer) (hearings.HearingService, error) {
	if m.Hearings != nil {
		return m.Hearings, nil
	}

	if cli.ESHost != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Address:  cli.ESHost,
			Username: cli.ESUsername,
			Password: cli.ESPassword,
		})
		if err != nil {
			return nil, err
		}
		svc := elasticsearch.NewHearingService(client, elasticsearch.DefaultIndex)
		if err := svc.EnsureIndex(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Check ES_HOST and credentials")
			return nil, fmt.Errorf("failed to prepare index: %w", err)
		}
		return svc, nil
	}

	path := cli.DB
	if path == "" {
		path = defaultDBPath()
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set HEARINGS_DB to use a different database path")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewHearingService(m.DB), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hearings.db"
	}
	dir := filepath.Join(home, ".hearings")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "hearings.db")
}
