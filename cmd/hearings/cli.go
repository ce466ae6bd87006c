package main

import (
	"time"

	"github.com/fwojciec/hearings"
)

// CLI is the configuration read from the environment at startup.
// Every setting also has a flag for local runs.
type CLI struct {
	FirstYear         int           `env:"FIRST_YEAR" default:"1993" help:"First sitemap year (inclusive)."`
	LastYear          int           `env:"LAST_YEAR" help:"Last sitemap year (inclusive). Defaults to the current year."`
	RequestsPerSecond float64       `name:"requests-per-second" env:"REQUESTS_PER_SECOND" default:"10" help:"Ceiling on outbound request starts per second."`
	ESHost            string        `name:"es-host" env:"ES_HOST" help:"Elasticsearch address. Empty stores hearings in a local SQLite database."`
	ESUsername        string        `name:"es-username" env:"ES_USERNAME" help:"Elasticsearch username."`
	ESPassword        string        `name:"es-password" env:"ES_PASSWORD" help:"Elasticsearch password."`
	DB                string        `name:"db" env:"HEARINGS_DB" help:"SQLite database path used when no Elasticsearch address is set."`
	RepositoryURL     string        `name:"repository-url" env:"REPOSITORY_URL" default:"https://www.gpo.gov" help:"Document repository base URL."`
	ContentFormat     string        `env:"CONTENT_FORMAT" enum:"text,markdown" default:"text" help:"Transcript rendition (text or markdown)."`
	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" default:"30s" help:"HTTP request timeout."`
	Concurrency       int           `env:"CONCURRENCY" default:"0" help:"Cap on hearings processed at once per year (0 = no cap)."`
	Verbose           bool          `short:"v" env:"VERBOSE" help:"Log every fetch and index call."`
}

// validate rejects settings that would make the campaign meaningless.
func (c *CLI) validate() error {
	if c.FirstYear > c.LastYear {
		return hearings.Errorf(hearings.EINVALID, "FIRST_YEAR %d is after LAST_YEAR %d", c.FirstYear, c.LastYear)
	}
	if c.RequestsPerSecond <= 0 {
		return hearings.Errorf(hearings.EINVALID, "REQUESTS_PER_SECOND must be positive, got %v", c.RequestsPerSecond)
	}
	if c.FetchTimeout <= 0 {
		return hearings.Errorf(hearings.EINVALID, "FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout)
	}
	return nil
}
