package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/hearings"
)

// Outcome is what processing a single hearing URL amounted to.
type Outcome int

const (
	// OutcomeCreated means the hearing was written to the index.
	OutcomeCreated Outcome = iota
	// OutcomeExists means the hearing was already indexed and was skipped.
	OutcomeExists
	// OutcomeNoExtension means the MODS record has no extension block.
	OutcomeNoExtension
	// OutcomeIncomplete means chamber, congress or jacket ID is missing.
	OutcomeIncomplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeExists:
		return "exists"
	case OutcomeNoExtension:
		return "no-extension"
	case OutcomeIncomplete:
		return "incomplete"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Processor turns a hearing detail URL into an indexed hearing.
type Processor interface {
	Process(ctx context.Context, detailURL string) (Outcome, error)
}

var _ Processor = (*Builder)(nil)

// Builder assembles hearings from their MODS record and transcript and
// writes each one to the index once.
// Builder holds no state shared between hearings and is safe for concurrent use.
type Builder struct {
	Fetcher    hearings.Fetcher
	Decoder    hearings.XMLDecoder
	Converter  hearings.Converter
	Hearings   hearings.HearingService
	Repository Repository
	Logger     *slog.Logger

	// Now returns the assembly time stamped on hearings. Defaults to time.Now.
	Now func() time.Time
}

// Process indexes the hearing at detailURL.
//
// When the page ID embeds the hearing's identity, the index is checked before
// anything is fetched. Otherwise the MODS record is fetched first to derive it.
func (b *Builder) Process(ctx context.Context, detailURL string) (Outcome, error) {
	pageID, err := PageID(detailURL)
	if err != nil {
		return b.BuildAndStore(ctx, detailURL, "")
	}
	id, ok := CommitteePrintID(pageID)
	if !ok {
		return b.BuildAndStore(ctx, detailURL, "")
	}

	exists, err := b.Hearings.HearingExists(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("checking hearing %s: %w", id, err)
	}
	if exists {
		return OutcomeExists, nil
	}
	return b.BuildAndStore(ctx, detailURL, id)
}

// BuildAndStore fetches the MODS record for detailURL, builds the hearing and
// creates it in the index. Missing metadata ends processing without an error.
// checkedID names a hearing the caller already found absent. The index is
// consulted again unless the MODS record derives that same ID.
func (b *Builder) BuildAndStore(ctx context.Context, detailURL, checkedID string) (Outcome, error) {
	logger := b.logger()

	modsURL := MODSURL(detailURL)
	body, err := b.Fetcher.Fetch(ctx, modsURL)
	if err != nil {
		return 0, fmt.Errorf("fetching MODS %s: %w", modsURL, err)
	}

	tree, err := b.Decoder.Decode(body)
	if err != nil {
		logger.Error("decoding MODS", "url", modsURL, "err", err)
		return 0, fmt.Errorf("decoding MODS %s: %w", modsURL, err)
	}

	ext, ok := hearings.ParseMODS(tree)
	if !ok {
		logger.Warn("MODS has no extension", "url", modsURL)
		return OutcomeNoExtension, nil
	}

	h, ok := ext.Hearing()
	if !ok {
		logger.Warn("MODS lacks chamber, congress or jacket ID", "url", modsURL)
		return OutcomeIncomplete, nil
	}

	if h.ID != checkedID {
		exists, err := b.Hearings.HearingExists(ctx, h.ID)
		if err != nil {
			return 0, fmt.Errorf("checking hearing %s: %w", h.ID, err)
		}
		if exists {
			return OutcomeExists, nil
		}
	}

	pageID, err := PageID(detailURL)
	if err != nil {
		return 0, err
	}
	contentURL := b.Repository.ContentURL(pageID)
	html, err := b.Fetcher.Fetch(ctx, contentURL)
	if err != nil {
		return 0, fmt.Errorf("fetching transcript %s: %w", contentURL, err)
	}
	content, err := b.Converter.Convert(html)
	if err != nil {
		return 0, fmt.Errorf("converting transcript %s: %w", contentURL, err)
	}

	h.Content = content
	h.ContentHash = ComputeHash(content)
	h.SourceURL = detailURL
	h.FetchedAt = b.now().UTC()

	if err := b.Hearings.CreateHearing(ctx, h); err != nil {
		logger.Error("storing hearing", "id", h.ID, "url", detailURL, "err", err)
		return 0, fmt.Errorf("storing hearing %s: %w", h.ID, err)
	}
	return OutcomeCreated, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}
