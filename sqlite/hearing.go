package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/hearings"
)

// Compile-time interface verification.
var _ hearings.HearingService = (*HearingService)(nil)

// HearingService implements hearings.HearingService using SQLite.
type HearingService struct {
	db *DB
}

// NewHearingService creates a new HearingService.
func NewHearingService(db *DB) *HearingService {
	return &HearingService{db: db}
}

// HearingExists reports whether a hearing with the given ID is stored.
func (s *HearingService) HearingExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM hearings WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CreateHearing stores a new hearing.
// Returns ECONFLICT if a hearing with the same ID is already stored.
func (s *HearingService) CreateHearing(ctx context.Context, h *hearings.Hearing) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.FetchedAt.IsZero() {
		h.FetchedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO hearings (
			id, committee_thomas_id, subcommittee_name, congress_number, congress_session,
			congress_chamber, title, jacket_id, held_date,
			is_appropriation, is_nomination, is_errata,
			content, content_hash, source_url, fetched_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, h.ID, nullString(h.CommitteeThomasID), nullString(h.SubcommitteeName),
		nullInt(h.CongressNumber), nullInt(h.CongressSession), nullString(h.CongressChamber),
		nullString(h.Title), nullString(h.JacketID), nullString(h.HeldDate),
		h.IsAppropriation, h.IsNomination, h.IsErrata,
		h.Content, h.ContentHash, h.SourceURL, h.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hearings.Errorf(hearings.ECONFLICT, "hearing %q already exists", h.ID)
	}
	return nil
}

// FindHearingByID retrieves a hearing by ID.
func (s *HearingService) FindHearingByID(ctx context.Context, id string) (*hearings.Hearing, error) {
	var h hearings.Hearing
	var (
		committee, subcommittee, chamber, title, jacket, held sql.NullString
		congress, session                                      sql.NullInt64
		fetchedAt                                              string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, committee_thomas_id, subcommittee_name, congress_number, congress_session,
			congress_chamber, title, jacket_id, held_date,
			is_appropriation, is_nomination, is_errata,
			content, content_hash, source_url, fetched_at
		FROM hearings
		WHERE id = ?
	`, id).Scan(&h.ID, &committee, &subcommittee, &congress, &session,
		&chamber, &title, &jacket, &held,
		&h.IsAppropriation, &h.IsNomination, &h.IsErrata,
		&h.Content, &h.ContentHash, &h.SourceURL, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, hearings.Errorf(hearings.ENOTFOUND, "hearing not found")
	}
	if err != nil {
		return nil, err
	}

	h.CommitteeThomasID = stringPtr(committee)
	h.SubcommitteeName = stringPtr(subcommittee)
	h.CongressNumber = intPtr(congress)
	h.CongressSession = intPtr(session)
	h.CongressChamber = stringPtr(chamber)
	h.Title = stringPtr(title)
	h.JacketID = stringPtr(jacket)
	h.HeldDate = stringPtr(held)

	h.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &h, nil
}
