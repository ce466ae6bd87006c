package hearings

import (
	"context"
	"strconv"
	"time"
)

// Chamber values as stored on a Hearing.
const (
	ChamberHouse  = "house"
	ChamberSenate = "senate"
)

// Hearing is a committee hearing as persisted in the index.
// Optional fields are nil when the MODS record does not carry them.
type Hearing struct {
	ID                string    `json:"id"`
	CommitteeThomasID *string   `json:"committeeThomasId,omitempty"`
	SubcommitteeName  *string   `json:"subcommitteeName,omitempty"`
	CongressNumber    *int      `json:"congressNumber,omitempty"`
	CongressSession   *int      `json:"congressSession,omitempty"`
	CongressChamber   *string   `json:"congressChamber,omitempty"`
	Title             *string   `json:"title,omitempty"`
	JacketID          *string   `json:"jacketId,omitempty"`
	HeldDate          *string   `json:"heldDate,omitempty"`
	IsAppropriation   bool      `json:"isAppropriation"`
	IsNomination      bool      `json:"isNomination"`
	IsErrata          bool      `json:"isErrata"`
	Content           string    `json:"content"`
	SourceURL         string    `json:"sourceUrl,omitempty"`
	ContentHash       string    `json:"contentHash,omitempty"`
	FetchedAt         time.Time `json:"fetchedAt"`
}

// Validate returns an error if the hearing contains invalid fields.
func (h *Hearing) Validate() error {
	if h.ID == "" {
		return Errorf(EINVALID, "hearing ID required")
	}
	return nil
}

// HearingID returns the canonical index key for a hearing.
// House hearings are prefixed "H", everything else "S".
func HearingID(chamber string, congress int, jacketID string) string {
	prefix := "S"
	if chamber == ChamberHouse {
		prefix = "H"
	}
	return prefix + "-" + strconv.Itoa(congress) + "-" + jacketID
}

// HearingService represents the search index holding hearings.
// Hearings are only ever created; the index is append-only.
type HearingService interface {
	// HearingExists reports whether a hearing with the given ID is indexed.
	HearingExists(ctx context.Context, id string) (bool, error)

	// CreateHearing stores a new hearing under its ID.
	// Returns ECONFLICT if a hearing with that ID already exists.
	CreateHearing(ctx context.Context, h *Hearing) error

	// FindHearingByID retrieves a hearing by ID.
	// Returns ENOTFOUND if the hearing does not exist.
	FindHearingByID(ctx context.Context, id string) (*Hearing, error)
}
