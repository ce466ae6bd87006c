// Package elasticsearch provides the hearing index backed by Elasticsearch.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fwojciec/hearings"
)

// DefaultIndex is the index hearings are written to.
const DefaultIndex = "hearings"

// Compile-time interface verification.
var _ hearings.HearingService = (*HearingService)(nil)

// Config holds connection settings for the cluster.
type Config struct {
	Address  string
	Username string
	Password string
}

// NewClient creates a client for the cluster at cfg.Address.
// Credentials are passed through unchanged when set.
func NewClient(cfg Config) (*elasticsearch.Client, error) {
	if cfg.Address == "" {
		return nil, hearings.Errorf(hearings.EINVALID, "elasticsearch address required")
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Address},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return client, nil
}

// HearingService implements hearings.HearingService on an Elasticsearch index.
// Documents are keyed by hearing ID and written with the create API, so an
// existing document is never overwritten.
type HearingService struct {
	client *elasticsearch.Client
	index  string
}

// NewHearingService creates a new HearingService writing to index.
func NewHearingService(client *elasticsearch.Client, index string) *HearingService {
	if index == "" {
		index = DefaultIndex
	}
	return &HearingService{client: client, index: index}
}

// mapping keeps identifiers exact and the transcript full-text searchable.
const mapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "committeeThomasId": {"type": "keyword"},
      "subcommitteeName":  {"type": "text"},
      "congressNumber":    {"type": "integer"},
      "congressSession":   {"type": "integer"},
      "congressChamber":   {"type": "keyword"},
      "title":             {"type": "text"},
      "jacketId":          {"type": "keyword"},
      "heldDate":          {"type": "keyword"},
      "isAppropriation":   {"type": "boolean"},
      "isNomination":      {"type": "boolean"},
      "isErrata":          {"type": "boolean"},
      "content":           {"type": "text"},
      "sourceUrl":         {"type": "keyword"},
      "contentHash":       {"type": "keyword"},
      "fetchedAt":         {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (s *HearingService) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("checking index %s: %w", s.index, err)
	}
	drain(res)
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("checking index %s: %s", s.index, res.Status())
	}

	res, err = s.client.Indices.Create(s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", s.index, err)
	}
	defer drain(res)
	if res.IsError() {
		// Another process created it first.
		if res.StatusCode == http.StatusBadRequest && strings.Contains(readAll(res), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("creating index %s: %s", s.index, res.Status())
	}
	return nil
}

// HearingExists reports whether a document with the given ID is indexed.
func (s *HearingService) HearingExists(ctx context.Context, id string) (bool, error) {
	res, err := s.client.Exists(s.index, id, s.client.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("checking hearing %s: %w", id, err)
	}
	drain(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("checking hearing %s: %s", id, res.Status())
	}
}

// CreateHearing indexes a new hearing under its ID.
// Returns ECONFLICT if a document with that ID already exists.
func (s *HearingService) CreateHearing(ctx context.Context, h *hearings.Hearing) error {
	if err := h.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding hearing %s: %w", h.ID, err)
	}

	res, err := s.client.Create(s.index, h.ID, bytes.NewReader(body), s.client.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("creating hearing %s: %w", h.ID, err)
	}
	defer drain(res)

	switch {
	case res.StatusCode == http.StatusConflict:
		return hearings.Errorf(hearings.ECONFLICT, "hearing %q already exists", h.ID)
	case res.IsError():
		return fmt.Errorf("creating hearing %s: %s", h.ID, res.Status())
	}
	return nil
}

// FindHearingByID retrieves a hearing by ID.
func (s *HearingService) FindHearingByID(ctx context.Context, id string) (*hearings.Hearing, error) {
	res, err := s.client.Get(s.index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("getting hearing %s: %w", id, err)
	}
	defer drain(res)

	if res.StatusCode == http.StatusNotFound {
		return nil, hearings.Errorf(hearings.ENOTFOUND, "hearing not found")
	}
	if res.IsError() {
		return nil, fmt.Errorf("getting hearing %s: %s", id, res.Status())
	}

	var doc struct {
		Found  bool             `json:"found"`
		Source hearings.Hearing `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding hearing %s: %w", id, err)
	}
	if !doc.Found {
		return nil, hearings.Errorf(hearings.ENOTFOUND, "hearing not found")
	}
	if doc.Source.ID == "" {
		doc.Source.ID = id
	}
	return &doc.Source, nil
}

// drain discards the rest of the body so the connection can be reused.
func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	res.Body.Close()
}

func readAll(res *esapi.Response) string {
	if res.Body == nil {
		return ""
	}
	b, _ := io.ReadAll(res.Body)
	return string(b)
}
