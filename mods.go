package hearings

import (
	"strconv"
	"strings"
)

// Conventions of the generic tree produced by an XMLDecoder.
//
// An element with neither attributes nor child elements decodes to its
// trimmed text. Any other element decodes to a map[string]any holding child
// elements by local name, attributes under AttrPrefix+name and its own text
// under TextKey. A name that occurs more than once decodes to a []any.
const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

// XMLDecoder converts an XML document into a generic tree of maps, slices
// and strings. The returned map has a single key: the root element name.
type XMLDecoder interface {
	Decode(data []byte) (map[string]any, error)
}

// MODSExtension is the flattened extension block of a hearing's MODS record.
// Every field is optional; nil means the record does not carry it.
type MODSExtension struct {
	Chamber              *string
	Congress             *int
	Session              *int
	JacketID             *string
	HeldDate             *string
	Title                *string
	CommitteeAuthorityID *string
	SubcommitteeName     *string

	IsAppropriation bool
	IsNomination    bool
	IsErrata        bool
}

// ParseMODS maps a decoded MODS tree onto a MODSExtension.
// It returns false when the tree has no mods.extension element.
func ParseMODS(tree map[string]any) (*MODSExtension, bool) {
	mods, ok := tree["mods"].(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := mods["extension"]
	if !ok {
		return nil, false
	}

	var fragments []map[string]any
	for _, v := range list(raw) {
		if m, ok := v.(map[string]any); ok {
			fragments = append(fragments, m)
		}
	}
	ext := MergeFragments(fragments)

	var e MODSExtension
	if s, ok := text(ext["chamber"]); ok {
		s = strings.ToLower(s)
		e.Chamber = &s
	}
	e.Congress = integer(ext["congress"])
	e.Session = integer(ext["session"])
	e.JacketID = str(ext["jacketId"])
	e.HeldDate = str(ext["heldDate"])

	e.Title = str(ext["searchTitle"])
	if e.Title == nil {
		if info, ok := first(mods["titleInfo"]).(map[string]any); ok {
			e.Title = str(info["title"])
		}
	}

	if committee, ok := first(ext["congCommittee"]).(map[string]any); ok {
		if id, ok := text(committee[AttrPrefix+"authorityId"]); ok {
			if len(id) > 4 {
				id = id[:4]
			}
			e.CommitteeAuthorityID = &id
		}
		if sub, ok := first(committee["subCommittee"]).(map[string]any); ok {
			e.SubcommitteeName = str(sub["name"])
		}
	}

	e.IsAppropriation = flag(ext["isAppropriation"])
	e.IsNomination = flag(ext["isNomination"])
	e.IsErrata = flag(ext["isErrata"])

	return &e, true
}

// MergeFragments flattens extension fragments into one map.
// When fragments share a key, the later fragment wins.
func MergeFragments(fragments []map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, f := range fragments {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

// Hearing builds a Hearing without content from the extension.
// It returns false unless chamber, congress number and jacket ID are all present.
func (e *MODSExtension) Hearing() (*Hearing, bool) {
	if e.Chamber == nil || e.Congress == nil || e.JacketID == nil {
		return nil, false
	}
	return &Hearing{
		ID:                HearingID(*e.Chamber, *e.Congress, *e.JacketID),
		CommitteeThomasID: e.CommitteeAuthorityID,
		SubcommitteeName:  e.SubcommitteeName,
		CongressNumber:    e.Congress,
		CongressSession:   e.Session,
		CongressChamber:   e.Chamber,
		Title:             e.Title,
		JacketID:          e.JacketID,
		HeldDate:          e.HeldDate,
		IsAppropriation:   e.IsAppropriation,
		IsNomination:      e.IsNomination,
		IsErrata:          e.IsErrata,
	}, true
}

// list returns v as a slice, wrapping a single value.
func list(v any) []any {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

// first returns the first element of a repeated value, or v itself.
func first(v any) any {
	if l := list(v); len(l) > 0 {
		return l[0]
	}
	return nil
}

// text returns the text of a leaf, an element's TextKey, or the first
// non-empty text of a repeated value.
func text(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case map[string]any:
		return text(v[TextKey])
	case []any:
		for _, item := range v {
			if s, ok := text(item); ok {
				return s, true
			}
		}
	}
	return "", false
}

func str(v any) *string {
	s, ok := text(v)
	if !ok {
		return nil
	}
	return &s
}

// integer accepts only a whole decimal number after trimming. Values with
// trailing text such as "110th" are treated as absent.
func integer(v any) *int {
	s, ok := text(v)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// flag is true only for the literal string "true".
func flag(v any) bool {
	s, ok := text(v)
	return ok && s == "true"
}
