// Package etree decodes XML documents into generic trees using beevik/etree.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/hearings"
)

// Ensure Decoder implements hearings.XMLDecoder at compile time.
var _ hearings.XMLDecoder = (*Decoder)(nil)

// Decoder converts XML into the generic tree described by hearings.XMLDecoder.
// Namespace prefixes are dropped from element and attribute names.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data and returns {rootName: rootValue}.
func (d *Decoder) Decode(data []byte) (map[string]any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, hearings.Errorf(hearings.EINVALID, "parsing XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, hearings.Errorf(hearings.EINVALID, "empty XML document")
	}

	return map[string]any{root.Tag: decodeElement(root)}, nil
}

// decodeElement converts one element and its subtree.
func decodeElement(el *etree.Element) any {
	children := el.ChildElements()
	text := strings.TrimSpace(el.Text())

	var attrs []etree.Attr
	for _, a := range el.Attr {
		// Namespace declarations are not data.
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		attrs = append(attrs, a)
	}

	if len(children) == 0 && len(attrs) == 0 {
		return text
	}

	node := make(map[string]any, len(children)+len(attrs)+1)
	for _, a := range attrs {
		node[hearings.AttrPrefix+a.Key] = a.Value
	}
	for _, child := range children {
		value := decodeElement(child)
		switch existing := node[child.Tag].(type) {
		case nil:
			node[child.Tag] = value
		case []any:
			node[child.Tag] = append(existing, value)
		default:
			node[child.Tag] = []any{existing, value}
		}
	}
	if text != "" {
		node[hearings.TextKey] = text
	}
	return node
}
