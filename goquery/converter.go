// Package goquery extracts plaintext from HTML using PuerkitoBio/goquery.
package goquery

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hearings"
)

// Ensure Converter implements hearings.Converter at compile time.
var _ hearings.Converter = (*Converter)(nil)

// nonContent lists elements whose text never belongs in a transcript.
const nonContent = "head, script, style, noscript, template"

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter renders an HTML document as plaintext.
//
// Transcript pages carry the hearing text in one or more <pre> blocks; when
// present only those are kept, with their line structure intact. Other pages
// fall back to the text of the whole body.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert returns the plaintext rendition of html. Empty input yields "".
func (c *Converter) Convert(html []byte) (string, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", hearings.Errorf(hearings.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(nonContent).Remove()

	var text string
	if pre := doc.Find("pre"); pre.Length() > 0 {
		var parts []string
		pre.Each(func(_ int, sel *goquery.Selection) {
			parts = append(parts, sel.Text())
		})
		text = strings.Join(parts, "\n\n")
	} else {
		text = doc.Find("body").Text()
	}

	return normalize(text), nil
}

// normalize trims trailing space from every line and collapses runs of blank
// lines to one.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t ")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
