// Package htmltomarkdown renders transcripts as Markdown using
// JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/hearings"
)

// Ensure Converter implements hearings.Converter at compile time.
var _ hearings.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML page into Markdown. Empty input yields "".
func (c *Converter) Convert(html []byte) (string, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return "", nil
	}

	out, err := c.conv.ConvertReader(bytes.NewReader(html))
	if err != nil {
		return "", hearings.Errorf(hearings.EINVALID, "failed to convert HTML: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}
