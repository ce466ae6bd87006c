package mock

import "github.com/fwojciec/hearings"

var (
	_ hearings.Converter  = (*Converter)(nil)
	_ hearings.XMLDecoder = (*XMLDecoder)(nil)
)

// Converter is a mock implementation of hearings.Converter.
type Converter struct {
	ConvertFn func(html []byte) (string, error)
}

func (c *Converter) Convert(html []byte) (string, error) {
	return c.ConvertFn(html)
}

// XMLDecoder is a mock implementation of hearings.XMLDecoder.
type XMLDecoder struct {
	DecodeFn func(data []byte) (map[string]any, error)
}

func (d *XMLDecoder) Decode(data []byte) (map[string]any, error) {
	return d.DecodeFn(data)
}
