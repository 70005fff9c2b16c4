package mock

import "github.com/fwojciec/cpm"

var _ cpm.Converter = (*Converter)(nil)

// Converter is a mock implementation of cpm.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
