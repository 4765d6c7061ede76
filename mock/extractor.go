package mock

import "github.com/pmarkowski/docmd"

var _ docmd.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docmd.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docmd.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docmd.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docmd.Converter = (*Converter)(nil)

// Converter is a mock implementation of docmd.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docmd.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docmd.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}
