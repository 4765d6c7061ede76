// Package htmltomarkdown converts clean HTML to markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/pmarkowski/docmd"
)

// Ensure Converter implements docmd.Converter at compile time.
var _ docmd.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Headings, lists, tables, images, and
// inline/block code survive conversion; link targets are left as
// encountered for the post-crawl rewriting pass.
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

// Convert transforms HTML content into markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docmd.Errorf(docmd.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", docmd.Errorf(docmd.EINVALID, "markdown conversion: %v", err)
	}

	return result, nil
}
