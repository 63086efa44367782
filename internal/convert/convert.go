// Package convert renders HTML fragments to markdown. The rendering is a
// structural transcription: hyperlinks, images, and table structure are
// preserved, and long lines are kept as-is rather than wrapped.
package convert

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// Converter renders HTML to markdown. Construct once with New and reuse; it
// is safe for concurrent use.
type Converter struct {
	md *md.Converter
}

// New returns a Converter with table support enabled.
func New() *Converter {
	c := md.NewConverter("", true, nil)
	c.Use(plugin.Table())
	return &Converter{md: c}
}

// ToMarkdown renders the HTML fragment to markdown.
func (c *Converter) ToMarkdown(html string) (string, error) {
	return c.md.ConvertString(html)
}
