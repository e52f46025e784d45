package main

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/text/unicode/norm"
)

const (
	CaptionFormatText     = "text"
	CaptionFormatMarkdown = "markdown"
)

// outerHTMLer is implemented by elements that can render their own markup
type outerHTMLer interface {
	OuterHTML() (string, error)
}

// captionRenderer turns caption elements into single-line record text
type captionRenderer struct {
	format    string
	converter *md.Converter
}

func newCaptionRenderer(format string) *captionRenderer {
	r := &captionRenderer{format: format}
	if format == CaptionFormatMarkdown {
		r.converter = md.NewConverter("", true, nil)
	}
	return r
}

// Render returns the normalized caption text, converting the caption markup
// to markdown when configured and the source element supports it
func (r *captionRenderer) Render(c Caption) string {
	if r.converter != nil && c.Source != nil {
		if src, ok := c.Source.(outerHTMLer); ok {
			markdown, err := r.toMarkdown(src)
			if err == nil {
				return normalizeText(markdown)
			}
			debugLog("markdown caption conversion failed, using plain text: %v", err)
		}
	}
	return normalizeText(c.Raw)
}

func (r *captionRenderer) toMarkdown(src outerHTMLer) (string, error) {
	markup, err := src.OuterHTML()
	if err != nil {
		return "", err
	}
	return r.converter.ConvertString(markup)
}

// normalizeText trims text, collapses whitespace runs and blank lines into
// single spaces, and applies Unicode NFC
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
