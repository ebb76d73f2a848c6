// Package plain renders plain text, wrapping it to the view width and
// turning URLs into links.
package plain

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markview/pkg/markup"
	"github.com/marcus/markview/pkg/markup/linkify"
)

const tabWidth = 4

// Renderer renders a plain text document.
type Renderer struct {
	lines     []string
	linkStyle lipgloss.Style
	minWidth  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLinkStyle sets the style of detected links.
func WithLinkStyle(s lipgloss.Style) Option {
	return func(r *Renderer) { r.linkStyle = s }
}

// WithMinWidth sets the narrowest width text is wrapped to.
func WithMinWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.minWidth = n
		}
	}
}

// New creates a renderer for text.
func New(text string, opts ...Option) *Renderer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	r := &Renderer{
		lines:     strings.Split(strings.TrimRight(text, "\n"), "\n"),
		linkStyle: markup.DefaultLinkStyle,
		minWidth:  markup.DefaultMinWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements markup.Renderer.
func (r *Renderer) Render(c markup.Size) *markup.Document {
	doc := markup.NewDocument(c)
	width := max(r.minWidth, c.Width)
	for _, line := range r.lines {
		PushWrapped(doc, line, width, r.linkStyle)
	}
	return doc
}

// PushWrapped wraps line to width and pushes the result to doc, one
// document line per wrapped line.
func PushWrapped(doc *markup.Document, line string, width int, linkStyle lipgloss.Style) {
	if line == "" {
		doc.PushLine()
		return
	}
	for _, l := range strings.Split(ansi.Wrap(line, width, ""), "\n") {
		doc.PushLine(linkify.Elements(l, linkStyle)...)
	}
}
