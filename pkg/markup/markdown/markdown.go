// Package markdown renders Markdown documents with glamour.
//
// glamour produces styled terminal text without link annotations, so links
// are recovered from the rendered output: glamour prints link destinations
// next to their text, and every URL in a rendered line becomes a link.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markview/pkg/markup"
	"github.com/marcus/markview/pkg/markup/linkify"
	"github.com/marcus/markview/pkg/markup/plain"
)

// DefaultStyle is the glamour style used when none is configured.
const DefaultStyle = styles.DarkStyle

// Renderer renders a Markdown document. The source is kept and rendered
// again for every new width.
type Renderer struct {
	source    string
	style     string
	linkStyle lipgloss.Style
	minWidth  int
	baseURL   string
	logger    *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the glamour standard style ("dark", "light", "notty", ...).
func WithStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = name
		}
	}
}

// WithLinkStyle sets the style of links.
func WithLinkStyle(s lipgloss.Style) Option {
	return func(r *Renderer) { r.linkStyle = s }
}

// WithMinWidth sets the narrowest width to render for.
func WithMinWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.minWidth = n
		}
	}
}

// WithBaseURL sets the location of the document. Relative link destinations
// are printed resolved against it, so they become links too.
func WithBaseURL(u string) Option {
	return func(r *Renderer) { r.baseURL = u }
}

// WithLogger sets the logger that reports rendering failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a renderer for the Markdown source.
func New(source string, opts ...Option) *Renderer {
	r := &Renderer{
		source:    source,
		style:     DefaultStyle,
		linkStyle: markup.DefaultLinkStyle,
		minWidth:  markup.DefaultMinWidth,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements markup.Renderer. If glamour fails, the source is shown
// as plain text.
func (r *Renderer) Render(c markup.Size) *markup.Document {
	doc := markup.NewDocument(c)
	width := max(r.minWidth, c.Width)

	out, err := r.glamour(width)
	if err != nil {
		r.logger.Warn("markdown render failed, showing source", "err", err, "width", width)
		for _, line := range strings.Split(strings.TrimRight(r.source, "\n"), "\n") {
			plain.PushWrapped(doc, line, width, r.linkStyle)
		}
		return doc
	}

	// glamour does not break words longer than its text column, so such
	// lines are split here.
	for _, line := range trimBlankLines(strings.Split(out, "\n")) {
		line = trimPadding(strings.TrimRight(line, " "), width)
		for _, l := range linkify.Split(linkify.Elements(line, r.linkStyle), width) {
			doc.PushLine(l...)
		}
	}
	return doc
}

// trimPadding drops the part of line beyond width if it is only whitespace.
func trimPadding(line string, width int) string {
	w := ansi.StringWidth(line)
	if w <= width || strings.TrimSpace(ansi.Strip(ansi.Cut(line, width, w))) != "" {
		return line
	}
	return ansi.Truncate(line, width, "")
}

func (r *Renderer) glamour(width int) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	}
	if r.baseURL != "" {
		opts = append(opts, glamour.WithBaseURL(r.baseURL))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return tr.Render(r.source)
}

// trimBlankLines drops the empty lines glamour puts around the document.
func trimBlankLines(lines []string) []string {
	blank := func(s string) bool { return strings.TrimSpace(ansi.Strip(s)) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Title returns the text of the first level-one heading, if any.
func Title(source string) string {
	for _, line := range strings.Split(source, "\n") {
		if t, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
