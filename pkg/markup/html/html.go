// Package html renders HTML documents into markup documents. Block elements
// are laid out as wrapped paragraphs, lists and quotes; anchors become links.
package html

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/marcus/markview/pkg/markup"
)

// Renderer renders a parsed HTML document. The source is parsed once and
// laid out again for every width.
type Renderer struct {
	root      *xhtml.Node
	converter Converter
	minWidth  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConverter sets the converter that styles annotated text.
func WithConverter(c Converter) Option {
	return func(r *Renderer) {
		if c != nil {
			r.converter = c
		}
	}
}

// WithMinWidth sets the narrowest width the document is laid out at.
func WithMinWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.minWidth = n
		}
	}
}

// New parses source and returns a renderer for it. The HTML parser recovers
// from malformed markup, so any input yields a document.
func New(source string, opts ...Option) *Renderer {
	root, err := xhtml.Parse(strings.NewReader(source))
	if err != nil {
		root = nil
	}
	return FromNode(root, opts...)
}

// FromNode returns a renderer for an already parsed document.
func FromNode(root *xhtml.Node, opts ...Option) *Renderer {
	r := &Renderer{
		root:      root,
		converter: RichConverter{},
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
	if r.root == nil {
		return doc
	}

	w := &walker{layout: newLayout(max(r.minWidth, c.Width))}
	w.walk(r.root, nil)
	for _, l := range w.layout.finish() {
		doc.PushLine(r.elements(l)...)
	}
	return doc
}

// Title returns the text of the document's <title> element.
func (r *Renderer) Title() string {
	return Title(r.root)
}

// Title returns the whitespace-normalized text of the first <title> element
// under n, or "" if there is none.
func Title(n *xhtml.Node) string {
	t := findElement(n, atom.Title)
	if t == nil {
		return ""
	}
	return strings.Join(strings.Fields(textContent(t)), " ")
}

func (r *Renderer) elements(l line) []markup.Element {
	out := make([]markup.Element, 0, len(l))
	for _, f := range l {
		var (
			styles []lipgloss.Style
			target *string
		)
		for _, a := range f.tags {
			if s, ok := r.converter.Style(a); ok {
				styles = append(styles, s)
			}
			if t, ok := r.converter.Link(a); ok && target == nil {
				target = &t
			}
		}
		out = append(out, markup.NewElement(f.text, mergeStyles(styles), target))
	}
	return out
}

type walker struct {
	layout  *layout
	pre     int
	lists   []int // Next item number per open list; 0 marks an unordered list
	anchors int
}

func (w *walker) walk(n *xhtml.Node, tags []Annotation) {
	switch n.Type {
	case xhtml.TextNode:
		w.text(n.Data, tags)
		return
	case xhtml.DocumentNode:
		w.children(n, tags)
		return
	case xhtml.ElementNode:
	default:
		return
	}

	l := w.layout
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Title, atom.Noscript:
		return

	case atom.Br:
		l.newline()

	case atom.Hr:
		l.paragraph()
		l.rule()
		l.paragraph()

	case atom.Img:
		alt := strings.TrimSpace(getAttr(n, "alt"))
		if alt == "" {
			alt = "image"
		}
		if w.pre == 0 {
			l.word("["+alt+"]", with(tags, Annotation{Kind: Image}))
		} else {
			l.raw("["+alt+"]", with(tags, Annotation{Kind: Image}))
		}

	case atom.A:
		if href, ok := attr(n, "href"); ok {
			w.anchors++
			tags = with(tags, Annotation{Kind: Link, Target: strings.TrimSpace(href), Anchor: w.anchors})
		}
		w.children(n, tags)

	case atom.Em, atom.I, atom.Cite, atom.Dfn, atom.Var:
		w.children(n, with(tags, Annotation{Kind: Emphasis}))
	case atom.Strong, atom.B:
		w.children(n, with(tags, Annotation{Kind: Strong}))
	case atom.S, atom.Del, atom.Strike:
		w.children(n, with(tags, Annotation{Kind: Strikeout}))
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		w.children(n, with(tags, Annotation{Kind: Code}))

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		l.paragraph()
		l.word(strings.Repeat("#", level), nil)
		l.space()
		w.children(n, with(tags, Annotation{Kind: Strong}))
		l.paragraph()

	case atom.P:
		l.paragraph()
		w.children(n, tags)
		l.paragraph()

	case atom.Pre:
		l.paragraph()
		w.pre++
		w.children(n, with(tags, Annotation{Kind: Preformat}))
		w.pre--
		l.paragraph()

	case atom.Blockquote:
		l.paragraph()
		l.pushMargin("> ", "> ")
		w.children(n, tags)
		l.breakLine()
		l.popMargin()
		l.paragraph()

	case atom.Ul, atom.Ol:
		next := 0
		if n.DataAtom == atom.Ol {
			next = 1
			if s, err := strconv.Atoi(getAttr(n, "start")); err == nil {
				next = s
			}
		}
		if len(w.lists) == 0 {
			l.paragraph()
		} else {
			l.breakLine()
		}
		w.lists = append(w.lists, next)
		w.children(n, tags)
		w.lists = w.lists[:len(w.lists)-1]
		if len(w.lists) == 0 {
			l.paragraph()
		} else {
			l.breakLine()
		}

	case atom.Li:
		bullet := "* "
		if d := len(w.lists); d > 0 && w.lists[d-1] > 0 {
			bullet = strconv.Itoa(w.lists[d-1]) + ". "
			w.lists[d-1]++
		}
		l.breakLine()
		l.pushMargin(bullet, strings.Repeat(" ", len(bullet)))
		w.children(n, tags)
		l.breakLine()
		l.popMargin()

	case atom.Dd:
		l.breakLine()
		l.pushMargin("    ", "    ")
		w.children(n, tags)
		l.breakLine()
		l.popMargin()

	case atom.Table:
		l.paragraph()
		w.children(n, tags)
		l.paragraph()

	case atom.Tr:
		l.breakLine()
		w.children(n, tags)
		l.breakLine()

	case atom.Td:
		l.space()
		w.children(n, tags)
		l.space()
	case atom.Th:
		l.space()
		w.children(n, with(tags, Annotation{Kind: Strong}))
		l.space()

	case atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer, atom.Main,
		atom.Nav, atom.Aside, atom.Address, atom.Figure, atom.Figcaption, atom.Form,
		atom.Dl, atom.Dt, atom.Center, atom.Details, atom.Summary, atom.Caption:
		l.breakLine()
		w.children(n, tags)
		l.breakLine()

	default:
		w.children(n, tags)
	}
}

func (w *walker) children(n *xhtml.Node, tags []Annotation) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, tags)
	}
}

func (w *walker) text(s string, tags []Annotation) {
	l := w.layout
	if w.pre > 0 {
		s = strings.ReplaceAll(s, "\t", "    ")
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				l.newline()
			}
			if part != "" {
				l.raw(part, tags)
			}
		}
		return
	}

	if s == "" {
		return
	}
	if startsWithSpace(s) {
		l.space()
	}
	for i, f := range strings.FieldsFunc(s, isSpace) {
		if i > 0 {
			l.space()
		}
		l.word(f, tags)
	}
	if endsWithSpace(s) {
		l.space()
	}
}

// with returns tags extended by a without sharing the backing array.
func with(tags []Annotation, a Annotation) []Annotation {
	return append(slices.Clip(tags), a)
}

func startsWithSpace(s string) bool {
	return strings.TrimLeftFunc(s, isSpace) != s
}

func endsWithSpace(s string) bool {
	return strings.TrimRightFunc(s, isSpace) != s
}

// isSpace reports HTML whitespace. Non-breaking spaces are not included and
// stay inside words.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
