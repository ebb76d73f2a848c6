package markup

import "github.com/charmbracelet/lipgloss"

// Renderer produces a document for a size constraint. View calls Render
// every time the available width changes.
type Renderer interface {
	Render(constraint Size) *Document
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(constraint Size) *Document

// Render calls f(constraint).
func (f RendererFunc) Render(constraint Size) *Document {
	return f(constraint)
}

// LinkCallback is called with the host state and the target of a link.
type LinkCallback[H any] func(host H, target string)

// Printer is the drawing surface a View draws onto.
type Printer interface {
	Print(x, y int, text string, style lipgloss.Style)
}

// Fragment is a span prepared for drawing.
type Fragment struct {
	Text    string
	Style   lipgloss.Style
	Focused bool // Part of the focused link
}

// DefaultHighlight is merged over the style of the focused link.
var DefaultHighlight = lipgloss.NewStyle().Reverse(true)

// View displays a rendered document and lets the user move between its links.
//
// The document is cached until the width passed to Layout (or RequiredSize)
// changes. H is the type of the host state handed to link callbacks.
//
// A View is not safe for concurrent use.
type View[H any] struct {
	renderer     Renderer
	doc          *Document
	onLinkFocus  LinkCallback[H]
	onLinkSelect LinkCallback[H]
	maxWidth     int
	hasMaxWidth  bool
	highlight    lipgloss.Style
}

// NewView creates a view that renders with r.
func NewView[H any](r Renderer) *View[H] {
	return &View[H]{
		renderer:  r,
		highlight: DefaultHighlight,
	}
}

// OnLinkFocus sets the callback run when focus moves to another link with a
// directional event. It is not run when the view takes focus.
func (v *View[H]) OnLinkFocus(f LinkCallback[H]) {
	v.onLinkFocus = f
}

// OnLinkSelect sets the callback run when the focused link is activated.
func (v *View[H]) OnLinkSelect(f LinkCallback[H]) {
	v.onLinkSelect = f
}

// SetMaximumWidth limits the width offered to the renderer.
func (v *View[H]) SetMaximumWidth(width int) {
	v.maxWidth = width
	v.hasMaxWidth = true
}

// SetHighlightStyle sets the style merged over the focused link.
func (v *View[H]) SetHighlightStyle(s lipgloss.Style) {
	v.highlight = s
}

// Document returns the cached document, or nil before the first layout.
func (v *View[H]) Document() *Document {
	return v.doc
}

// Layout renders the document for the constraint unless the cached one was
// rendered for the same width.
func (v *View[H]) Layout(constraint Size) {
	v.render(constraint)
}

// RequiredSize returns the size of the document rendered for the constraint.
func (v *View[H]) RequiredSize(constraint Size) Size {
	return v.render(constraint)
}

func (v *View[H]) render(constraint Size) Size {
	if v.hasMaxWidth {
		constraint.Width = min(constraint.Width, v.maxWidth)
	}

	lastFocus := 0
	if v.doc != nil {
		if v.doc.constraint.Width == constraint.Width {
			return v.doc.size
		}
		lastFocus = v.doc.links.focus
	}

	doc := v.renderer.Render(constraint)
	if doc == nil {
		doc = NewDocument(constraint)
	}

	// Re-rendering can split or join links, so the old index may now point at
	// a different link. It is kept anyway as long as it is in range.
	doc.links.SetFocus(lastFocus)

	v.doc = doc
	return doc.size
}

// TakeFocus is called when the host focuses the view. It returns false if
// there is nothing to focus.
func (v *View[H]) TakeFocus(d Direction) bool {
	if v.doc == nil {
		return false
	}
	return v.doc.links.TakeFocus(d)
}

// OnEvent handles a navigation or activation event. Callbacks run
// synchronously with host before OnEvent returns.
func (v *View[H]) OnEvent(host H, e Event) EventResult {
	if v.doc == nil || v.doc.links.Len() == 0 {
		return Ignored
	}
	links := &v.doc.links

	if links.MoveFocus(e.direction()) {
		if v.onLinkFocus != nil {
			l, _ := links.Focused()
			v.onLinkFocus(host, l.Target)
		}
		return Consumed
	}

	if e == EventActivate {
		if v.onLinkSelect != nil {
			l, _ := links.Focused()
			v.onLinkSelect(host, l.Target)
		}
		return Consumed
	}

	return Ignored
}

// ImportantArea returns the region of the focused link, so the host can
// scroll it into view.
func (v *View[H]) ImportantArea() Rect {
	if v.doc == nil {
		return Rect{}
	}
	return v.doc.links.ImportantArea()
}

// DrawLines returns the fragments of every line. When focused is true the
// spans of the focused link are marked and carry the highlight style.
//
// It panics if called before Layout or RequiredSize.
func (v *View[H]) DrawLines(focused bool) [][]Fragment {
	doc := v.mustDocument()
	out := make([][]Fragment, len(doc.lines))
	for y, line := range doc.lines {
		frags := make([]Fragment, len(line))
		for i, s := range line {
			f := Fragment{Text: s.Text, Style: s.Style}
			if idx, ok := s.LinkIndex(); ok && focused && idx == doc.links.focus {
				f.Focused = true
				f.Style = v.highlight.Inherit(s.Style)
			}
			frags[i] = f
		}
		out[y] = frags
	}
	return out
}

// Draw prints the document onto p.
//
// It panics if called before Layout or RequiredSize.
func (v *View[H]) Draw(p Printer, focused bool) {
	doc := v.mustDocument()
	for y, line := range v.DrawLines(focused) {
		x := 0
		for _, f := range line {
			p.Print(x, y, f.Text, f.Style)
			x += doc.width(f.Text)
		}
	}
}

func (v *View[H]) mustDocument() *Document {
	if v.doc == nil {
		panic("markup: draw called before layout")
	}
	return v.doc
}
