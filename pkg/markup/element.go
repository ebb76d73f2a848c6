package markup

import "github.com/charmbracelet/lipgloss"

// DefaultLinkStyle is used by renderers for link text unless configured
// otherwise.
var DefaultLinkStyle = lipgloss.NewStyle().Underline(true)

// Element is a piece of renderer output: a styled string with an optional
// link target. Elements are consumed by Document.PushLine.
type Element struct {
	Text  string
	Style lipgloss.Style

	target  string
	hasLink bool
}

// NewElement creates an element. A nil target means the element is not a link.
func NewElement(text string, style lipgloss.Style, target *string) Element {
	e := Element{Text: text, Style: style}
	if target != nil {
		e.target = *target
		e.hasLink = true
	}
	return e
}

// Plain creates an unstyled element without a link target.
func Plain(text string) Element {
	return Element{Text: text, Style: lipgloss.NewStyle()}
}

// Styled creates a styled element without a link target.
func Styled(text string, style lipgloss.Style) Element {
	return Element{Text: text, Style: style}
}

// LinkTo creates a styled element that links to target.
func LinkTo(text string, style lipgloss.Style, target string) Element {
	return Element{Text: text, Style: style, target: target, hasLink: true}
}

// Target returns the link target, if the element has one.
func (e Element) Target() (string, bool) {
	return e.target, e.hasLink
}

// Span is an element after it has been placed in a document. Link targets
// are replaced by an index into the document's links.
type Span struct {
	Text  string
	Style lipgloss.Style

	link int // -1 when the span is not a link
}

// LinkIndex returns the index of the span's link in the owning document.
func (s Span) LinkIndex() (int, bool) {
	return s.link, s.link >= 0
}

// Link is a registered hyperlink.
type Link struct {
	Position Point // Start cell
	Width    int   // Width in cells
	Target   string
}

// Area returns the screen region covered by the link.
func (l Link) Area() Rect {
	return Rect{X: l.Position.X, Y: l.Position.Y, W: l.Width, H: 1}
}
