package markup

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DefaultMinWidth is the narrowest width the bundled renderers lay out for,
// however small the constraint.
const DefaultMinWidth = 5

// WidthFunc returns the display width of a string in terminal cells.
type WidthFunc func(string) int

// Document is rendered hypertext: lines of styled spans plus the links found
// in them. Documents are built once by a Renderer and are not modified
// afterwards, except for the focused link.
type Document struct {
	lines      [][]Span
	links      LinkHandler
	size       Size
	constraint Size
	width      WidthFunc
}

// NewDocument creates an empty document for the given size constraint.
//
// The constraint is what a View compares against to decide whether the
// cached document can be reused. It is not enforced: keeping lines within
// the constraint is the renderer's job.
func NewDocument(constraint Size) *Document {
	return &Document{
		constraint: constraint,
		width:      ansi.StringWidth,
	}
}

// SetWidthFunc replaces the display width function. It must be called before
// the first PushLine.
func (d *Document) SetWidthFunc(fn WidthFunc) {
	if fn != nil {
		d.width = fn
	}
}

// PushLine appends a line. Elements with a link target are registered as
// links at their position in the line.
func (d *Document) PushLine(elements ...Element) {
	y := len(d.lines)
	x := 0
	line := make([]Span, 0, len(elements))
	for _, e := range elements {
		w := d.width(e.Text)
		idx := -1
		if target, ok := e.Target(); ok {
			idx = d.links.Push(Link{
				Position: Point{X: x, Y: y},
				Width:    w,
				Target:   target,
			})
		}
		x += w
		line = append(line, Span{Text: e.Text, Style: e.Style, link: idx})
	}
	d.lines = append(d.lines, line)
	d.size = d.size.StackVertical(Size{Width: x, Height: 1})
}

// Size returns the width of the widest line and the number of lines.
func (d *Document) Size() Size {
	return d.size
}

// Constraint returns the constraint the document was rendered for.
func (d *Document) Constraint() Size {
	return d.constraint
}

// Lines returns the document's lines. Callers must not modify them.
func (d *Document) Lines() [][]Span {
	return d.lines
}

// Links returns the registered links in insertion order.
func (d *Document) Links() []Link {
	return d.links.Links()
}

// LinkHandler returns the document's link navigation state.
func (d *Document) LinkHandler() *LinkHandler {
	return &d.links
}

// PlainText returns the document text without styles, one line per row.
// Escape sequences embedded in span text are stripped.
func (d *Document) PlainText() string {
	var sb strings.Builder
	for i, line := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, s := range line {
			sb.WriteString(ansi.Strip(s.Text))
		}
	}
	return sb.String()
}
