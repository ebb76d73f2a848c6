package html

import "github.com/charmbracelet/lipgloss"

// AnnotationKind classifies inline markup.
type AnnotationKind int

const (
	Default AnnotationKind = iota
	Link
	Image
	Emphasis
	Strong
	Strikeout
	Code
	Preformat
)

// Annotation describes the inline markup that applies to a piece of text.
type Annotation struct {
	Kind   AnnotationKind
	Target string // Link destination, for Link annotations
	Anchor int    // Ordinal of the enclosing <a> element
}

// Converter turns annotations into terminal styles and link targets.
type Converter interface {
	// Style returns the style for the annotation, if it has one.
	Style(a Annotation) (lipgloss.Style, bool)
	// Link returns the link target for the annotation, if it is a link.
	Link(a Annotation) (string, bool)
}

// RichConverter underlines links, maps emphasis, strong and strikeout to
// italic, bold and strikethrough, and colors inline code.
type RichConverter struct {
	CodeColor lipgloss.TerminalColor
}

// DefaultCodeColor is the color RichConverter uses for code when CodeColor
// is nil.
var DefaultCodeColor = lipgloss.Color("45")

func (c RichConverter) Style(a Annotation) (lipgloss.Style, bool) {
	s := lipgloss.NewStyle()
	switch a.Kind {
	case Link:
		return s.Underline(true), true
	case Emphasis:
		return s.Italic(true), true
	case Strong:
		return s.Bold(true), true
	case Strikeout:
		return s.Strikethrough(true), true
	case Code:
		color := c.CodeColor
		if color == nil {
			color = DefaultCodeColor
		}
		return s.Foreground(color), true
	default:
		return s, false
	}
}

func (RichConverter) Link(a Annotation) (string, bool) {
	if a.Kind != Link {
		return "", false
	}
	return a.Target, true
}

// mergeStyles combines styles; later styles win where both set a property.
func mergeStyles(styles []lipgloss.Style) lipgloss.Style {
	merged := lipgloss.NewStyle()
	for _, s := range styles {
		merged = s.Inherit(merged)
	}
	return merged
}
