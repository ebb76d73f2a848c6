package markup

// LinkHandler holds the links of a document and the index of the focused one.
// The zero value is an empty handler with focus 0.
type LinkHandler struct {
	links []Link
	focus int
}

// Push appends a link and returns its index.
func (h *LinkHandler) Push(l Link) int {
	h.links = append(h.links, l)
	return len(h.links) - 1
}

// Len returns the number of links.
func (h *LinkHandler) Len() int {
	return len(h.links)
}

// Links returns the links in insertion order. Callers must not modify them.
func (h *LinkHandler) Links() []Link {
	return h.links
}

// Focus returns the focused link index. It is meaningless when Len is 0.
func (h *LinkHandler) Focus() int {
	return h.focus
}

// Focused returns the focused link.
func (h *LinkHandler) Focused() (Link, bool) {
	if len(h.links) == 0 {
		return Link{}, false
	}
	return h.links[h.focus], true
}

// SetFocus focuses the link at idx. It returns false and leaves focus alone
// if idx is out of range.
func (h *LinkHandler) SetFocus(idx int) bool {
	if idx < 0 || idx >= len(h.links) {
		return false
	}
	h.focus = idx
	return true
}

// TakeFocus is called when the host gives keyboard focus to the view. Focus
// goes to the first link when coming from the front and to the last link when
// coming from the back. It returns false if there are no links.
func (h *LinkHandler) TakeFocus(d Direction) bool {
	if len(h.links) == 0 {
		return false
	}
	switch d.Relative() {
	case Back:
		h.focus = len(h.links) - 1
	default:
		h.focus = 0
	}
	return true
}

// MoveFocus moves the focus in the given direction and reports whether it
// changed.
func (h *LinkHandler) MoveFocus(a Absolute) bool {
	switch a {
	case Left:
		return h.moveHorizontal(Front)
	case Right:
		return h.moveHorizontal(Back)
	case Up:
		return h.moveVertical(Front)
	case Down:
		return h.moveVertical(Back)
	default:
		return false
	}
}

// moveHorizontal steps to the neighbouring link if it is on the same row.
func (h *LinkHandler) moveHorizontal(r Relative) bool {
	if len(h.links) == 0 {
		return false
	}

	next := h.focus - 1
	if r == Back {
		next = h.focus + 1
	}
	if next < 0 || next >= len(h.links) {
		return false
	}
	if h.links[next].Position.Y != h.links[h.focus].Position.Y {
		return false
	}
	h.focus = next
	return true
}

// moveVertical scans away from the focused link in insertion order and stops
// at the first link on another row in that direction. The column is ignored:
// on a row with several links, Up lands on the last of them and Down on the
// first.
func (h *LinkHandler) moveVertical(r Relative) bool {
	if len(h.links) == 0 {
		return false
	}

	y := h.links[h.focus].Position.Y
	if r == Front {
		for i := h.focus - 1; i >= 0; i-- {
			if h.links[i].Position.Y < y {
				h.focus = i
				return true
			}
		}
		return false
	}

	for i := h.focus + 1; i < len(h.links); i++ {
		if h.links[i].Position.Y > y {
			h.focus = i
			return true
		}
	}
	return false
}

// ImportantArea returns the region of the focused link, or an empty
// rectangle at the origin if there are no links.
func (h *LinkHandler) ImportantArea() Rect {
	l, ok := h.Focused()
	if !ok {
		return Rect{}
	}
	return l.Area()
}
