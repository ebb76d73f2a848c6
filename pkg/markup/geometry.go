package markup

// Size is a width and height in terminal cells.
type Size struct {
	Width  int
	Height int
}

// StackVertical returns the size of s with o placed below it.
func (s Size) StackVertical(o Size) Size {
	return Size{
		Width:  max(s.Width, o.Width),
		Height: s.Height + o.Height,
	}
}

// Point is a cell position; X is the column and Y the row.
type Point struct {
	X, Y int
}

// Rect is a rectangular screen region.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
