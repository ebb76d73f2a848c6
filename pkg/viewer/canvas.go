package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a markup.Printer that collects styled text into lines.
type canvas struct {
	lines  []string
	widths []int
}

func newCanvas(height int) *canvas {
	return &canvas{lines: make([]string, height), widths: make([]int, height)}
}

func (c *canvas) Print(x, y int, text string, style lipgloss.Style) {
	for len(c.lines) <= y {
		c.lines = append(c.lines, "")
		c.widths = append(c.widths, 0)
	}
	if pad := x - c.widths[y]; pad > 0 {
		c.lines[y] += strings.Repeat(" ", pad)
		c.widths[y] += pad
	}
	c.lines[y] += style.Render(text)
	c.widths[y] += ansi.StringWidth(text)
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
