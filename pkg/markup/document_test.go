package markup

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPushLinePositions(t *testing.T) {
	doc := NewDocument(Size{Width: 80, Height: 24})
	doc.PushLine(
		Plain("see "),
		LinkTo("docs", lipgloss.NewStyle().Underline(true), "https://example.com/docs"),
		Plain(" or "),
		LinkTo("the faq", lipgloss.NewStyle(), "/faq"),
	)
	doc.PushLine()
	doc.PushLine(Plain("end"), LinkTo("x", lipgloss.NewStyle(), "x"))

	links := doc.Links()
	want := []Link{
		{Position: Point{X: 4, Y: 0}, Width: 4, Target: "https://example.com/docs"},
		{Position: Point{X: 12, Y: 0}, Width: 7, Target: "/faq"},
		{Position: Point{X: 3, Y: 2}, Width: 1, Target: "x"},
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links, want %d", len(links), len(want))
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, links[i], want[i])
		}
	}

	if got := doc.Size(); got != (Size{Width: 19, Height: 3}) {
		t.Errorf("Size() = %+v, want {19 3}", got)
	}
	if got := doc.Constraint(); got != (Size{Width: 80, Height: 24}) {
		t.Errorf("Constraint() = %+v, want {80 24}", got)
	}
}

func TestPushLineLinkIndexes(t *testing.T) {
	doc := NewDocument(Size{Width: 40})
	lines := [][]Element{
		{LinkTo("a", lipgloss.NewStyle(), "a"), Plain(" "), LinkTo("b", lipgloss.NewStyle(), "b")},
		{Plain("no links here")},
		{LinkTo("c", lipgloss.NewStyle(), "c")},
	}
	wantLinks := 0
	for _, l := range lines {
		for _, e := range l {
			if _, ok := e.Target(); ok {
				wantLinks++
			}
		}
		doc.PushLine(l...)
	}

	if got := doc.LinkHandler().Len(); got != wantLinks {
		t.Fatalf("Len() = %d, want %d", got, wantLinks)
	}

	next := 0
	for y, line := range doc.Lines() {
		for _, s := range line {
			idx, ok := s.LinkIndex()
			if !ok {
				continue
			}
			if idx != next {
				t.Errorf("row %d span %q: link index %d, want %d", y, s.Text, idx, next)
			}
			if target := doc.Links()[idx].Target; target != s.Text {
				t.Errorf("span %q points to link %q", s.Text, target)
			}
			next++
		}
	}
}

func TestPushLineWideCharacters(t *testing.T) {
	doc := NewDocument(Size{Width: 20})
	doc.PushLine(Plain("日本"), LinkTo("語", lipgloss.NewStyle(), "ja"))

	links := doc.Links()
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].Position.X != 4 || links[0].Width != 2 {
		t.Errorf("link = %+v, want X=4 Width=2", links[0])
	}
	if got := doc.Size().Width; got != 6 {
		t.Errorf("width = %d, want 6", got)
	}
}

func TestPushLineIgnoresEscapeSequences(t *testing.T) {
	doc := NewDocument(Size{Width: 20})
	doc.PushLine(Plain("\x1b[1mbold\x1b[0m"), LinkTo("x", lipgloss.NewStyle(), "x"))

	if got := doc.Links()[0].Position.X; got != 4 {
		t.Errorf("link X = %d, want 4", got)
	}
	if got := doc.PlainText(); got != "boldx" {
		t.Errorf("PlainText() = %q, want %q", got, "boldx")
	}
}

func TestSetWidthFunc(t *testing.T) {
	doc := NewDocument(Size{Width: 20})
	doc.SetWidthFunc(func(s string) int { return 2 * len(s) })
	doc.PushLine(Plain("ab"), LinkTo("c", lipgloss.NewStyle(), "c"))

	l := doc.Links()[0]
	if l.Position.X != 4 || l.Width != 2 {
		t.Errorf("link = %+v, want X=4 Width=2", l)
	}

	doc.SetWidthFunc(nil)
	doc.PushLine(Plain("abc"))
	if got := doc.Size().Width; got != 6 {
		t.Errorf("width = %d, want 6 (nil width func must be ignored)", got)
	}
}

func TestSizeStackVertical(t *testing.T) {
	tests := []struct {
		a, b, want Size
	}{
		{Size{}, Size{Width: 3, Height: 1}, Size{Width: 3, Height: 1}},
		{Size{Width: 5, Height: 2}, Size{Width: 3, Height: 1}, Size{Width: 5, Height: 3}},
		{Size{Width: 5, Height: 2}, Size{Width: 9, Height: 1}, Size{Width: 9, Height: 3}},
	}
	for _, tt := range tests {
		if got := tt.a.StackVertical(tt.b); got != tt.want {
			t.Errorf("%+v.StackVertical(%+v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewElement(t *testing.T) {
	target := "https://example.com"
	e := NewElement("x", lipgloss.NewStyle(), &target)
	if got, ok := e.Target(); !ok || got != target {
		t.Errorf("Target() = %q, %v; want %q, true", got, ok, target)
	}

	e = NewElement("x", lipgloss.NewStyle(), nil)
	if _, ok := e.Target(); ok {
		t.Error("element without target reports a link")
	}

	empty := ""
	e = NewElement("x", lipgloss.NewStyle(), &empty)
	if _, ok := e.Target(); !ok {
		t.Error("empty target must still be a link")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},
		{29, 19, true},
		{9, 10, false},
		{30, 10, false},
		{10, 20, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Rect(%+v).Contains(%d, %d) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}

	if !(Rect{}).Empty() {
		t.Error("zero rect should be empty")
	}
}
