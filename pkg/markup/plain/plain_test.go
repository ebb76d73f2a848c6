package plain

import (
	"strings"
	"testing"

	"github.com/marcus/markview/pkg/markup"
)

func TestRenderWraps(t *testing.T) {
	r := New("one two three four\n\nfive")
	doc := r.Render(markup.Size{Width: 9, Height: 10})

	want := "one two\nthree\nfour\n\nfive"
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText() =\n%s\nwant\n%s", got, want)
	}
	if doc.Size().Width > 9 {
		t.Errorf("width = %d, exceeds constraint", doc.Size().Width)
	}
}

func TestRenderLinks(t *testing.T) {
	r := New("docs at https://example.com/docs\nand www.go.dev")
	doc := r.Render(markup.Size{Width: 80})

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].Target != "https://example.com/docs" || links[0].Position != (markup.Point{X: 8, Y: 0}) {
		t.Errorf("link 0 = %+v", links[0])
	}
	if links[1].Target != "https://www.go.dev" || links[1].Position != (markup.Point{X: 4, Y: 1}) {
		t.Errorf("link 1 = %+v", links[1])
	}
}

func TestRenderMinWidth(t *testing.T) {
	r := New("aaaaaaaaaa", WithMinWidth(5))
	doc := r.Render(markup.Size{Width: 1})
	for _, l := range strings.Split(doc.PlainText(), "\n") {
		if len(l) > 5 {
			t.Errorf("line %q wider than minimum width", l)
		}
	}
	if doc.Size().Height != 2 {
		t.Errorf("height = %d, want 2", doc.Size().Height)
	}
}

func TestRenderExpandsTabs(t *testing.T) {
	doc := New("\tx").Render(markup.Size{Width: 80})
	if got := doc.PlainText(); got != "    x" {
		t.Errorf("PlainText() = %q", got)
	}
}
