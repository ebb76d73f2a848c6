package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markview/pkg/markup"
)

const sample = `# Markview

Read the docs at https://example.com/docs before you start.

Second paragraph with a link to https://go.dev/doc.
`

func TestRenderFindsLinks(t *testing.T) {
	r := New(sample, WithStyle("notty"))
	doc := r.Render(markup.Size{Width: 80, Height: 24})

	var targets []string
	for _, l := range doc.Links() {
		targets = append(targets, l.Target)
	}
	got := strings.Join(targets, " ")
	if !strings.Contains(got, "https://example.com/docs") || !strings.Contains(got, "https://go.dev/doc") {
		t.Errorf("link targets = %q", got)
	}

	// The first link must come before the second, and on an earlier row.
	links := doc.Links()
	if len(links) < 2 {
		t.Fatalf("got %d links", len(links))
	}
	if links[0].Position.Y >= links[len(links)-1].Position.Y {
		t.Errorf("links not in row order: %+v", links)
	}
}

func TestRenderLinkPositionsMatchText(t *testing.T) {
	doc := New(sample, WithStyle("notty")).Render(markup.Size{Width: 80})
	lines := strings.Split(doc.PlainText(), "\n")
	for _, l := range doc.Links() {
		line := lines[l.Position.Y]
		got := ansi.Cut(line, l.Position.X, l.Position.X+l.Width)
		if got != l.Target {
			t.Errorf("text at %+v = %q, want %q", l.Position, got, l.Target)
		}
	}
}

func TestRenderNoLeadingBlankLines(t *testing.T) {
	doc := New(sample, WithStyle("notty")).Render(markup.Size{Width: 80})
	lines := strings.Split(doc.PlainText(), "\n")
	if strings.TrimSpace(lines[0]) == "" {
		t.Error("first line is blank")
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		t.Error("last line is blank")
	}
}

func TestRenderRespectsWidth(t *testing.T) {
	long := strings.Repeat("word ", 60)
	doc := New(long, WithStyle("notty")).Render(markup.Size{Width: 30})
	if doc.Size().Height < 2 {
		t.Errorf("height = %d, text was not wrapped", doc.Size().Height)
	}
	if doc.Constraint().Width != 30 {
		t.Errorf("constraint width = %d, want 30", doc.Constraint().Width)
	}
	if w := doc.Size().Width; w > 30 {
		t.Errorf("width = %d, want at most 30", w)
	}
}

func TestRenderSplitsLongWords(t *testing.T) {
	const url = "https://example.com/a/rather/long/path/to/a/document.md"
	doc := New("Read "+url+" first.", WithStyle("notty")).Render(markup.Size{Width: 20})

	if w := doc.Size().Width; w > 20 {
		t.Errorf("width = %d, want at most 20", w)
	}
	links := doc.Links()
	if len(links) < 2 {
		t.Fatalf("got %d links, want the URL split over several lines", len(links))
	}
	for _, l := range links {
		if l.Target != url {
			t.Errorf("link %+v, want target %q", l, url)
		}
	}
}

func TestRenderResolvesRelativeLinks(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"https", "https://example.com/docs/readme.md", "https://example.com/docs/next.md"},
		{"file", "file:///home/me/docs/readme.md", "file:///home/me/docs/next.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "See [next page](next.md) and [site](https://example.com/a)."
			doc := New(src, WithStyle("notty"), WithBaseURL(tt.base)).Render(markup.Size{Width: 100})

			var targets []string
			for _, l := range doc.Links() {
				targets = append(targets, l.Target)
			}
			if len(targets) != 2 || targets[0] != tt.want || targets[1] != "https://example.com/a" {
				t.Errorf("link targets = %q, want [%s https://example.com/a]", targets, tt.want)
			}
		})
	}
}

func TestRenderFallsBackOnUnknownStyle(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	doc := New("hello https://example.com", WithStyle("no-such-style"), WithLogger(logger)).
		Render(markup.Size{Width: 80})

	if got := doc.PlainText(); got != "hello https://example.com" {
		t.Errorf("PlainText() = %q", got)
	}
	if len(doc.Links()) != 1 {
		t.Errorf("got %d links, want 1", len(doc.Links()))
	}
	if !strings.Contains(buf.String(), "markdown render failed") {
		t.Errorf("fallback not logged: %q", buf.String())
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"# Hello\n\ntext", "Hello"},
		{"intro\n\n  # Indented  \n", "Indented"},
		{"## Only h2", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Title(tt.source); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
