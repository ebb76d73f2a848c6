package html

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/markview/pkg/markup"
)

func render(t *testing.T, src string, width int) *markup.Document {
	t.Helper()
	return New(src).Render(markup.Size{Width: width, Height: 24})
}

func TestRenderLayout(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		width int
		want  string
	}{
		{
			name:  "paragraphs",
			src:   "<p>Hello <a href=\"/a\">first link</a> world.</p><p>Second</p>",
			width: 80,
			want:  "Hello first link world.\n\nSecond",
		},
		{
			name:  "wraps at width",
			src:   "<p>aaa bbb ccc</p>",
			width: 7,
			want:  "aaa bbb\nccc",
		},
		{
			name:  "minimum width",
			src:   "<p>aaa bbb ccc</p>",
			width: 2,
			want:  "aaa\nbbb\nccc",
		},
		{
			name:  "long word split",
			src:   "<p>abcdefghij</p>",
			width: 5,
			want:  "abcde\nfghij",
		},
		{
			name:  "nested lists",
			src:   "<ul><li>one</li><li>two<ol><li>a</li><li>b</li></ol></li></ul>",
			width: 80,
			want:  "* one\n* two\n  1. a\n  2. b",
		},
		{
			name:  "ordered list start",
			src:   "<ol start=\"3\"><li>c</li><li>d</li></ol>",
			width: 80,
			want:  "3. c\n4. d",
		},
		{
			name:  "blockquote",
			src:   "<blockquote><p>quoted text</p></blockquote><p>after</p>",
			width: 80,
			want:  "> quoted text\n\nafter",
		},
		{
			name:  "preformatted",
			src:   "<pre>line one\n  indented\n</pre>",
			width: 5,
			want:  "line one\n  indented",
		},
		{
			name:  "heading",
			src:   "<h2>Title</h2><p>body</p>",
			width: 80,
			want:  "## Title\n\nbody",
		},
		{
			name:  "line break",
			src:   "<p>a<br>b</p>",
			width: 80,
			want:  "a\nb",
		},
		{
			name:  "skips head and scripts",
			src:   "<head><title>t</title><style>p{}</style></head><body><script>x()</script><p>shown</p></body>",
			width: 80,
			want:  "shown",
		},
		{
			name:  "image alt",
			src:   "<p>see <img alt=\"logo\"> <img></p>",
			width: 80,
			want:  "see [logo] [image]",
		},
		{
			name:  "table rows",
			src:   "<table><tr><th>k</th><th>v</th></tr><tr><td>a</td><td>1</td></tr></table>",
			width: 80,
			want:  "k v\na 1",
		},
		{
			name:  "collapses whitespace",
			src:   "<p>  a \n\t b  </p>",
			width: 80,
			want:  "a b",
		},
		{
			name:  "empty",
			src:   "",
			width: 80,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := render(t, tt.src, tt.width)
			if got := doc.PlainText(); got != tt.want {
				t.Errorf("PlainText() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestRenderLinks(t *testing.T) {
	doc := render(t, "<p>Hello <a href=\"/a\">first link</a> world.</p><p><a href=\"b.html\">b</a></p>", 80)

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	want := markup.Link{Position: markup.Point{X: 6, Y: 0}, Width: 10, Target: "/a"}
	if links[0] != want {
		t.Errorf("link 0 = %+v, want %+v", links[0], want)
	}
	want = markup.Link{Position: markup.Point{X: 0, Y: 2}, Width: 1, Target: "b.html"}
	if links[1] != want {
		t.Errorf("link 1 = %+v, want %+v", links[1], want)
	}
}

func TestRenderLinkSplitAcrossLines(t *testing.T) {
	doc := render(t, "<p><a href=\"x\">one two</a></p>", 5)

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	for i, l := range links {
		if l.Target != "x" || l.Position != (markup.Point{X: 0, Y: i}) || l.Width != 3 {
			t.Errorf("link %d = %+v", i, l)
		}
	}
}

func TestRenderAdjacentAnchorsStayApart(t *testing.T) {
	doc := render(t, "<p><a href=\"/x\">one</a> <a href=\"/x\">two</a></p>", 80)

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(links), links)
	}
	want := []markup.Link{
		{Position: markup.Point{X: 0, Y: 0}, Width: 3, Target: "/x"},
		{Position: markup.Point{X: 4, Y: 0}, Width: 3, Target: "/x"},
	}
	for i, l := range links {
		if l != want[i] {
			t.Errorf("link %d = %+v, want %+v", i, l, want[i])
		}
	}
}

func TestRenderImageLink(t *testing.T) {
	doc := render(t, "<p><a href=\"/i\"><img alt=\"logo\"></a></p>", 80)

	links := doc.Links()
	if len(links) != 1 || links[0].Target != "/i" || links[0].Width != 6 {
		t.Errorf("links = %+v", links)
	}
}

func TestRenderAnchorWithoutHref(t *testing.T) {
	doc := render(t, "<p><a name=\"top\">top</a></p>", 80)
	if n := len(doc.Links()); n != 0 {
		t.Errorf("got %d links, want 0", n)
	}
}

func TestRenderStyles(t *testing.T) {
	doc := render(t, "<p><em>it</em> <strong>b</strong> <s>x</s> <a href=\"l\">u</a></p>", 80)

	spans := map[string]markup.Span{}
	for _, s := range doc.Lines()[0] {
		spans[s.Text] = s
	}
	checks := []struct {
		text string
		get  func(lipgloss.Style) bool
	}{
		{"it", lipgloss.Style.GetItalic},
		{"b", lipgloss.Style.GetBold},
		{"x", lipgloss.Style.GetStrikethrough},
		{"u", lipgloss.Style.GetUnderline},
	}
	for _, c := range checks {
		s, ok := spans[c.text]
		if !ok {
			t.Errorf("no span %q in %+v", c.text, doc.Lines()[0])
			continue
		}
		if !c.get(s.Style) {
			t.Errorf("span %q missing its style", c.text)
		}
	}
	if _, ok := spans["u"].LinkIndex(); !ok {
		t.Error("link span has no link index")
	}
}

func TestRenderHeadingIsBold(t *testing.T) {
	doc := render(t, "<h1>Title</h1>", 80)

	line := doc.Lines()[0]
	last := line[len(line)-1]
	if last.Text != "Title" || !last.Style.GetBold() {
		t.Errorf("heading span = %q bold=%v", last.Text, last.Style.GetBold())
	}
}

func TestRenderReusesParse(t *testing.T) {
	r := New("<p>one two three four five</p>")

	wide := r.Render(markup.Size{Width: 80})
	narrow := r.Render(markup.Size{Width: 9})
	if wide.Size().Height != 1 {
		t.Errorf("wide height = %d, want 1", wide.Size().Height)
	}
	if narrow.Size().Height != 3 {
		t.Errorf("narrow height = %d, want 3", narrow.Size().Height)
	}
	if narrow.Constraint().Width != 9 {
		t.Errorf("constraint = %+v", narrow.Constraint())
	}
}

type noLinks struct{ RichConverter }

func (noLinks) Link(Annotation) (string, bool) { return "", false }

func TestWithConverter(t *testing.T) {
	r := New("<p><a href=\"x\">x</a></p>", WithConverter(noLinks{}))
	doc := r.Render(markup.Size{Width: 80})
	if n := len(doc.Links()); n != 0 {
		t.Errorf("got %d links, want 0", n)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"<title>  My \n  Page </title>", "My Page"},
		{"<p>no title</p>", ""},
	}
	for _, tt := range tests {
		if got := New(tt.src).Title(); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRichConverter(t *testing.T) {
	c := RichConverter{}
	if _, ok := c.Style(Annotation{Kind: Default}); ok {
		t.Error("default annotation should have no style")
	}
	if s, ok := c.Style(Annotation{Kind: Code}); !ok || s.GetForeground() != DefaultCodeColor {
		t.Errorf("code style = %v, %v", s.GetForeground(), ok)
	}
	if target, ok := c.Link(Annotation{Kind: Link, Target: "t"}); !ok || target != "t" {
		t.Errorf("Link() = %q, %v", target, ok)
	}
	if _, ok := c.Link(Annotation{Kind: Strong}); ok {
		t.Error("non-link annotation returned a target")
	}
}
