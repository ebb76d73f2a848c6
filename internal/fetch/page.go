package fetch

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/marcus/markview/pkg/markup/html"
	"github.com/marcus/markview/pkg/markup/markdown"
)

// ErrUnsupportedContent is returned when a page has a content type that no
// renderer handles.
var ErrUnsupportedContent = errors.New("unsupported content type")

// Kind is the markup language of a page.
type Kind int

const (
	KindHTML Kind = iota
	KindMarkdown
	KindPlain
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindMarkdown:
		return "markdown"
	case KindPlain:
		return "plain"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Page is a fetched document.
type Page struct {
	URL         *url.URL // Final location, after redirects
	ContentType string   // Media type without parameters
	Body        []byte
	Title       string
}

// Kind classifies the page by content type. Markdown served as plain text
// is recognised by its extension.
func (p *Page) Kind() (Kind, error) {
	switch p.ContentType {
	case "text/html", "application/xhtml+xml":
		return KindHTML, nil
	case "text/markdown", "text/x-markdown":
		return KindMarkdown, nil
	case "text/plain":
		if p.URL != nil {
			switch strings.ToLower(path.Ext(p.URL.Path)) {
			case ".md", ".markdown":
				return KindMarkdown, nil
			}
		}
		return KindPlain, nil
	}
	return 0, &UnsupportedError{ContentType: p.ContentType}
}

// UnsupportedError reports a content type without a renderer.
type UnsupportedError struct {
	ContentType string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedContent
}

func title(p *Page) string {
	var t string
	k, err := p.Kind()
	switch {
	case err != nil:
	case k == KindHTML:
		if root, err := xhtml.Parse(bytes.NewReader(p.Body)); err == nil {
			t = html.Title(root)
		}
	case k == KindMarkdown:
		t = markdown.Title(string(p.Body))
	}
	if t == "" && p.URL != nil {
		t = p.URL.String()
	}
	return t
}
