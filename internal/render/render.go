// Package render picks the markup renderer for a fetched page.
package render

import (
	"github.com/charmbracelet/log"

	"github.com/marcus/markview/internal/fetch"
	"github.com/marcus/markview/pkg/markup"
	"github.com/marcus/markview/pkg/markup/html"
	"github.com/marcus/markview/pkg/markup/markdown"
	"github.com/marcus/markview/pkg/markup/plain"
)

// Options configures the renderers.
type Options struct {
	MinWidth      int
	MarkdownStyle string
	Logger        *log.Logger
}

// New returns a renderer for p based on its content type. Pages with an
// unsupported type yield an error matching fetch.ErrUnsupportedContent.
func New(p *fetch.Page, opts Options) (markup.Renderer, error) {
	kind, err := p.Kind()
	if err != nil {
		return nil, err
	}

	src := string(p.Body)
	switch kind {
	case fetch.KindHTML:
		return html.New(src, html.WithMinWidth(opts.MinWidth)), nil
	case fetch.KindMarkdown:
		mdOpts := []markdown.Option{markdown.WithMinWidth(opts.MinWidth)}
		if p.URL != nil {
			mdOpts = append(mdOpts, markdown.WithBaseURL(p.URL.String()))
		}
		if opts.MarkdownStyle != "" {
			mdOpts = append(mdOpts, markdown.WithStyle(opts.MarkdownStyle))
		}
		if opts.Logger != nil {
			mdOpts = append(mdOpts, markdown.WithLogger(opts.Logger))
		}
		return markdown.New(src, mdOpts...), nil
	default:
		return plain.New(src, plain.WithMinWidth(opts.MinWidth)), nil
	}
}
