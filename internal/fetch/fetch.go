// Package fetch loads documents over HTTP or from the local filesystem.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a Fetcher.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	MaxBytes       int64 // Larger bodies are truncated
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "markview/1.0",
		TimeoutSeconds: 30,
		MaxBytes:       8 << 20,
	}
}

// Fetcher retrieves pages.
type Fetcher struct {
	client *http.Client
	opts   Options
	logger *log.Logger
}

// New creates a fetcher. Zero option fields take their default values.
func New(opts Options, logger *log.Logger) *Fetcher {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = def.TimeoutSeconds
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = def.MaxBytes
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		client: &http.Client{Timeout: time.Duration(opts.TimeoutSeconds) * time.Second},
		opts:   opts,
		logger: logger,
	}
}

// Fetch loads the document at u. Supported schemes are http, https and
// file; a URL without a scheme is read as a local path.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (*Page, error) {
	var (
		p   *Page
		err error
	)
	switch u.Scheme {
	case "http", "https":
		p, err = f.fetchHTTP(ctx, u)
	case "file", "":
		p, err = f.fetchFile(u)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	p.Title = title(p)
	return p, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, u *url.URL) (*Page, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html, text/markdown;q=0.9, text/plain;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}

	final := resp.Request.URL
	p := &Page{
		URL:         final,
		ContentType: contentType(resp.Header.Get("Content-Type"), final.Path, body),
		Body:        body,
	}
	f.logger.Debug("fetched", "url", final, "status", resp.StatusCode,
		"type", p.ContentType, "bytes", len(body), "took", time.Since(start))
	return p, nil
}

func (f *Fetcher) fetchFile(u *url.URL) (*Page, error) {
	path := u.Path
	if u.Scheme == "" && u.Opaque != "" {
		path = u.Opaque
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fh, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", abs, err)
	}
	defer fh.Close()

	body, err := io.ReadAll(io.LimitReader(fh, f.opts.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	p := &Page{
		URL:         &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)},
		ContentType: contentType("", abs, body),
		Body:        body,
	}
	f.logger.Debug("read file", "path", abs, "type", p.ContentType, "bytes", len(body))
	return p, nil
}

// contentType returns the media type from a Content-Type header, falling
// back to the file extension and then to content sniffing.
func contentType(header, path string, body []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil {
			return mt
		}
	}
	if mt := typeByExtension(path); mt != "" {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(body))
	return mt
}

func typeByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".txt", ".text":
		return "text/plain"
	case "":
		return ""
	}
	if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil {
		return mt
	}
	return ""
}
