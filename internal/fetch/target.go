package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ParseTarget interprets user input as a URL. Absolute URLs are used as is,
// existing paths become file URLs and anything that looks like a host name
// gets an https scheme.
func ParseTarget(s string) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty target")
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		return u, nil
	}

	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[2:])
		}
	}
	if _, err := os.Stat(s); err == nil {
		abs, err := filepath.Abs(s)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", s, err)
		}
		return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
	}

	host, _, _ := strings.Cut(s, "/")
	if strings.Contains(host, ".") && !strings.ContainsAny(s, " \t") {
		u, err := url.Parse("https://" + s)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		return u, nil
	}
	return nil, fmt.Errorf("%q is not a URL or an existing file", s)
}

// Resolve resolves a link target relative to the page it appears on.
func Resolve(base *url.URL, target string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return nil, fmt.Errorf("invalid link %q: %w", target, err)
	}
	if base == nil {
		return ref, nil
	}
	return base.ResolveReference(ref), nil
}
