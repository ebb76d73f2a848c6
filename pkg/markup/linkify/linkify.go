// Package linkify finds URLs in rendered terminal text and turns them into
// link elements.
package linkify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markview/pkg/markup"
)

var urlPattern = regexp.MustCompile(`(?i)\b(?:(?:https?|ftp|gopher|gemini|file)://|mailto:|www\.)[^\s<>"'` + "`" + `]+`)

// trailing punctuation that usually ends a sentence rather than a URL
const trailing = ".,;:!?'\""

// Match is a URL found in a line. Start and End are cell columns of the
// visible text, End exclusive.
type Match struct {
	Start, End int
	Text       string // As it appears on screen
	URL        string // Link target
}

// Find returns the URLs in line. Escape sequences are ignored.
func Find(line string) []Match {
	plain := ansi.Strip(line)
	locs := urlPattern.FindAllStringIndex(plain, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		text := trimURL(plain[loc[0]:loc[1]])
		if text == "" {
			continue
		}
		start := ansi.StringWidth(plain[:loc[0]])
		matches = append(matches, Match{
			Start: start,
			End:   start + ansi.StringWidth(text),
			Text:  text,
			URL:   normalize(text),
		})
	}
	return matches
}

// Elements splits line into elements, turning every URL into a link with
// the given style. Text outside links keeps its escape sequences.
func Elements(line string, linkStyle lipgloss.Style) []markup.Element {
	matches := Find(line)
	if len(matches) == 0 {
		return []markup.Element{markup.Plain(line)}
	}

	var out []markup.Element
	col := 0
	for _, m := range matches {
		if m.Start > col {
			out = append(out, markup.Plain(ansi.Cut(line, col, m.Start)))
		}
		out = append(out, markup.LinkTo(m.Text, linkStyle, m.URL))
		col = m.End
	}
	if w := ansi.StringWidth(line); w > col {
		out = append(out, markup.Plain(ansi.Cut(line, col, w)))
	}
	return out
}

// Split breaks elements into lines no wider than width. An element crossing
// the end of a line is cut, and both parts keep its link target.
func Split(elems []markup.Element, width int) [][]markup.Element {
	width = max(1, width)

	var (
		lines [][]markup.Element
		cur   []markup.Element
		curW  int
	)
	for _, e := range elems {
		text := e.Text
		for text != "" {
			w := ansi.StringWidth(text)
			if curW+w <= width {
				cur = append(cur, withText(e, text))
				curW += w
				break
			}
			if curW >= width {
				lines, cur, curW = append(lines, cur), nil, 0
				continue
			}

			head := ansi.Cut(text, 0, width-curW)
			var tail string
			switch {
			case head != "":
				tail = ansi.Cut(text, ansi.StringWidth(head), w)
			case curW > 0:
				// A wide character at the line end goes to the next line.
				lines, cur, curW = append(lines, cur), nil, 0
				continue
			default:
				_, size := utf8.DecodeRuneInString(text)
				head, tail = text[:size], text[size:]
			}
			cur = append(cur, withText(e, head))
			lines, cur, curW = append(lines, cur), nil, 0
			text = tail
		}
	}
	return append(lines, cur)
}

func withText(e markup.Element, text string) markup.Element {
	if target, ok := e.Target(); ok {
		return markup.NewElement(text, e.Style, &target)
	}
	return markup.NewElement(text, e.Style, nil)
}

func trimURL(s string) string {
	for s != "" {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte(trailing, last) >= 0:
			s = s[:len(s)-1]
		case last == ')' && strings.Count(s, "(") < strings.Count(s, ")"):
			s = s[:len(s)-1]
		case last == ']' && strings.Count(s, "[") < strings.Count(s, "]"):
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}

func normalize(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		return "https://" + s
	}
	return s
}
