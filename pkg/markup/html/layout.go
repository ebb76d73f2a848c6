package html

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// fragment is a run of text sharing the same annotations.
type fragment struct {
	text string
	tags []Annotation
}

type line []fragment

// margin is a prefix written at the start of every line inside a block,
// such as a list bullet or a quote marker.
type margin struct {
	first string // Used once, on the first line of the block
	rest  string
	used  bool
}

// layout builds wrapped, annotated lines from a stream of words.
type layout struct {
	width   int
	lines   []line
	margins []margin

	cur     line
	curW    int
	started bool

	pendingSpace bool
	pendingBlank bool
}

func newLayout(width int) *layout {
	return &layout{width: width}
}

func (l *layout) pushMargin(first, rest string) {
	l.margins = append(l.margins, margin{first: first, rest: rest})
}

func (l *layout) popMargin() {
	l.margins = l.margins[:len(l.margins)-1]
}

// breakLine ends the current line if anything was written to it.
func (l *layout) breakLine() {
	if l.started {
		l.flush()
	}
	l.pendingSpace = false
}

// newline ends the current line, emitting an empty one if nothing was
// written.
func (l *layout) newline() {
	if !l.started {
		l.startLine()
	}
	l.flush()
	l.pendingSpace = false
}

// paragraph ends the current line and requests a blank line before the next
// content.
func (l *layout) paragraph() {
	l.breakLine()
	if len(l.lines) > 0 {
		l.pendingBlank = true
	}
}

func (l *layout) flush() {
	l.lines = append(l.lines, l.cur)
	l.cur = nil
	l.curW = 0
	l.started = false
}

func (l *layout) startLine() {
	if l.pendingBlank {
		l.pendingBlank = false
		if len(l.lines) > 0 {
			l.lines = append(l.lines, l.blankLine())
		}
	}
	var prefix strings.Builder
	for i := range l.margins {
		m := &l.margins[i]
		if !m.used {
			prefix.WriteString(m.first)
			m.used = true
		} else {
			prefix.WriteString(m.rest)
		}
	}
	l.started = true
	l.cur = nil
	l.curW = 0
	if prefix.Len() > 0 {
		l.append(prefix.String(), nil)
	}
}

// blankLine is an empty line carrying the continuation markers, so quotes
// stay visually connected across paragraphs.
func (l *layout) blankLine() line {
	var b strings.Builder
	for _, m := range l.margins {
		b.WriteString(m.rest)
	}
	s := strings.TrimRight(b.String(), " ")
	if s == "" {
		return nil
	}
	return line{{text: s}}
}

// append adds text to the current line, merging it into the last fragment
// when the annotations match.
func (l *layout) append(text string, tags []Annotation) {
	if text == "" {
		return
	}
	if n := len(l.cur); n > 0 && sameTags(l.cur[n-1].tags, tags) {
		l.cur[n-1].text += text
	} else {
		l.cur = append(l.cur, fragment{text: text, tags: tags})
	}
	l.curW += ansi.StringWidth(text)
}

func (l *layout) contentStarted() bool {
	return l.started && l.curW > l.marginWidth()
}

func (l *layout) marginWidth() int {
	w := 0
	for _, m := range l.margins {
		w += ansi.StringWidth(m.rest)
	}
	return w
}

// space records whitespace between words. It is collapsed and dropped at
// line starts.
func (l *layout) space() {
	l.pendingSpace = true
}

// word places a word, wrapping to a new line when it does not fit. Words
// wider than a whole line are split.
func (l *layout) word(text string, tags []Annotation) {
	if text == "" {
		return
	}
	if !l.started {
		l.startLine()
	}
	w := ansi.StringWidth(text)
	if l.contentStarted() {
		if l.pendingSpace && l.curW+1+w <= l.width {
			l.append(" ", commonTags(l.lastTags(), tags))
			l.append(text, tags)
			l.pendingSpace = false
			return
		}
		if !l.pendingSpace && l.curW+w <= l.width {
			l.append(text, tags)
			return
		}
		l.flush()
		l.startLine()
	}
	l.pendingSpace = false

	for {
		avail := max(1, l.width-l.curW)
		if w <= avail {
			l.append(text, tags)
			return
		}
		head := ansi.Cut(text, 0, avail)
		if head == "" {
			_, size := utf8.DecodeRuneInString(text)
			head = text[:size]
		}
		l.append(head, tags)
		text = text[len(head):]
		w = ansi.StringWidth(text)
		l.flush()
		l.startLine()
	}
}

// raw writes text without wrapping, for preformatted content.
func (l *layout) raw(text string, tags []Annotation) {
	if !l.started {
		l.startLine()
	}
	if l.pendingSpace && l.contentStarted() {
		l.append(" ", commonTags(l.lastTags(), tags))
	}
	l.pendingSpace = false
	l.append(text, tags)
}

// rule draws a horizontal line across the available width.
func (l *layout) rule() {
	l.breakLine()
	l.startLine()
	l.append(strings.Repeat("─", max(1, l.width-l.curW)), nil)
	l.flush()
}

func (l *layout) lastTags() []Annotation {
	if n := len(l.cur); n > 0 {
		return l.cur[n-1].tags
	}
	return nil
}

// finish flushes the pending line and returns the result.
func (l *layout) finish() []line {
	l.breakLine()
	return l.lines
}

func sameTags(a, b []Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// commonTags returns the shared leading annotations of a and b, so a space
// between two words of the same link belongs to that link.
func commonTags(a, b []Annotation) []Annotation {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return b[:n:n]
}
