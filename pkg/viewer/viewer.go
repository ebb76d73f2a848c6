// Package viewer is a bubbletea component that displays a markup document
// in a scrolling viewport and lets the user move between its links with the
// keyboard.
//
//	m := viewer.New(html.New(src),
//	    viewer.WithMaximumWidth(120),
//	    viewer.OnLinkSelect(func(h *viewer.Host, target string) {
//	        h.Send(open(target))
//	    }),
//	)
//	m.Focus(markup.Rel(markup.Front))
package viewer

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/markview/pkg/markup"
)

// Host is handed to link callbacks. Callbacks may set a status message and
// queue commands; queued commands are returned from Update.
type Host struct {
	Status string

	cmds []tea.Cmd
}

// Send queues a command to run after the current update.
func (h *Host) Send(cmd tea.Cmd) {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
}

// Callback is called with the target of a focused or selected link.
type Callback = markup.LinkCallback[*Host]

// Option configures a Model.
type Option func(*Model)

// WithMaximumWidth caps the width the document is rendered at. Values below
// one leave the width uncapped.
func WithMaximumWidth(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.view.SetMaximumWidth(n)
		}
	}
}

// WithHighlight sets the style merged over the focused link.
func WithHighlight(s lipgloss.Style) Option {
	return func(m *Model) { m.view.SetHighlightStyle(s) }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// OnLinkFocus registers a callback for when a link receives focus.
func OnLinkFocus(f Callback) Option {
	return func(m *Model) { m.view.OnLinkFocus(f) }
}

// OnLinkSelect registers a callback for when a link is activated.
func OnLinkSelect(f Callback) Option {
	return func(m *Model) { m.view.OnLinkSelect(f) }
}

// Model is the viewer component.
type Model struct {
	view     *markup.View[*Host]
	viewport viewport.Model
	keys     KeyMap
	focused  bool
	laidOut  bool
	status   string
	pending  *Host
}

// New creates a viewer for the document produced by r. Nothing is rendered
// until the first SetSize or tea.WindowSizeMsg.
func New(r markup.Renderer, opts ...Option) Model {
	m := Model{
		view:     markup.NewView[*Host](r),
		viewport: viewport.New(0, 0),
		keys:     DefaultKeyMap(),
	}
	m.view.SetHighlightStyle(Highlight)
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if !m.focused || !m.laidOut {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if !m.dispatch(markup.EventUp) {
			m.viewport.LineUp(1)
		}
	case key.Matches(msg, m.keys.Down):
		if !m.dispatch(markup.EventDown) {
			m.viewport.LineDown(1)
		}
	case key.Matches(msg, m.keys.Left):
		m.dispatch(markup.EventLeft)
	case key.Matches(msg, m.keys.Right):
		m.dispatch(markup.EventRight)
	case key.Matches(msg, m.keys.Activate):
		m.dispatch(markup.EventActivate)
	case key.Matches(msg, m.keys.First):
		if m.view.TakeFocus(markup.Rel(markup.Front)) {
			m.afterFocusChange()
		}
	case key.Matches(msg, m.keys.Last):
		if m.view.TakeFocus(markup.Rel(markup.Back)) {
			m.afterFocusChange()
		}
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	default:
		return m, nil
	}
	return m, m.flush()
}

// dispatch forwards an event to the view and reports whether it was
// consumed.
func (m *Model) dispatch(e markup.Event) bool {
	if m.view.OnEvent(m.host(), e) != markup.Consumed {
		return false
	}
	m.afterFocusChange()
	return true
}

func (m *Model) afterFocusChange() {
	m.refresh()
	m.scrollToFocus()
}

// host returns a fresh Host for one round of callbacks.
func (m *Model) host() *Host {
	m.pending = &Host{Status: m.status}
	return m.pending
}

// flush collects the status and commands left by callbacks.
func (m *Model) flush() tea.Cmd {
	h := m.pending
	m.pending = nil
	if h == nil {
		return nil
	}
	m.status = h.Status
	return tea.Batch(h.cmds...)
}

// scrollToFocus moves the viewport so the focused link is visible.
func (m *Model) scrollToFocus() {
	if !m.laidOut || m.view.Document().LinkHandler().Len() == 0 {
		return
	}
	area := m.view.ImportantArea()
	offset := m.viewport.YOffset
	if area.Y < offset {
		offset = area.Y
	} else if bottom := area.Y + area.H; bottom > offset+m.viewport.Height {
		offset = bottom - m.viewport.Height
	}
	m.viewport.SetYOffset(max(0, offset))
}

// SetSize lays the document out for the given size. The document is only
// rendered again when the width changes. If that moves the focused link, or
// the height shrinks, the viewport follows the focus.
func (m *Model) SetSize(width, height int) {
	before := m.view.Document()
	m.view.Layout(markup.Size{Width: max(0, width), Height: max(0, height)})
	shrunk := height < m.viewport.Height
	m.viewport.Width = width
	m.viewport.Height = height
	m.laidOut = true
	m.refresh()
	if m.focused && (m.view.Document() != before || shrunk) {
		m.scrollToFocus()
	}
}

// refresh redraws the document into the viewport.
func (m *Model) refresh() {
	if !m.laidOut {
		return
	}
	c := newCanvas(m.view.Document().Size().Height)
	m.view.Draw(c, m.focused)
	m.viewport.SetContent(c.String())
}

// Focus gives keyboard focus to the viewer. The focused link is chosen by
// the direction focus comes from. It reports whether the document has a
// link to focus.
func (m *Model) Focus(d markup.Direction) bool {
	m.focused = true
	took := m.view.TakeFocus(d)
	if took {
		m.afterFocusChange()
	} else {
		m.refresh()
	}
	return took
}

// Blur removes keyboard focus. The focused link is no longer highlighted.
func (m *Model) Blur() {
	m.focused = false
	m.refresh()
}

// Focused reports whether the viewer has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// Status returns the status message last set by a link callback.
func (m Model) Status() string {
	return m.status
}

// SetStatus replaces the status message.
func (m *Model) SetStatus(s string) {
	m.status = s
}

// FocusedTarget returns the target of the focused link.
func (m Model) FocusedTarget() (string, bool) {
	doc := m.view.Document()
	if doc == nil {
		return "", false
	}
	l, ok := doc.LinkHandler().Focused()
	return l.Target, ok
}

// KeyMap returns the active key bindings.
func (m Model) KeyMap() KeyMap {
	return m.keys
}

// YOffset returns the index of the first visible line.
func (m Model) YOffset() int {
	return m.viewport.YOffset
}

// View renders the visible part of the document.
func (m Model) View() string {
	if !m.laidOut {
		return ""
	}
	return m.viewport.View()
}
