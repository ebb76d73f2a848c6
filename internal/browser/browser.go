// Package browser is the interactive markview shell: a stack of pages shown
// in viewers, with link following, a URL prompt and an error dialog.
package browser

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/markview/internal/fetch"
	"github.com/marcus/markview/internal/render"
	"github.com/marcus/markview/pkg/markup"
	"github.com/marcus/markview/pkg/viewer"
)

// chromeHeight is the number of rows used by the title, status and help
// lines.
const chromeHeight = 3

// Recorder stores visited pages.
type Recorder interface {
	Record(ctx context.Context, url, title string) error
}

// Options configures the browser.
type Options struct {
	Fetcher  *fetch.Fetcher
	History  Recorder // Optional
	Render   render.Options
	MaxWidth int
	Logger   *log.Logger
}

type page struct {
	url   *url.URL
	title string
	view  viewer.Model
}

type loadedMsg struct {
	page *fetch.Page
}

type errMsg struct {
	err error
}

// Model is the browser's bubbletea model.
type Model struct {
	ctx    context.Context
	opts   Options
	start  *url.URL
	keys   KeyMap
	help   help.Model
	prompt textinput.Model

	pages     []*page
	status    string
	errText   string
	prompting bool
	width     int
	height    int
}

// New creates a browser that opens start, if not nil, when it starts.
func New(ctx context.Context, opts Options, start *url.URL) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New(fetch.DefaultOptions(), opts.Logger)
	}
	prompt := textinput.New()
	prompt.Prompt = "Open: "
	prompt.PromptStyle = promptStyle
	prompt.Placeholder = "https://example.com or path/to/file.md"

	return Model{
		ctx:    ctx,
		opts:   opts,
		start:  start,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		prompt: prompt,
	}
}

// Run starts the browser on the terminal and blocks until it quits.
func Run(ctx context.Context, opts Options, start *url.URL) error {
	p := tea.NewProgram(New(ctx, opts, start), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.start == nil {
		return nil
	}
	return m.load(m.start)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for _, p := range m.pages {
			p.view.SetSize(m.bodySize())
		}
		return m, nil

	case loadedMsg:
		return m.push(msg.page)

	case errMsg:
		m.showError(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.errText != "" {
		if key.Matches(msg, m.keys.Dismiss, m.keys.Confirm) {
			m.errText = ""
		}
		return m, nil
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		m.prompting = true
		m.prompt.Reset()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Back):
		if len(m.pages) > 1 {
			m.pages = m.pages[:len(m.pages)-1]
			m.status = "Opened URL: " + m.current().url.String()
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	p := m.current()
	if p == nil {
		return m, nil
	}
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	if s := p.view.Status(); s != "" {
		m.status = s
		p.view.SetStatus("")
	}
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.prompting = false
		m.prompt.Blur()
		u, err := fetch.ParseTarget(m.prompt.Value())
		if err != nil {
			m.showError(err)
			return m, nil
		}
		m.status = "Loading " + u.String()
		return m, m.load(u)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// load fetches u in the background.
func (m Model) load(u *url.URL) tea.Cmd {
	ctx, fetcher := m.ctx, m.opts.Fetcher
	return func() tea.Msg {
		p, err := fetcher.Fetch(ctx, u)
		if err != nil {
			return errMsg{err: err}
		}
		return loadedMsg{page: p}
	}
}

// follow resolves a link target against the page it was found on and
// loads it.
func (m Model) follow(base *url.URL, target string) tea.Cmd {
	u, err := fetch.Resolve(base, target)
	if err != nil {
		return func() tea.Msg { return errMsg{err: err} }
	}
	return m.load(u)
}

func (m Model) push(fp *fetch.Page) (tea.Model, tea.Cmd) {
	r, err := render.New(fp, m.opts.Render)
	if err != nil {
		m.showError(err)
		return m, nil
	}

	base := fp.URL
	v := viewer.New(r,
		viewer.WithMaximumWidth(m.opts.MaxWidth),
		viewer.OnLinkFocus(func(h *viewer.Host, target string) {
			h.Status = "Link target: " + target
		}),
		viewer.OnLinkSelect(func(h *viewer.Host, target string) {
			h.Status = "Loading " + target
			h.Send(m.follow(base, target))
		}),
	)
	if m.width > 0 {
		v.SetSize(m.bodySize())
	}
	v.Focus(markup.Rel(markup.Front))

	m.pages = append(m.pages, &page{url: fp.URL, title: fp.Title, view: v})
	m.status = "Opened URL: " + fp.URL.String()
	m.opts.Logger.Info("opened", "url", fp.URL, "type", fp.ContentType)
	return m, m.record(fp)
}

func (m Model) record(fp *fetch.Page) tea.Cmd {
	if m.opts.History == nil {
		return nil
	}
	ctx, hist, logger := m.ctx, m.opts.History, m.opts.Logger
	u, title := fp.URL.String(), fp.Title
	return func() tea.Msg {
		if err := hist.Record(ctx, u, title); err != nil {
			logger.Warn("record visit failed", "url", u, "err", err)
		}
		return nil
	}
}

func (m *Model) showError(err error) {
	var unsupported *fetch.UnsupportedError
	if errors.As(err, &unsupported) {
		m.errText = "Unsupported content type: " + unsupported.ContentType
	} else {
		m.errText = err.Error()
	}
	m.status = ""
	if p := m.current(); p != nil {
		m.status = "Opened URL: " + p.url.String()
	}
	m.opts.Logger.Error("load failed", "err", err)
}

func (m Model) current() *page {
	if len(m.pages) == 0 {
		return nil
	}
	return m.pages[len(m.pages)-1]
}

func (m Model) bodySize() (int, int) {
	return m.width, max(1, m.height-chromeHeight)
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Error returns the message of the open error dialog, if any.
func (m Model) Error() string {
	return m.errText
}

// Depth returns the number of pages on the stack.
func (m Model) Depth() int {
	return len(m.pages)
}

// URL returns the location of the current page.
func (m Model) URL() *url.URL {
	if p := m.current(); p != nil {
		return p.url
	}
	return nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.errText != "" {
		return m.errorView()
	}

	var title, body string
	if p := m.current(); p != nil {
		title = p.title
		body = p.view.View()
	}
	_, h := m.bodySize()
	body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)

	status := statusStyle.Render(ansi.Truncate(m.status, m.width, "…"))
	if m.prompting {
		status = m.prompt.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Width(m.width).MaxWidth(m.width).Render(ansi.Truncate(title, max(0, m.width-2), "…")),
		body,
		status,
		m.help.View(m.keys),
	)
}

func (m Model) errorView() string {
	width := min(60, max(20, m.width-4))
	msg := lipgloss.NewStyle().Width(width - 4).Render(m.errText)
	box := dialogStyle.Width(width).Render(strings.Join([]string{
		dialogTitleStyle.Render("Error"),
		"",
		msg,
		"",
		statusStyle.Render("esc/enter to close"),
	}, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
