package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"suggestable/internal/config"
	"suggestable/internal/domain"
	"suggestable/internal/eventbus"
	"suggestable/internal/fetch"
	"suggestable/internal/page"
	"suggestable/internal/suggester"
	"suggestable/internal/ui/views"
)

// Title is shown above the form
const Title = "Suggestable"

// errorStatusTTL is how long a fetch failure stays on the status line
const errorStatusTTL = 5 * time.Second

// Model is a form of suggesting inputs, one widget per configured field
type Model struct {
	config  *config.Config
	opts    config.Options
	page    *page.Page
	bus     eventbus.EventBus
	widgets []*suggester.Widget
	focus   int

	keys    KeyMap
	styles  *views.Styles
	sheet   views.Stylesheet
	help    help.Model
	spinner spinner.Model
	logger  *log.Logger

	status    string
	statusErr bool
	statusGen int
	selected  []Selection
	pending   []tea.Cmd // queued by bus handlers for the current Update

	width        int
	height       int
	headerHeight int

	fetcher    fetch.Fetcher
	ctx        context.Context
	cursorMode cursor.Mode
}

// Selection is a committed suggestion and the field it was made in
type Selection struct {
	Field string
	Row   domain.Row
}

// Option configures a Model
type Option func(*Model)

// WithFetcher makes every widget fetch through f
func WithFetcher(f fetch.Fetcher) Option {
	return func(m *Model) {
		m.fetcher = f
	}
}

// WithContext sets the context every fetch runs under
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithCursorMode sets the cursor mode of every input
func WithCursorMode(mode cursor.Mode) Option {
	return func(m *Model) {
		m.cursorMode = mode
	}
}

// NewModel builds the page from cfg and binds a widget to each field
func NewModel(cfg *config.Config, options ...Option) *Model {
	m := &Model{
		config:     cfg,
		opts:       cfg.Options(),
		keys:       DefaultKeyMap(),
		styles:     views.NewStyles(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		logger:     log.Default().WithPrefix("ui"),
		cursorMode: cursor.CursorBlink,
	}
	for _, o := range options {
		o(m)
	}
	m.sheet = views.StylesheetFor(m.opts)
	m.spinner.Style = m.styles.Spinner
	m.help.Styles.ShortKey = m.styles.Help
	m.help.Styles.ShortDesc = m.styles.Help
	m.page = page.New(nil)
	m.bus = m.page.Bus()

	for _, f := range cfg.Fields {
		in := page.NewInput(f.ID, f.Label)
		in.Data[m.opts.DataURLAttribute] = f.URL
		in.TextInput.Placeholder = f.Placeholder
		in.TextInput.Cursor.SetMode(m.cursorMode)
		in.Style = m.styles.Input
		m.page.Add(in)

		wopts := []suggester.Option{
			suggester.WithStylesheet(m.sheet),
			suggester.WithLogger(log.Default().WithPrefix("suggester")),
		}
		if m.ctx != nil {
			wopts = append(wopts, suggester.WithContext(m.ctx))
		}
		if m.fetcher != nil {
			wopts = append(wopts, suggester.WithFetcher(m.fetcher))
		}
		m.widgets = append(m.widgets, suggester.Bind(m.page, in, m.opts, wopts...))
	}

	m.bus.Subscribe(eventbus.EventSelectionMade, m.onSelectionMade)
	m.bus.Subscribe(eventbus.EventFetchFailed, m.onFetchFailed)

	m.setFocus(0)
	m.logger.Info("form ready", "fields", len(m.widgets))
	return m
}

// Page returns the form's page
func (m *Model) Page() *page.Page { return m.page }

// Widgets returns the bound widgets in field order
func (m *Model) Widgets() []*suggester.Widget { return m.widgets }

// Focused returns the focused widget, or nil on an empty form
func (m *Model) Focused() *suggester.Widget {
	if len(m.widgets) == 0 {
		return nil
	}
	return m.widgets[m.focus]
}

// Status returns the status line text
func (m *Model) Status() string { return m.status }

// Selections returns every committed suggestion in order
func (m *Model) Selections() []Selection { return m.selected }

// Values returns the current value of every field by id
func (m *Model) Values() map[string]string {
	out := make(map[string]string, len(m.widgets))
	for _, w := range m.widgets {
		out[w.ID()] = w.Input().Value()
	}
	return out
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.cursorMode == cursor.CursorBlink {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if len(m.pending) == 0 {
		return m, cmd
	}
	cmds := append(m.pending, cmd)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case suggester.ResultsMsg:
		for _, w := range m.widgets {
			if w.ID() == msg.WidgetID {
				return w.Update(msg)
			}
		}
		return nil

	case statusClearMsg:
		if msg.gen == m.statusGen {
			m.status = ""
			m.statusErr = false
		}
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	if w := m.Focused(); w != nil {
		return w.Update(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Info("quit", "values", m.Values())
		return tea.Quit
	case key.Matches(msg, m.keys.FullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus(m.focus - 1)
	}

	if w := m.Focused(); w != nil {
		return w.HandleKey(msg)
	}
	return nil
}

// setFocus moves keyboard focus to field i, wrapping at both ends.
// The dropdown of the field losing focus is closed so it cannot cover the
// field gaining it.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.widgets)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n

	prev := m.widgets[m.focus]
	if i != m.focus && prev.Visible() {
		m.bus.Publish(eventbus.HideEvent{Source: prev.ID()})
	}
	for j, w := range m.widgets {
		in := w.Input()
		if j != i {
			in.TextInput.Blur()
			in.Style = m.styles.Input
		}
	}

	m.focus = i
	in := m.widgets[i].Input()
	in.Style = m.styles.InputFocus
	return in.TextInput.Focus()
}

// handleMouse translates to page coordinates and lets the widget under the
// pointer act before the others, the way a row handler runs before a
// document-level one
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	msg.Y -= m.headerHeight
	el, _ := m.page.HitTest(msg.X, msg.Y)

	ordered := make([]*suggester.Widget, 0, len(m.widgets))
	for _, w := range m.widgets {
		if el != nil && el == page.Element(w.Container()) {
			ordered = append([]*suggester.Widget{w}, ordered...)
			continue
		}
		ordered = append(ordered, w)
	}

	var cmd tea.Cmd
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for i, w := range m.widgets {
			if el != nil && el == page.Element(w.Input()) {
				cmd = m.setFocus(i)
			}
		}
	}

	for _, w := range ordered {
		w.HandleMouse(msg)
	}
	return cmd
}

func (m *Model) onSelectionMade(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.SelectionMadeEvent)
	if !ok {
		return
	}
	m.selected = append(m.selected, Selection{Field: ev.Source, Row: ev.Row})
	status := "Selected " + views.RenderRowPlain(ev.Row, m.opts.DelimiterText)
	if ev.Row.URL != "" {
		status += " (" + ev.Row.URL + ")"
	}
	m.setStatus(status, false)
	m.logger.Info("selection made", "field", ev.Source, "query", ev.Row.Candidate, "url", ev.Row.URL)
}

func (m *Model) onFetchFailed(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.FetchFailedEvent)
	if !ok {
		return
	}
	m.setStatus(fmt.Sprintf("No suggestions for %q: %v", ev.Term, ev.Err), true)
}

// setStatus replaces the status line. Errors clear themselves after a while.
func (m *Model) setStatus(s string, isErr bool) {
	m.statusGen++
	m.status = s
	m.statusErr = isErr
	if !isErr {
		return
	}
	gen := m.statusGen
	m.pending = append(m.pending, tea.Tick(errorStatusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{gen: gen}
	}))
}

func (m *Model) View() string {
	header := m.styles.Title.Render(Title)
	if w := m.Focused(); w != nil && w.State() == suggester.StateLoading {
		header = m.styles.Title.Render(Title + " " + m.spinner.View())
	}
	m.headerHeight = lipgloss.Height(header)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	if len(m.widgets) == 0 {
		b.WriteString(m.styles.Status.Render("No fields configured. Add [[field]] tables to the config file."))
		return b.String()
	}

	b.WriteString(m.page.View())
	b.WriteString("\n")

	if m.status != "" {
		st := m.styles.Status
		if m.statusErr {
			st = m.styles.StatusError.MarginTop(1)
		}
		b.WriteString(st.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(helpKeys{form: m.keys, widget: m.Focused().KeyMap()}))
	return b.String()
}
