// Package suggester binds an autocomplete dropdown to a text input on a page.
//
// On every key that is not a navigation key the trimmed input value becomes
// the term. Terms shorter than the configured minimum hide the dropdown;
// longer ones are looked up in the widget's cache and, on a miss, fetched
// from the endpoint named by the input's data attribute. Up and Down cycle
// the highlight and preview the candidate in the input, Enter or a click
// commits it.
//
// Widgets talk to each other only through the page's event bus.
package suggester

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"suggestable/internal/cache"
	"suggestable/internal/config"
	"suggestable/internal/domain"
	"suggestable/internal/eventbus"
	"suggestable/internal/fetch"
	"suggestable/internal/page"
	"suggestable/internal/ui/services/navigation"
	"suggestable/internal/ui/views"
)

// ContainerSuffix is appended to the input id to name its container
const ContainerSuffix = "__container"

// State is the widget's phase, derived from its fetch and container state
type State int

const (
	StateIdle State = iota
	StateLoading
	StateShowing
	StateHidden
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateShowing:
		return "showing"
	case StateHidden:
		return "hidden"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ResultsMsg carries a finished fetch back into the update loop
type ResultsMsg struct {
	WidgetID   string
	Generation uint64
	Key        string
	Term       string
	Items      []domain.Suggestion
	Err        error
}

// Widget is one bound input and its dropdown
type Widget struct {
	id        string
	page      *page.Page
	input     *page.Input
	container *page.Container
	opts      config.Options
	url       string
	term      string

	cache   cache.Store
	fetcher fetch.Fetcher
	bus     eventbus.EventBus
	nav     *navigation.Service
	keys    KeyMap
	sheet   views.Stylesheet
	logger  *log.Logger
	ctx     context.Context

	generation uint64 // bumped on every lookup and hide
	loading    bool   // the latest generation is still in flight
	shown      bool   // rows have been rendered at least once
	hovered    int    // row under the pointer, or navigation.None

	unsubs []func()
}

// Option configures a Widget at bind time
type Option func(*Widget)

// WithFetcher replaces the HTTP fetcher
func WithFetcher(f fetch.Fetcher) Option {
	return func(w *Widget) {
		w.fetcher = f
	}
}

// WithCache replaces the cache chosen from the options
func WithCache(s cache.Store) Option {
	return func(w *Widget) {
		w.cache = s
	}
}

// WithStylesheet sets the styles used for the container classes
func WithStylesheet(s views.Stylesheet) Option {
	return func(w *Widget) {
		w.sheet = s
	}
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(k KeyMap) Option {
	return func(w *Widget) {
		w.keys = k
	}
}

// WithLogger sets the widget's logger
func WithLogger(l *log.Logger) Option {
	return func(w *Widget) {
		w.logger = l
	}
}

// WithContext sets the context fetches run under
func WithContext(ctx context.Context) Option {
	return func(w *Widget) {
		w.ctx = ctx
	}
}

// Bind attaches a widget to input. The input keeps its identity; the widget
// only listens to it and reads or writes its value.
func Bind(p *page.Page, input *page.Input, opts config.Options, options ...Option) *Widget {
	w := &Widget{
		page:    p,
		input:   input,
		opts:    opts,
		bus:     p.Bus(),
		nav:     navigation.NewService(),
		keys:    DefaultKeyMap(),
		hovered: navigation.None,
		ctx:     context.Background(),
	}
	for _, o := range options {
		o(w)
	}

	w.id = input.ID
	if w.id == "" {
		w.id = fmt.Sprintf("sb%d1", rand.IntN(10000))
	}
	if w.logger == nil {
		w.logger = log.Default().WithPrefix("suggester")
	}
	w.logger = w.logger.With("widget", w.id)
	if w.cache == nil {
		w.cache = cache.New(opts.CacheSize)
	}
	if w.fetcher == nil {
		w.fetcher = fetch.WithLogging(fetch.NewHTTPFetcher(fetch.WithTimeout(opts.Timeout)), w.logger)
	}
	if w.sheet == nil {
		w.sheet = views.DefaultStylesheet()
	}

	if input.Attrs == nil {
		input.Attrs = map[string]string{}
	}
	if input.Data == nil {
		input.Data = map[string]string{}
	}

	w.container = w.acquireContainer()
	w.url = input.Data[opts.DataURLAttribute]
	input.Attrs["autocomplete"] = "off"

	w.unsubs = append(w.unsubs,
		w.bus.Subscribe(eventbus.EventHide, w.onHide),
		w.bus.Subscribe(eventbus.EventShow, w.onShow),
		w.bus.Subscribe(eventbus.EventItemSelect, w.onItemSelect),
		w.bus.Subscribe(eventbus.EventItemUnselect, w.onItemUnselect),
	)

	w.logger.Debug("bound", "url", w.url, "container", w.container.ID, "attached", w.container.Attached())
	return w
}

// acquireContainer reuses the page's container for this input or creates a
// hidden one directly after the input
func (w *Widget) acquireContainer() *page.Container {
	id := w.id + ContainerSuffix
	if el, ok := w.page.Lookup(id); ok {
		if c, ok := el.(*page.Container); ok {
			if c.Renderer == nil {
				c.Renderer = views.NewDropdown(w.sheet, w.opts)
			}
			return c
		}
	}

	c := page.NewContainer(id, w.opts.ContainerClass)
	c.TopOffset = w.input.OuterHeight()
	c.Renderer = views.NewDropdown(w.sheet, w.opts)
	if !w.page.InsertAfter(w.input, c) {
		w.logger.Debug("input is not on the page, container left detached")
	}
	return c
}

// Close unsubscribes the widget from the page bus
func (w *Widget) Close() {
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
}

// ID returns the id used for the container and event sources
func (w *Widget) ID() string { return w.id }

// Input returns the bound input
func (w *Widget) Input() *page.Input { return w.input }

// Container returns the dropdown container
func (w *Widget) Container() *page.Container { return w.container }

// Options returns the resolved options
func (w *Widget) Options() config.Options { return w.opts }

// URL returns the endpoint read from the input at bind time
func (w *Widget) URL() string { return w.url }

// Term returns the trimmed input value at the last key
func (w *Widget) Term() string { return w.term }

// HoverIndex returns the highlighted row, or -1
func (w *Widget) HoverIndex() int { return w.nav.HoverIndex() }

// Rows returns the rendered rows
func (w *Widget) Rows() []domain.Row { return w.container.Rows }

// KeyMap returns the widget's bindings
func (w *Widget) KeyMap() KeyMap { return w.keys }

// Visible reports whether the dropdown is showing
func (w *Widget) Visible() bool { return page.IsVisible(w.container) }

// State reports the widget's phase
func (w *Widget) State() State {
	switch {
	case w.loading:
		return StateLoading
	case w.Visible():
		return StateShowing
	case w.shown:
		return StateHidden
	}
	return StateIdle
}

// Update routes a message to the widget. Keys should only be sent to the
// focused widget; mouse messages use page coordinates.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.HandleKey(msg)
	case tea.MouseMsg:
		w.HandleMouse(msg)
		return nil
	case ResultsMsg:
		if msg.WidgetID == w.id {
			w.HandleResults(msg)
		}
		return nil
	}

	var cmd tea.Cmd
	w.input.TextInput, cmd = w.input.TextInput.Update(msg)
	return cmd
}

// HandleKey processes one key press as key-down, text editing, then key-up
func (w *Widget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	if !w.KeyDown(msg) {
		var cmd tea.Cmd
		w.input.TextInput, cmd = w.input.TextInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, w.KeyUp(msg))
	return tea.Batch(cmds...)
}

// KeyDown runs navigation. It reports true when the key must not reach the
// input, which is always the case for Up, Down and Enter.
func (w *Widget) KeyDown(msg tea.KeyMsg) bool {
	prevent := w.keys.preventsDefault(msg)
	if !w.Visible() {
		return prevent
	}

	switch {
	case key.Matches(msg, w.keys.Enter):
		w.clickRow(w.nav.HoverIndex())
	case key.Matches(msg, w.keys.Up):
		w.navigate(navigation.DirectionUp)
	case key.Matches(msg, w.keys.Down):
		w.navigate(navigation.DirectionDown)
	}
	return prevent
}

// KeyUp updates the term and starts a lookup unless msg is a control key.
// Escape hides a visible dropdown.
func (w *Widget) KeyUp(msg tea.KeyMsg) tea.Cmd {
	w.term = strings.TrimSpace(w.input.Value())

	var cmd tea.Cmd
	if !w.keys.isControl(msg) {
		if utf8.RuneCountInString(w.term) < w.opts.TermMinLength {
			w.bus.Publish(eventbus.HideEvent{Source: w.id})
		} else {
			cmd = w.lookup()
		}
	}

	if w.Visible() && key.Matches(msg, w.keys.Escape) {
		w.bus.Publish(eventbus.HideEvent{Source: w.id})
	}
	return cmd
}

// lookup renders from cache or returns the command that fetches the term
func (w *Widget) lookup() tea.Cmd {
	cacheKey := cache.Key(w.url, w.term)
	w.generation++

	if items, ok := w.cache.Get(cacheKey); ok {
		w.loading = false
		w.render(w.term, items)
		return nil
	}

	w.loading = true
	id, gen, term, url := w.id, w.generation, w.term, w.url
	fetcher, ctx := w.fetcher, w.ctx
	return func() tea.Msg {
		items, err := fetcher.Fetch(ctx, url, term)
		return ResultsMsg{WidgetID: id, Generation: gen, Key: cacheKey, Term: term, Items: items, Err: err}
	}
}

// HandleResults caches a successful fetch and renders it if it belongs to
// the latest lookup. Failures change nothing on screen and are only
// announced for the latest lookup.
func (w *Widget) HandleResults(msg ResultsMsg) {
	latest := msg.Generation == w.generation
	if msg.Err != nil {
		if !latest {
			w.logger.Debug("dropping stale failure", "term", msg.Term, "error", msg.Err)
			return
		}
		w.loading = false
		w.bus.Publish(eventbus.FetchFailedEvent{Source: w.id, URL: w.url, Term: msg.Term, Err: msg.Err})
		return
	}

	w.cache.Set(msg.Key, msg.Items)
	if !latest {
		w.logger.Debug("dropping stale results", "term", msg.Term, "generation", msg.Generation, "latest", w.generation)
		return
	}
	w.loading = false
	w.render(msg.Term, msg.Items)
}

// render replaces the rows and shows the dropdown. An empty result set
// leaves rows and visibility as they were.
func (w *Widget) render(term string, items []domain.Suggestion) {
	if len(items) == 0 {
		return
	}

	w.container.Rows = BuildRows(term, items)
	w.nav.SetCount(len(w.container.Rows))
	w.hovered = navigation.None
	w.shown = true

	w.bus.Publish(eventbus.ShowEvent{Source: w.id})
}

func (w *Widget) navigate(dir navigation.Direction) {
	if !w.nav.Navigate(dir) {
		return
	}
	i := w.nav.HoverIndex()
	w.bus.Publish(eventbus.ItemSelectEvent{Source: w.id, Index: i})
	w.input.SetValue(w.container.Rows[i].Candidate)
}

// clickRow commits row i: copy it into the input, hide, then announce it
func (w *Widget) clickRow(i int) {
	rows := w.container.Rows
	if i < 0 || i >= len(rows) {
		return
	}
	row := rows[i]

	w.input.SetValue(row.Candidate)
	w.bus.Publish(eventbus.HideEvent{Source: w.id})
	w.bus.Publish(eventbus.SelectionMadeEvent{Source: w.id, Row: row})
}

// HandleMouse handles pointer motion over rows and button releases. A
// release outside this widget's container hides every dropdown on the page.
func (w *Widget) HandleMouse(msg tea.MouseMsg) {
	el, line := w.page.HitTest(msg.X, msg.Y)
	inside := el != nil && el == page.Element(w.container)
	row := navigation.None
	if inside {
		row = w.container.RowAt(line)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		w.hover(row)
	case tea.MouseActionRelease:
		if !inside {
			w.bus.Publish(eventbus.HideEvent{})
			return
		}
		if row != navigation.None && w.Visible() {
			w.clickRow(row)
		}
	}
}

// hover moves the pointer highlight, unselecting the row it leaves. When the
// keyboard moved the highlight meanwhile, that row is unselected too.
func (w *Widget) hover(row int) {
	if row == w.hovered {
		return
	}
	if w.hovered != navigation.None {
		prev, kb := w.hovered, w.nav.HoverIndex()
		w.hovered = navigation.None
		w.nav.Reset()
		w.bus.Publish(eventbus.ItemUnselectEvent{Source: w.id, Index: prev})
		if kb != navigation.None && kb != prev {
			w.bus.Publish(eventbus.ItemUnselectEvent{Source: w.id, Index: kb})
		}
	}
	if row != navigation.None && w.Visible() {
		w.hovered = row
		w.nav.Select(row)
		w.bus.Publish(eventbus.ItemSelectEvent{Source: w.id, Index: row})
	}
}

func (w *Widget) ours(e eventbus.DomainEvent) bool {
	return e.Origin() == w.id
}

func (w *Widget) onHide(e eventbus.DomainEvent) {
	if e.Origin() != "" && !w.ours(e) {
		return
	}
	w.container.Hidden = true
	w.nav.Reset()
	w.hovered = navigation.None
	// a response still in flight must not reopen the dropdown
	w.generation++
	w.loading = false
}

func (w *Widget) onShow(e eventbus.DomainEvent) {
	if !w.ours(e) {
		return
	}
	w.nav.Reset()
	for i := range w.container.Rows {
		w.container.Rows[i].Active = false
	}
	w.container.Hidden = false
}

func (w *Widget) onItemSelect(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.ItemSelectEvent)
	if !ok || !w.ours(e) {
		return
	}
	rows := w.container.Rows
	if ev.Index < 0 || ev.Index >= len(rows) {
		return
	}
	for i := range rows {
		rows[i].Active = false
	}
	rows[ev.Index].Active = true
	w.nav.Select(ev.Index)
}

func (w *Widget) onItemUnselect(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.ItemUnselectEvent)
	if !ok || !w.ours(e) {
		return
	}
	rows := w.container.Rows
	if ev.Index < 0 || ev.Index >= len(rows) {
		return
	}
	rows[ev.Index].Active = false
}
