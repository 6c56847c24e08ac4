// Package tui hosts a thunkx store in a bubbletea program.
//
// The program's Update goroutine is the store's only goroutine: key presses
// dispatch directly, and deferred work scheduled on the model's loop is run
// when a WakeMsg arrives, which Init and every WakeMsg re-arm.
package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/comalice/thunkx"
	"github.com/comalice/thunkx/host"
	"github.com/comalice/thunkx/internal/logging"
)

// WakeMsg tells the model that loop work may be ready.
type WakeMsg struct{}

// Binding maps a key to the value it dispatches. Make receives the model's
// scheduler so thunks can defer work onto the Update goroutine.
type Binding struct {
	Key  key.Binding
	Make func(sched host.Scheduler) any
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	stateStyle  = lipgloss.NewStyle().Padding(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Option configures a Model.
type Option func(*config)

type config struct {
	title     string
	bindings  []Binding
	storeOpts []thunkx.Option
	logger    *logrus.Entry
}

// WithTitle sets the header line.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithBindings sets the key bindings.
func WithBindings(b ...Binding) Option {
	return func(c *config) { c.bindings = append(c.bindings, b...) }
}

// WithStoreOptions passes options to the store the model creates.
func WithStoreOptions(opts ...thunkx.Option) Option {
	return func(c *config) { c.storeOpts = append(c.storeOpts, opts...) }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(c *config) { c.logger = log }
}

// Model is a bubbletea model owning one store.
type Model[S, A any] struct {
	store    *thunkx.Store[S, A]
	reducer  thunkx.Reducer[S, A]
	loop     *host.Loop
	view     func(S) string
	title    string
	bindings []Binding
	quit     key.Binding
	help     help.Model
	log      *logrus.Entry

	// rendered caches the state view; commits mark it dirty.
	rendered string
	dirty    bool
	last     any
	err      error
}

var _ tea.Model = (*Model[int, int])(nil)

// New creates a model whose store starts at initial and is reduced by reducer.
// view renders the state.
func New[S, A any](reducer thunkx.Reducer[S, A], initial S, view func(S) string, opts ...Option) *Model[S, A] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger("tui")
	}

	m := &Model[S, A]{
		reducer:  reducer,
		view:     view,
		title:    c.title,
		bindings: c.bindings,
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		help:     help.New(),
		log:      c.logger,
		dirty:    true,
	}
	m.loop = host.NewLoop(
		host.WithLoopLogger(c.logger),
		host.WithErrorHandler(func(err error) {
			m.log.WithError(err).Warn("deferred task failed")
			m.err = err
		}),
	)
	m.store = thunkx.New[S, A](initial, slices.Concat(c.storeOpts, []thunkx.Option{
		thunkx.WithLogger(c.logger),
		thunkx.WithNotifier(func() { m.dirty = true }),
	})...)
	return m
}

// Loop returns the model's loop. Use it as the Scheduler for deferred work
// and as the target of host.Feed.
func (m *Model[S, A]) Loop() *host.Loop {
	return m.loop
}

// Store returns the model's store.
func (m *Model[S, A]) Store() *thunkx.Store[S, A] {
	return m.store
}

// Handle returns the store handle for the model's reducer.
func (m *Model[S, A]) Handle() thunkx.Handle[S, A] {
	return m.store.Use(m.reducer)
}

// Err returns the last dispatch or task error, or nil.
func (m *Model[S, A]) Err() error {
	return m.err
}

// Last returns the value returned by the last dispatch from a key binding.
func (m *Model[S, A]) Last() any {
	return m.last
}

func (m *Model[S, A]) waitForWake() tea.Cmd {
	ready := m.loop.Ready()
	return func() tea.Msg {
		<-ready
		return WakeMsg{}
	}
}

// Init starts listening for loop work.
func (m *Model[S, A]) Init() tea.Cmd {
	return m.waitForWake()
}

// Update handles keys and loop wake-ups.
func (m *Model[S, A]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WakeMsg:
		m.loop.RunPending()
		return m, m.waitForWake()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, tea.Quit
		}
		for _, b := range m.bindings {
			if !key.Matches(msg, b.Key) {
				continue
			}
			m.err = nil
			m.last, m.err = m.Handle().Dispatch.Dispatch(b.Make(m.loop))
			if m.err != nil {
				m.log.WithError(m.err).WithField("key", msg.String()).Debug("dispatch failed")
			}
			m.loop.RunPending()
			break
		}
	}
	return m, nil
}

// View renders the title, state, status line and key help.
func (m *Model[S, A]) View() string {
	if m.dirty {
		m.rendered = stateStyle.Render(m.view(m.store.State()))
		m.dirty = false
	}

	var b []string
	if m.title != "" {
		b = append(b, titleStyle.Render(m.title))
	}
	b = append(b, m.rendered)

	status := fmt.Sprintf("commits %d  pending %d", m.store.Version(), m.loop.Pending())
	if m.last != nil {
		status += fmt.Sprintf("  last %v", m.last)
	}
	b = append(b, statusStyle.Render(status))
	if m.err != nil {
		b = append(b, errorStyle.Render("error: "+m.err.Error()))
	}

	keys := make([]key.Binding, 0, len(m.bindings)+1)
	for _, bd := range m.bindings {
		keys = append(keys, bd.Key)
	}
	keys = append(keys, m.quit)
	b = append(b, m.help.ShortHelpView(keys))

	return lipgloss.JoinVertical(lipgloss.Left, b...)
}
