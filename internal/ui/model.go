package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/backend"
	"github.com/djmattyg007/docker-registry-tui/internal/menu"
	"github.com/djmattyg007/docker-registry-tui/internal/registry"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
	"github.com/djmattyg007/docker-registry-tui/internal/theme"
	uistate "github.com/djmattyg007/docker-registry-tui/internal/ui/state"
)

type level = uistate.Level

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Client is the registry surface the UI consumes: menu listings plus raw
// manifest retrieval for the detail panel.
type Client interface {
	menu.Client
	RawManifest(ctx context.Context, repo registry.Repository, tag string) (string, error)
}

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Model implements the Bubble Tea model for the registry browser.
type Model struct {
	client  Client
	cache   *menu.Cache
	menuCtx menu.Context

	display *state.Display
	levels  [5]*level

	loading      bool
	pendingID    string
	pendingPane  state.Pane
	pendingLabel string

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	backend    *backend.Watcher
	backendErr string

	showFooter bool
	verbose    bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	detail    map[state.Pane]*detailData
	detailSeq int

	handlers map[reflect.Type]msgHandler
}

// Options carries presentation settings for NewModel.
type Options struct {
	Width             int
	Height            int
	ShowFooter        bool
	Verbose           bool
	PreferredPlatform string
	CacheBudget       int
}

// NewModel initialises the UI state. The namespaces pane starts loading from
// Init; everything deeper is populated on demand.
func NewModel(client Client, watcher *backend.Watcher, opts Options) *Model {
	m := &Model{
		client:     client,
		cache:      menu.NewCache(opts.CacheBudget),
		menuCtx:    menu.Context{Client: client, PreferredPlatform: opts.PreferredPlatform},
		display:    state.NewDisplay(),
		backend:    watcher,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		detail:     make(map[state.Pane]*detailData),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startRootLoad()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) startRootLoad() tea.Cmd {
	root := menu.NewRoot()
	m.loading = true
	m.pendingID = root.ID
	m.pendingPane = state.PaneNamespaces
	m.pendingLabel = root.Label
	return m.loadMenuCmd(state.PaneNamespaces, root)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menuLoadedMsg{}):     m.handleMenuLoadedMsg,
		reflect.TypeOf(detailLoadedMsg{}):   m.handleDetailLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) currentLevel() *level {
	return m.levels[m.display.Focus()]
}

func (m *Model) levelAt(pane state.Pane) *level {
	if pane < 0 || int(pane) >= len(m.levels) {
		return nil
	}
	return m.levels[pane]
}
