package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/logging"
	"github.com/djmattyg007/docker-registry-tui/internal/menu"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

// menuLoadedMsg mirrors the async cache activation response.
type menuLoadedMsg struct {
	pane   state.Pane
	node   *menu.Node
	menu   *menu.Menu
	cached bool
	err    error
}

func (m *Model) loadMenuCmd(pane state.Pane, node *menu.Node) tea.Cmd {
	cache := m.cache
	mc := m.menuCtx
	return func() tea.Msg {
		loaded, cached, err := cache.Activate(context.Background(), mc, node)
		if err != nil {
			logging.Error(err)
		}
		return menuLoadedMsg{pane: pane, node: node, menu: loaded, cached: cached, err: err}
	}
}
