package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/backend"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent updates the reachability banner. Probe results never
// touch loaded menus; browsing data is refreshed only by explicit navigation.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		return
	}
	if m.backendErr != "" && m.verbose {
		m.setInfo("Registry is reachable again.")
	}
	m.backendErr = ""
}
