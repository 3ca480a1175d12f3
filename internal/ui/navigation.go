package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/logging/events"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		m.focusNextPane()
		return m.ensureDetailForFocus()
	}
	if keyMsg.Type == tea.KeyShiftTab {
		m.focusPrevPane()
		return m.ensureDetailForFocus()
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
		return m.ensureDetailForFocus()
	case "down":
		m.moveCursorDown()
		return m.ensureDetailForFocus()
	case "pgup":
		m.moveCursorPageUp()
		return m.ensureDetailForFocus()
	case "pgdown":
		m.moveCursorPageDown()
		return m.ensureDetailForFocus()
	case "home":
		m.moveCursorHome()
		return m.ensureDetailForFocus()
	case "end":
		m.moveCursorEnd()
		return m.ensureDetailForFocus()
	}
	return nil
}

func (m *Model) handleEscapeKey() tea.Cmd {
	focus := m.display.Focus()
	if focus == state.PaneNamespaces {
		return tea.Quit
	}
	m.collapseFrom(focus)
	parent := m.currentLevel()
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		}
		parent.LastCursor = -1
		m.syncViewport(m.display.Focus(), parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return m.ensureDetailForFocus()
}

// collapseFrom resets pane and everything deeper, moving focus to its parent.
func (m *Model) collapseFrom(pane state.Pane) {
	for q := pane; int(q) < len(m.levels); q++ {
		if m.levels[q] != nil {
			m.levels[q] = nil
			delete(m.detail, q)
			events.Pane.Reset(q.String())
		}
	}
	m.display.ResetDownstream(pane.Prev())
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || len(current.Items) == 0 {
		return nil
	}
	focus := m.display.Focus()
	item := current.Items[current.Cursor]
	events.UI.MenuEnter(focus.String(), item.ID, item.Label, current.Filter)
	beforeCursor := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, beforeCursor)
	if item.Node == nil {
		// Leaf entry; its detail is already on display.
		return nil
	}
	current.LastCursor = current.Cursor
	m.loading = true
	m.pendingID = item.Node.ID
	m.pendingPane = focus.Next()
	m.pendingLabel = item.Label
	m.errMsg = ""
	m.forceClearInfo()
	return m.loadMenuCmd(focus.Next(), item.Node)
}

func (m *Model) handleMenuLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(menuLoadedMsg)
	if !ok {
		return nil
	}
	if update.node == nil || update.node.ID != m.pendingID {
		return nil
	}
	pane := m.pendingPane
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	lvl := newLevel(update.node.ID, update.menu.Heading, update.menu.Items, update.node)
	m.levels[pane] = lvl
	for q := pane + 1; int(q) < len(m.levels); q++ {
		m.levels[q] = nil
		delete(m.detail, q)
	}
	m.display.Populate(pane, update.menu.Heading, update.menu.Summary)
	m.display.SetFocus(pane)
	events.Pane.Populate(pane.String(), len(lvl.Items), update.cached)
	events.UI.Focus(pane.String())
	m.syncViewport(pane, lvl)
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return m.ensureDetailForFocus()
}

func (m *Model) focusNextPane() {
	focus := m.display.Focus()
	for q := focus.Next(); q != focus; q = q.Next() {
		if m.display.SetFocus(q) {
			events.UI.Focus(q.String())
			return
		}
		if q == q.Next() {
			return
		}
	}
}

func (m *Model) focusPrevPane() {
	focus := m.display.Focus()
	for q := focus.Prev(); q != focus; q = q.Prev() {
		if m.display.SetFocus(q) {
			events.UI.Focus(q.String())
			return
		}
		if q == q.Prev() {
			return
		}
	}
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if n := len(current.Items); n > 0 {
			if current.Cursor > 0 {
				current.Cursor--
			} else {
				current.Cursor = n - 1
			}
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
			m.syncViewport(m.display.Focus(), current)
		}
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if n := len(current.Items); n > 0 {
			if current.Cursor < n-1 {
				current.Cursor++
			} else {
				current.Cursor = 0
			}
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
			m.syncViewport(m.display.Focus(), current)
		}
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.paneInnerHeight(m.display.Focus())); moved {
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
		}
		m.syncViewport(m.display.Focus(), current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.paneInnerHeight(m.display.Focus())); moved {
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
		}
		m.syncViewport(m.display.Focus(), current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
		}
		m.syncViewport(m.display.Focus(), current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(m.display.Focus().String(), current.Cursor)
		}
		m.syncViewport(m.display.Focus(), current)
	}
}

func (m *Model) syncViewport(pane state.Pane, l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.paneInnerHeight(pane))
}
