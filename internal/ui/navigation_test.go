package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/menu"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

func descendTo(t *testing.T, h *Harness, pane state.Pane) {
	t.Helper()
	for h.Model().display.Focus() != pane {
		before := h.Model().display.Focus()
		h.Send(keyMsg(tea.KeyEnter))
		after := h.Model().display.Focus()
		if after == before {
			t.Fatalf("enter did not advance past %s (error: %q)", before, h.Model().errMsg)
		}
	}
}

func TestEnterDescendsThroughPanes(t *testing.T) {
	h, client := newTestHarness(t)

	h.Send(keyMsg(tea.KeyEnter))
	m := h.Model()
	if m.display.Focus() != state.PaneRepositories {
		t.Fatalf("expected focus on repositories, got %s", m.display.Focus())
	}
	if got := m.display.View(state.PaneRepositories).Heading; got != "Images: acme" {
		t.Fatalf("unexpected repositories heading %q", got)
	}

	h.Send(keyMsg(tea.KeyEnter))
	m = h.Model()
	if m.display.Focus() != state.PaneTags {
		t.Fatalf("expected focus on tags, got %s", m.display.Focus())
	}
	if got := m.display.View(state.PaneTags).Heading; got != "Tags: acme/api" {
		t.Fatalf("unexpected tags heading %q", got)
	}

	h.Send(keyMsg(tea.KeyEnter))
	m = h.Model()
	if m.display.Focus() != state.PanePlatforms {
		t.Fatalf("expected focus on platforms, got %s", m.display.Focus())
	}
	if got := m.display.View(state.PanePlatforms).Heading; got != "acme/api - latest" {
		t.Fatalf("unexpected platforms heading %q", got)
	}

	h.Send(keyMsg(tea.KeyEnter))
	m = h.Model()
	if m.display.Focus() != state.PaneLayers {
		t.Fatalf("expected focus on layers, got %s", m.display.Focus())
	}
	lvl := m.levelAt(state.PaneLayers)
	if lvl == nil || len(lvl.Items) != 2 {
		t.Fatalf("unexpected layers level %#v", lvl)
	}
	if lvl.Items[0].Node != nil {
		t.Fatal("layer entries should be leaves")
	}

	// Enter on a leaf keeps focus where it is.
	h.Send(keyMsg(tea.KeyEnter))
	if h.Model().display.Focus() != state.PaneLayers {
		t.Fatalf("leaf enter moved focus to %s", h.Model().display.Focus())
	}

	if client.calls["images"] != 1 {
		t.Fatalf("expected one image fetch, got %d", client.calls["images"])
	}
}

func TestEscapeCollapsesToParent(t *testing.T) {
	h, _ := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	h.Send(keyMsg(tea.KeyEsc))
	m := h.Model()
	if m.display.Focus() != state.PaneRepositories {
		t.Fatalf("expected focus back on repositories, got %s", m.display.Focus())
	}
	if m.levelAt(state.PaneTags) != nil {
		t.Fatal("tags level should be cleared")
	}
	if m.display.View(state.PaneTags).Populated {
		t.Fatal("tags pane should be depopulated")
	}
	if _, ok := m.detail[state.PaneTags]; ok {
		t.Fatal("tags detail should be dropped")
	}
}

func TestEscapeRestoresParentCursor(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyDown)) // move to acme/web
	h.Send(keyMsg(tea.KeyEnter))
	if h.Model().display.Focus() != state.PaneTags {
		t.Fatalf("expected focus on tags, got %s", h.Model().display.Focus())
	}

	h.Send(keyMsg(tea.KeyEsc))
	lvl := h.Model().levelAt(state.PaneRepositories)
	if lvl == nil {
		t.Fatal("repositories level missing")
	}
	if lvl.Cursor != 1 {
		t.Fatalf("expected cursor restored to 1, got %d", lvl.Cursor)
	}
}

func TestRepeatedDescentUsesMenuCache(t *testing.T) {
	h, client := newTestHarness(t)
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyEsc))
	h.Send(keyMsg(tea.KeyEnter))

	if client.calls["repositories"] != 1 {
		t.Fatalf("expected repositories fetched once, got %d", client.calls["repositories"])
	}
	if h.Model().display.Focus() != state.PaneRepositories {
		t.Fatalf("expected focus on repositories, got %s", h.Model().display.Focus())
	}
}

func TestStaleMenuLoadIsDropped(t *testing.T) {
	h, _ := newTestHarness(t)
	stale := &menu.Node{Kind: menu.KindRepositories, ID: "namespace:ghost", Label: "ghost"}
	h.Send(menuLoadedMsg{
		pane: state.PaneRepositories,
		node: stale,
		menu: &menu.Menu{Heading: "Images: ghost"},
	})
	m := h.Model()
	if m.levelAt(state.PaneRepositories) != nil {
		t.Fatal("stale load populated a pane")
	}
	if m.display.Focus() != state.PaneNamespaces {
		t.Fatalf("stale load moved focus to %s", m.display.Focus())
	}
}

func TestLoadErrorIsSurfaced(t *testing.T) {
	client := newStubClient()
	client.err = errors.New("registry exploded")
	h := NewHarness(NewModel(client, nil, Options{Width: 100, Height: 30}))
	h.Init()

	m := h.Model()
	if m.errMsg == "" {
		t.Fatal("expected an error message")
	}
	if m.levelAt(state.PaneNamespaces) != nil {
		t.Fatal("failed load should not populate the pane")
	}
}

func TestEmptyListingShowsInfo(t *testing.T) {
	client := newStubClient()
	client.empty = true
	h := NewHarness(NewModel(client, nil, Options{Width: 100, Height: 30}))
	h.Init()

	m := h.Model()
	if m.currentInfo() != "No entries found." {
		t.Fatalf("unexpected info %q", m.currentInfo())
	}
	lvl := m.levelAt(state.PaneNamespaces)
	if lvl == nil || len(lvl.Items) != 0 {
		t.Fatalf("expected an empty namespaces level, got %#v", lvl)
	}
}

func TestTabCyclesPopulatedPanes(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(keyMsg(tea.KeyEnter))

	h.Send(keyMsg(tea.KeyTab))
	if got := h.Model().display.Focus(); got != state.PaneNamespaces {
		t.Fatalf("tab should wrap to namespaces, got %s", got)
	}
	h.Send(keyMsg(tea.KeyTab))
	if got := h.Model().display.Focus(); got != state.PaneRepositories {
		t.Fatalf("tab should return to repositories, got %s", got)
	}
	h.Send(keyMsg(tea.KeyShiftTab))
	if got := h.Model().display.Focus(); got != state.PaneNamespaces {
		t.Fatalf("shift+tab should go back to namespaces, got %s", got)
	}
}

func TestFilterNarrowsAndClears(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("lib")})

	lvl := h.Model().currentLevel()
	if lvl.Filter != "lib" {
		t.Fatalf("unexpected filter %q", lvl.Filter)
	}
	if len(lvl.Items) != 1 || lvl.Items[0].Label != "library" {
		t.Fatalf("unexpected filtered items %#v", lvl.Items)
	}

	h.Send(keyMsg(tea.KeyCtrlU))
	lvl = h.Model().currentLevel()
	if lvl.Filter != "" || len(lvl.Items) != 2 {
		t.Fatalf("filter not cleared: %q with %d items", lvl.Filter, len(lvl.Items))
	}
}

func TestEnterClearsFilter(t *testing.T) {
	h, _ := newTestHarness(t)
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("acme")})
	h.Send(keyMsg(tea.KeyEnter))

	m := h.Model()
	if m.display.Focus() != state.PaneRepositories {
		t.Fatalf("expected focus on repositories, got %s", m.display.Focus())
	}
	parent := m.levelAt(state.PaneNamespaces)
	if parent.Filter != "" {
		t.Fatalf("parent filter should be cleared, got %q", parent.Filter)
	}
	if len(parent.Items) != 2 {
		t.Fatalf("parent items should be restored, got %d", len(parent.Items))
	}
}

func TestCursorWrapsAtEdges(t *testing.T) {
	h, _ := newTestHarness(t)
	lvl := h.Model().currentLevel()
	if lvl.Cursor != 0 {
		t.Fatalf("cursor should start at 0, got %d", lvl.Cursor)
	}
	h.Send(keyMsg(tea.KeyUp))
	if lvl.Cursor != 1 {
		t.Fatalf("up at top should wrap to last item, got %d", lvl.Cursor)
	}
	h.Send(keyMsg(tea.KeyDown))
	if lvl.Cursor != 0 {
		t.Fatalf("down at bottom should wrap to first item, got %d", lvl.Cursor)
	}
}
