package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

func TestTagFocusLoadsManifest(t *testing.T) {
	h, client := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	m := h.Model()
	data, ok := m.detail[state.PaneTags]
	if !ok {
		t.Fatal("expected a manifest detail for the tags pane")
	}
	if data.kind != detailKindManifest {
		t.Fatalf("unexpected detail kind %d", data.kind)
	}
	if data.loading {
		t.Fatal("detail should be resolved")
	}
	if data.err != "" {
		t.Fatalf("unexpected detail error %q", data.err)
	}
	if joined := strings.Join(data.lines, "\n"); !strings.Contains(joined, "schemaVersion") {
		t.Fatalf("manifest content missing from detail: %q", joined)
	}
	if client.calls["manifest"] != 1 {
		t.Fatalf("expected one manifest fetch, got %d", client.calls["manifest"])
	}
}

func TestTagCursorMoveRefreshesManifest(t *testing.T) {
	h, client := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	first := h.Model().detail[state.PaneTags].target
	h.Send(keyMsg(tea.KeyDown))

	data := h.Model().detail[state.PaneTags]
	if data.target == first {
		t.Fatalf("detail target should follow the cursor, still %q", data.target)
	}
	if client.calls["manifest"] != 2 {
		t.Fatalf("expected a second manifest fetch, got %d", client.calls["manifest"])
	}

	h.Send(keyMsg(tea.KeyUp))
	if got := h.Model().detail[state.PaneTags].target; got != first {
		t.Fatalf("expected target %q, got %q", first, got)
	}
}

func TestLayerDetailShowsCommand(t *testing.T) {
	h, _ := newTestHarness(t)
	descendTo(t, h, state.PaneLayers)

	m := h.Model()
	data, ok := m.detail[state.PaneLayers]
	if !ok {
		t.Fatal("expected a command detail for the layers pane")
	}
	if data.kind != detailKindCommand {
		t.Fatalf("unexpected detail kind %d", data.kind)
	}
	if joined := strings.Join(data.lines, "\n"); !strings.Contains(joined, "COPY file:abc in /app") {
		t.Fatalf("unexpected command detail %q", joined)
	}

	h.Send(keyMsg(tea.KeyDown))
	data = h.Model().detail[state.PaneLayers]
	if joined := strings.Join(data.lines, "\n"); !strings.Contains(joined, `CMD ["/app/run"]`) {
		t.Fatalf("unexpected command detail %q", joined)
	}
}

func TestStaleDetailLoadIsDropped(t *testing.T) {
	h, _ := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	data := h.Model().detail[state.PaneTags]
	want := strings.Join(data.lines, "\n")
	h.Send(detailLoadedMsg{
		pane:   state.PaneTags,
		target: data.target,
		seq:    data.seq - 1,
		lines:  []string{"stale content"},
	})

	got := strings.Join(h.Model().detail[state.PaneTags].lines, "\n")
	if got != want {
		t.Fatalf("stale detail overwrote current content: %q", got)
	}
}

func TestManifestErrorShownInDetail(t *testing.T) {
	h, client := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	client.err = errors.New("manifest gone")
	h.Send(keyMsg(tea.KeyDown))

	data := h.Model().detail[state.PaneTags]
	if data.err != "manifest gone" {
		t.Fatalf("unexpected detail error %q", data.err)
	}
	if len(data.lines) != 0 {
		t.Fatalf("error detail should carry no lines, got %#v", data.lines)
	}
}

func TestActiveDetailFallsBackToDeepestPane(t *testing.T) {
	h, _ := newTestHarness(t)
	descendTo(t, h, state.PaneLayers)

	h.Send(keyMsg(tea.KeyTab)) // focus a pane with no detail of its own
	m := h.Model()
	if m.display.Focus() == state.PaneLayers {
		t.Fatalf("tab did not move focus off layers")
	}
	data := m.activeDetail()
	if data == nil || data.kind != detailKindCommand {
		t.Fatalf("expected the layer command detail to stay active, got %#v", data)
	}
}

func TestMouseWheelScrollsDetail(t *testing.T) {
	h, _ := newTestHarness(t)
	descendTo(t, h, state.PaneTags)

	data := h.Model().detail[state.PaneTags]
	data.lines = make([]string, 50)
	for i := range data.lines {
		data.lines[i] = "line"
	}

	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if data.scrollOffset != 3 {
		t.Fatalf("expected scroll offset 3, got %d", data.scrollOffset)
	}
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if data.scrollOffset != 0 {
		t.Fatalf("expected scroll offset 0, got %d", data.scrollOffset)
	}
}
