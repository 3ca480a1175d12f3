package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/registry"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

type stubClient struct {
	calls map[string]int
	err   error
	empty bool
}

func newStubClient() *stubClient {
	return &stubClient{calls: make(map[string]int)}
}

func (s *stubClient) Namespaces(context.Context) ([]string, error) {
	s.calls["namespaces"]++
	if s.empty {
		return nil, s.err
	}
	return []string{"acme", "library"}, s.err
}

func (s *stubClient) Repositories(_ context.Context, namespace string) ([]registry.Repository, error) {
	s.calls["repositories"]++
	if namespace != "acme" {
		return nil, s.err
	}
	return []registry.Repository{
		{Namespace: "acme", Name: "api", Path: "acme/api"},
		{Namespace: "acme", Name: "web", Path: "acme/web"},
	}, s.err
}

func (s *stubClient) Tags(_ context.Context, repo registry.Repository) ([]string, error) {
	s.calls["tags"]++
	return []string{"latest", "v1.2"}, s.err
}

func (s *stubClient) PlatformImages(_ context.Context, repo registry.Repository, tag string) ([]registry.PlatformImage, error) {
	s.calls["images"]++
	return []registry.PlatformImage{
		{
			Platform: "linux/amd64",
			Digest:   "sha256:0123456789abcdef0123456789abcdef",
			Layers:   []registry.Layer{{Digest: "sha256:layer1", Size: 2048}},
			History: []registry.HistoryEntry{
				{CreatedBy: "/bin/sh -c #(nop) COPY file:abc in /app ", EmptyLayer: false},
				{CreatedBy: "/bin/sh -c #(nop)  CMD [\"/app/run\"] # buildkit", EmptyLayer: true},
			},
		},
	}, s.err
}

func (s *stubClient) RawManifest(_ context.Context, repo registry.Repository, tag string) (string, error) {
	s.calls["manifest"]++
	return "{\n  \"schemaVersion\": 2\n}", s.err
}

func newTestHarness(t *testing.T) (*Harness, *stubClient) {
	t.Helper()
	client := newStubClient()
	model := NewModel(client, nil, Options{Width: 100, Height: 30})
	h := NewHarness(model)
	h.Init()
	return h, client
}

func keyMsg(key tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: key}
}

func TestInitLoadsNamespaces(t *testing.T) {
	h, client := newTestHarness(t)
	m := h.Model()

	if m.display.Focus() != state.PaneNamespaces {
		t.Fatalf("expected focus on namespaces, got %s", m.display.Focus())
	}
	view := m.display.View(state.PaneNamespaces)
	if !view.Populated {
		t.Fatal("namespaces pane should be populated after init")
	}
	if view.Summary != "2 namespaces" {
		t.Fatalf("unexpected summary %q", view.Summary)
	}
	lvl := m.levelAt(state.PaneNamespaces)
	if lvl == nil || len(lvl.Items) != 2 {
		t.Fatalf("unexpected namespaces level %#v", lvl)
	}
	if client.calls["namespaces"] != 1 {
		t.Fatalf("expected one namespace fetch, got %d", client.calls["namespaces"])
	}
}

func TestHandlerDispatchIgnoresUnknownMsg(t *testing.T) {
	h, _ := newTestHarness(t)
	type strangeMsg struct{}
	h.Send(strangeMsg{})
	if h.Model().errMsg != "" {
		t.Fatalf("unexpected error %q", h.Model().errMsg)
	}
}
