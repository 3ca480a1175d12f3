package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

type detailKind int

const (
	detailKindNone detailKind = iota
	detailKindManifest
	detailKindCommand
)

// detailData backs the right-hand detail panel: the raw manifest of the tag
// under the cursor, or the full build command of the selected layer.
type detailData struct {
	kind         detailKind
	target       string
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int // position within lines; clamped by renderDetailPanel
	rawANSI      bool
}

type detailLoadedMsg struct {
	pane    state.Pane
	target  string
	seq     int
	lines   []string
	err     error
	rawANSI bool
}

func detailKindForPane(pane state.Pane) detailKind {
	switch pane {
	case state.PaneTags:
		return detailKindManifest
	case state.PaneLayers:
		return detailKindCommand
	default:
		return detailKindNone
	}
}

func (m *Model) ensureDetailForFocus() tea.Cmd {
	pane := m.display.Focus()
	lvl := m.levelAt(pane)
	if lvl == nil {
		return nil
	}
	kind := detailKindForPane(pane)
	if kind == detailKindNone {
		return nil
	}
	if len(lvl.Items) == 0 {
		delete(m.detail, pane)
		return nil
	}
	if lvl.Cursor < 0 || lvl.Cursor >= len(lvl.Items) {
		lvl.Cursor = 0
	}
	item := lvl.Items[lvl.Cursor]
	if existing, ok := m.detail[pane]; ok && existing.target == item.ID && !existing.loading {
		return nil
	}
	m.detailSeq++
	seq := m.detailSeq
	m.detail[pane] = &detailData{
		kind:    kind,
		target:  item.ID,
		label:   item.Label,
		loading: true,
		seq:     seq,
	}
	width := m.detailInnerWidth()
	switch kind {
	case detailKindManifest:
		node := item.Node
		if node == nil {
			delete(m.detail, pane)
			return nil
		}
		client := m.client
		target := item.ID
		return func() tea.Msg {
			raw, err := client.RawManifest(context.Background(), node.Repo, node.Tag)
			if err != nil {
				return detailLoadedMsg{pane: pane, target: target, seq: seq, err: err}
			}
			lines, styled := renderManifest(raw, width)
			return detailLoadedMsg{pane: pane, target: target, seq: seq, lines: lines, rawANSI: styled}
		}
	case detailKindCommand:
		text := item.Detail
		target := item.ID
		return func() tea.Msg {
			return detailLoadedMsg{pane: pane, target: target, seq: seq, lines: commandLines(text, width)}
		}
	}
	return nil
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(detailLoadedMsg)
	if !ok {
		return nil
	}
	data, ok := m.detail[update.pane]
	if !ok {
		return nil
	}
	if data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	data.rawANSI = update.rawANSI
	data.scrollOffset = 0
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
		return nil
	}
	data.err = ""
	data.lines = update.lines
	return nil
}

// activeDetail returns the detail for the focused pane, falling back to the
// layers pane so the command stays visible while browsing upstream panes.
func (m *Model) activeDetail() *detailData {
	if data, ok := m.detail[m.display.Focus()]; ok {
		return data
	}
	if data, ok := m.detail[state.PaneLayers]; ok {
		return data
	}
	return m.detail[state.PaneTags]
}

// renderManifest renders the manifest JSON through glamour. When the terminal
// renderer cannot be built the raw text is returned unstyled.
func renderManifest(raw string, width int) ([]string, bool) {
	if width > 0 {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			out, rerr := renderer.Render("```json\n" + raw + "\n```")
			if rerr == nil {
				return strings.Split(strings.Trim(out, "\n"), "\n"), true
			}
		}
	}
	return strings.Split(raw, "\n"), false
}

func commandLines(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{"(empty layer)"}
	}
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	return strings.Split(text, "\n")
}
