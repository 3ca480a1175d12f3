package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/djmattyg007/docker-registry-tui/internal/format/table"
	"github.com/djmattyg007/docker-registry-tui/internal/state"
)

const (
	leftColumnMaxWidth = 36
	leftColumnMinWidth = 16
)

// Border styles used when drawing pane boxes.
var (
	paneBorderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusedPaneBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	paneSummaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model. The layout is a fixed grid: namespaces,
// repositories and tags stacked on the left; platforms, layers and the detail
// panel on the right; a status line and filter prompt along the bottom.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading…"
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneBox(state.PaneNamespaces),
		m.renderPaneBox(state.PaneRepositories),
		m.renderPaneBox(state.PaneTags),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneBox(state.PanePlatforms),
		m.renderPaneBox(state.PaneLayers),
		m.renderDetailPanel(m.activeDetail(), m.rightColumnWidth(), m.detailBoxHeight()),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	lines := make([]styledLine, 0, 3)
	if m.showFooter {
		lines = append(lines, styledLine{text: "↑/↓ move  enter open  tab pane  esc back  ctrl+c quit", style: styles.Footer})
	}
	lines = append(lines, m.statusLine())
	promptText, _ := m.filterPrompt()
	lines = append(lines, styledLine{text: promptText})
	lines = applyWidth(lines, m.width)
	return body + "\n" + renderLines(lines)
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if m.backendErr != "" {
		return styledLine{text: fmt.Sprintf("Registry unreachable: %s", m.backendErr), style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	if m.loading {
		return styledLine{text: fmt.Sprintf("Loading %s…", m.pendingLabel), style: styles.Loading}
	}
	return styledLine{}
}

// --- geometry ---

func (m *Model) bottomBarRows() int {
	rows := 2
	if m.showFooter {
		rows++
	}
	return rows
}

func (m *Model) bodyHeight() int {
	h := m.height - m.bottomBarRows()
	if h < 9 {
		h = 9
	}
	return h
}

func (m *Model) leftColumnWidth() int {
	if m.width <= 0 {
		return leftColumnMinWidth
	}
	w := m.width / 3
	if w > leftColumnMaxWidth {
		w = leftColumnMaxWidth
	}
	if w < leftColumnMinWidth {
		w = leftColumnMinWidth
	}
	return w
}

func (m *Model) rightColumnWidth() int {
	w := m.width - m.leftColumnWidth()
	if w < leftColumnMinWidth {
		w = leftColumnMinWidth
	}
	return w
}

func (m *Model) paneBoxHeight(p state.Pane) int {
	bh := m.bodyHeight()
	third := bh / 3
	switch p {
	case state.PaneTags:
		return bh - 2*third
	default:
		return third
	}
}

func (m *Model) detailBoxHeight() int {
	return m.bodyHeight() - 2*(m.bodyHeight()/3)
}

func (m *Model) paneBoxWidth(p state.Pane) int {
	switch p {
	case state.PaneNamespaces, state.PaneRepositories, state.PaneTags:
		return m.leftColumnWidth()
	default:
		return m.rightColumnWidth()
	}
}

// paneInnerHeight returns the number of item rows a pane box can display.
func (m *Model) paneInnerHeight(p state.Pane) int {
	h := m.paneBoxHeight(p) - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) detailInnerWidth() int {
	w := m.rightColumnWidth() - 2
	if w < 1 {
		w = 1
	}
	return w
}

// --- pane rendering ---

func paneAlignments(p state.Pane) []table.Alignment {
	switch p {
	case state.PanePlatforms:
		return []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}
	case state.PaneLayers:
		return []table.Alignment{table.AlignRight, table.AlignLeft}
	default:
		return nil
	}
}

func (m *Model) renderPaneBox(p state.Pane) string {
	width := m.paneBoxWidth(p)
	height := m.paneBoxHeight(p)
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	view := m.display.View(p)
	lvl := m.levelAt(p)
	focused := m.display.Focus() == p

	borderStyle := paneBorderStyle
	titleStyle := styles.Header
	if focused {
		borderStyle = focusedPaneBorderStyle
		titleStyle = styles.FocusedHeader
	}

	summary := ""
	if view.Populated && view.Summary != "" {
		summary = " " + view.Summary + " "
	}

	var rows []string
	cursorRow := -1
	itemRows := false
	switch {
	case m.loading && m.pendingPane == p:
		rows = []string{"Loading…"}
	case lvl == nil:
		rows = nil
	case len(lvl.Items) == 0:
		if lvl.Filter != "" {
			rows = []string{fmt.Sprintf("No matches for %q", lvl.Filter)}
		} else {
			rows = []string{"(no entries)"}
		}
	default:
		rows, cursorRow = m.paneItemRows(p, lvl, innerW, innerH)
		itemRows = true
	}

	out := make([]string, 0, height)
	out = append(out, boxTopBorder(borderStyle, titleStyle, view.Heading, summary, width))
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(rows) {
			content = rows[i]
		}
		out = append(out, borderStyle.Render("│")+m.renderPaneRow(content, i == cursorRow, itemRows, innerW)+borderStyle.Render("│"))
	}
	out = append(out, borderStyle.Render("╰"+strings.Repeat("─", innerW)+"╯"))
	return strings.Join(out, "\n")
}

// paneItemRows returns the visible row texts and the cursor's index within
// the visible window.
func (m *Model) paneItemRows(p state.Pane, lvl *level, innerW, innerH int) ([]string, int) {
	lvl.EnsureCursorVisible(innerH)
	start := lvl.ViewportOffset
	if start < 0 {
		start = 0
	}
	end := start + innerH
	if end > len(lvl.Items) {
		end = len(lvl.Items)
	}
	visible := lvl.Items[start:end]

	texts := make([]string, 0, len(visible))
	if len(visible) > 0 && len(visible[0].Columns) > 0 {
		cells := make([][]string, len(visible))
		for i, item := range visible {
			cells[i] = item.Columns
		}
		texts = table.FormatWidth(cells, paneAlignments(p), innerW-2)
	} else {
		for _, item := range visible {
			texts = append(texts, item.Label)
		}
	}

	cursorRow := -1
	if lvl.Cursor >= start && lvl.Cursor < end {
		cursorRow = lvl.Cursor - start
	}
	return texts, cursorRow
}

func (m *Model) renderPaneRow(text string, selected, itemRow bool, innerW int) string {
	if !itemRow || text == "" {
		return padTo(truncateText(text, innerW), innerW)
	}
	full := padTo(truncateText("▌ "+text, innerW), innerW)
	runes := []rune(full)
	head := string(runes[:1])
	tail := string(runes[1:])
	if selected {
		return styles.SelectedItemIndicator.Render(head) + styles.SelectedItem.Render(tail)
	}
	return styles.ItemIndicator.Render(head) + styles.Item.Render(tail)
}

// boxTopBorder draws ╭─ title ──────── summary ─╮ fitted to width columns.
func boxTopBorder(borderStyle lipgloss.Style, titleStyle *lipgloss.Style, title, summary string, width int) string {
	titleSeg := " " + title + " "
	summarySeg := summary
	dashes := width - 4 - len([]rune(titleSeg)) - len([]rune(summarySeg))
	if dashes < 0 {
		summarySeg = ""
		dashes = width - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = truncateText(titleSeg, width-4)
		dashes = width - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	renderedTitle := titleSeg
	if titleStyle != nil {
		renderedTitle = titleStyle.Render(titleSeg)
	}
	return borderStyle.Render("╭─") +
		renderedTitle +
		borderStyle.Render(strings.Repeat("─", dashes)) +
		paneSummaryStyle.Render(summarySeg) +
		borderStyle.Render("─╮")
}

// renderDetailPanel builds the bordered detail box with exactly height rows
// and totalWidth columns.
func (m *Model) renderDetailPanel(data *detailData, totalWidth, height int) string {
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title := "Detail"
	scrollInfo := ""
	var contentLines []string
	var errLine string

	if data != nil {
		switch data.kind {
		case detailKindManifest:
			title = "Manifest"
		case detailKindCommand:
			title = "Command"
		}
		if lbl := strings.TrimSpace(data.label); lbl != "" && data.kind == detailKindManifest {
			title = "Manifest: " + lbl
		}
		if data.err != "" {
			errLine = data.err
		} else if len(data.lines) > 0 {
			maxOffset := len(data.lines) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if data.scrollOffset > maxOffset {
				data.scrollOffset = maxOffset
			}
			if data.scrollOffset < 0 {
				data.scrollOffset = 0
			}
			end := data.scrollOffset + innerH
			if end > len(data.lines) {
				end = len(data.lines)
			}
			contentLines = data.lines[data.scrollOffset:end]
			lastVisible := data.scrollOffset + len(contentLines)
			scrollInfo = fmt.Sprintf(" %d/%d ", lastVisible, len(data.lines))
		} else if data.loading {
			contentLines = []string{"Loading…"}
		}
	}

	bodyStyle := styles.DetailBody
	rawANSI := data != nil && data.rawANSI
	if errLine != "" {
		bodyStyle = styles.DetailError
		contentLines = []string{errLine}
		rawANSI = false
	}

	rows := make([]string, 0, height)
	rows = append(rows, boxTopBorder(paneBorderStyle, styles.DetailTitle, title, scrollInfo, totalWidth))
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		var styledContent string
		if rawANSI {
			styledContent = content
		} else if bodyStyle != nil {
			styledContent = bodyStyle.Render(content)
		} else {
			styledContent = content
		}
		rows = append(rows, paneBorderStyle.Render("│")+styledContent+paneBorderStyle.Render("│"))
	}
	rows = append(rows, paneBorderStyle.Render("╰"+strings.Repeat("─", innerW)+"╯"))
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the detail panel with the wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	data := m.activeDetail()
	if data == nil || data.loading {
		return nil
	}
	innerH := m.detailBoxHeight() - 2
	if innerH < 1 {
		innerH = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		data.scrollOffset -= 3
		if data.scrollOffset < 0 {
			data.scrollOffset = 0
		}
	case tea.MouseButtonWheelDown:
		maxOffset := len(data.lines) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		data.scrollOffset += 3
		if data.scrollOffset > maxOffset {
			data.scrollOffset = maxOffset
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	for _, p := range state.Panes() {
		if lvl := m.levelAt(p); lvl != nil {
			m.syncViewport(p, lvl)
		}
	}
	return nil
}

// --- status helpers ---

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// --- line rendering ---

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

func padTo(text string, width int) string {
	if pad := width - len([]rune(text)); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
