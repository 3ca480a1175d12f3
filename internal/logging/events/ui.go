package events

import "github.com/djmattyg007/docker-registry-tui/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) MenuEnter(paneID, itemID, label, filter string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"pane":   paneID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) MenuCursor(paneID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"pane": paneID, "cursor": cursor})
}

func (UITracer) Focus(paneID string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": paneID})
}

func (FilterTracer) Cleared(paneID string) {
	logging.Trace("filter.clear", map[string]interface{}{"pane": paneID})
}

func (FilterTracer) WordBackspace(paneID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"pane": paneID, "filter": filter})
}

func (FilterTracer) Cursor(paneID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"pane": paneID, "cursor": pos})
}

func (FilterTracer) CursorWord(paneID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"pane": paneID, "cursor": pos})
}

func (FilterTracer) Append(paneID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"pane": paneID, "filter": filter})
}

func (FilterTracer) Backspace(paneID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"pane": paneID, "filter": filter})
}
