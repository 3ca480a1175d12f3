package events

import "github.com/djmattyg007/docker-registry-tui/internal/logging"

type PaneTracer struct{}

var Pane = PaneTracer{}

func (PaneTracer) Populate(paneID string, items int, cached bool) {
	logging.Trace("pane.populate", map[string]interface{}{
		"pane":   paneID,
		"items":  items,
		"cached": cached,
	})
}

func (PaneTracer) Reset(paneID string) {
	logging.Trace("pane.reset", map[string]interface{}{"pane": paneID})
}
