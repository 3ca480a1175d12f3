package events

import (
	"time"

	"github.com/djmattyg007/docker-registry-tui/internal/logging"
)

type RegistryTracer struct{}

var Registry = RegistryTracer{}

// Fetch records one round-trip to the registry.
func (RegistryTracer) Fetch(kind, target string, count int, d time.Duration, err error) {
	payload := map[string]interface{}{
		"kind":     kind,
		"target":   target,
		"count":    count,
		"duration": d.String(),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("registry.fetch", payload)
}

func (RegistryTracer) Ping(host string, err error) {
	payload := map[string]interface{}{"host": host}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("registry.ping", payload)
}
