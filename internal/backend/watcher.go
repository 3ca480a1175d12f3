// Package backend polls registry reachability in the background and
// publishes the results as events for the UI status line. It never touches
// menu caches; browsing data is only fetched on demand.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/djmattyg007/docker-registry-tui/internal/logging/events"
)

// Pinger is the probe surface the watcher drives.
type Pinger interface {
	Host() string
	Ping(ctx context.Context) error
}

// Event conveys the outcome of one reachability probe.
type Event struct {
	Err error
}

// Watcher probes the registry at a fixed interval and publishes events.
type Watcher struct {
	pinger   Pinger
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that probes the registry every interval.
func NewWatcher(pinger Pinger, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		pinger:   pinger,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of reachability events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current probe
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) error {
		throttle.wait()
		err := w.pinger.Ping(ctx)
		events.Registry.Ping(w.pinger.Host(), err)
		return err
	})
}

func (w *Watcher) poll(probe func(context.Context) error) {
	defer w.wg.Done()

	emit := func() bool {
		err := probe(w.ctx)
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Err: err}:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
