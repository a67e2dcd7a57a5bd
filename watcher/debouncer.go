package watcher

import (
	"sync"
	"time"
)

// EventOp is the kind of file system change.
type EventOp int

const (
	OpCreate EventOp = iota
	OpWrite
	OpRemove
	OpRename
)

func (op EventOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// DebouncedEvent is one path in a flushed batch.
type DebouncedEvent struct {
	Path string
	Op   EventOp
}

// Debouncer collects events and hands them to flush as one batch after a
// quiet period. Events for the same path within a window collapse to the
// latest operation.
type Debouncer struct {
	interval time.Duration
	flush    func([]DebouncedEvent)

	mu      sync.Mutex
	events  map[string]DebouncedEvent
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer that calls flush on its own goroutine.
func NewDebouncer(interval time.Duration, flush func([]DebouncedEvent)) *Debouncer {
	return &Debouncer{
		interval: interval,
		flush:    flush,
		events:   make(map[string]DebouncedEvent),
	}
}

// Add records an event and restarts the quiet period.
func (d *Debouncer) Add(path string, op EventOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.events[path] = DebouncedEvent{Path: path, Op: op}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]DebouncedEvent, 0, len(d.events))
	for _, event := range d.events {
		batch = append(batch, event)
	}
	d.events = make(map[string]DebouncedEvent)
	d.mu.Unlock()

	d.flush(batch)
}

// Stop cancels any pending flush and drops buffered events.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.events = make(map[string]DebouncedEvent)
}
