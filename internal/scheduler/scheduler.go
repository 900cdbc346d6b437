// Package scheduler owns the background polling loop.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sheetwatch/internal/diff"
	"sheetwatch/internal/loader"
	"sheetwatch/internal/model"
)

// State is the lifecycle state of the polling loop.
type State string

// Scheduler lifecycle states.
const (
	StateIdle          State = "idle"
	StateRunning       State = "running"
	StateStopRequested State = "stop_requested"
	StateStopped       State = "stopped"
)

// Emitter consumes the result of each background poll iteration.
type Emitter interface {
	Emit(model.PollResult)
}

// Scheduler polls the loader on a fixed interval in a background
// goroutine, diffing each snapshot against the previous one. At most one
// loop is active per instance. On-demand polls via PollOnce share the diff
// state with the loop under the scheduler's lock.
type Scheduler struct {
	loader     *loader.Loader
	emitter    Emitter
	nameColumn string
	log        *slog.Logger
	stopWait   time.Duration

	mu       sync.Mutex
	state    State
	previous model.Snapshot
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a Scheduler. nameColumn is the content column used for
// record identity when diffing.
func New(l *loader.Loader, emitter Emitter, nameColumn string, log *slog.Logger) *Scheduler {
	return &Scheduler{
		loader:     l,
		emitter:    emitter,
		nameColumn: nameColumn,
		log:        log,
		stopWait:   time.Second,
		state:      StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start launches the background loop, polling immediately and then once
// per interval. Calling Start while the loop is active is a no-op.
// Starting again after Stopped is permitted and begins with an empty
// previous snapshot, so the first poll reports everything as new.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	if s.state == StateRunning || s.state == StateStopRequested {
		s.mu.Unlock()
		return
	}
	s.state = StateRunning
	s.previous = nil
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stop, done := s.stopCh, s.doneCh
	s.mu.Unlock()

	go s.run(interval, stop, done)
}

// Stop requests termination and waits for the loop to confirm, up to a
// short bounded timeout. It returns regardless once the timeout elapses
// and is a no-op when no loop is active.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.state = StateStopRequested
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	select {
	case <-done:
	case <-time.After(s.stopWait):
		s.log.Warn("poll loop did not confirm stop in time")
	}
}

// PollOnce runs a single synchronous poll, updating the shared diff state.
func (s *Scheduler) PollOnce() model.PollResult {
	return s.poll()
}

func (s *Scheduler) run(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	defer func() {
		s.mu.Lock()
		s.state = StateStopped
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		s.emitter.Emit(s.poll())

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// poll executes one extract-cache-diff sequence. Any failure, including an
// unexpected panic, is converted into a failed result so the loop always
// survives to the next tick.
func (s *Scheduler) poll() (res model.PollResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("poll panicked", "panic", r)
			res = model.PollResult{Message: fmt.Sprintf("poll failed: %v", r)}
		}
	}()

	today := time.Now()
	snap, fromCache, err := s.loader.LoadToday(today)
	if err != nil {
		s.log.Error("load today's records", "error", err)
		return model.PollResult{Message: err.Error()}
	}

	s.mu.Lock()
	fresh := diff.NewRecords(s.previous, snap, s.nameColumn)
	s.previous = snap
	s.mu.Unlock()

	msg := fmt.Sprintf("loaded %d records for today", len(snap))
	if fromCache {
		msg += " from cache"
	}
	return model.PollResult{Success: true, Message: msg, Snapshot: snap, New: fresh}
}
