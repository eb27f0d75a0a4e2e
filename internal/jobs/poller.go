// Package jobs drives long-running server-side AI jobs to completion.
//
// Both the document-extraction and report-build flows share the same shape: a
// start call returns an opaque job id, and a status endpoint is polled at a
// fixed interval until it reports a terminal state. This package holds the one
// poller both flows use.
package jobs

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// State is the client-visible lifecycle of a job.
type State string

const (
	// StateIdle is the client-only state before a job has been submitted.
	StateIdle State = "idle"
	// StateProcessing means the server is still working on the job.
	StateProcessing State = "processing"
	// StateCompleted is the successful terminal state.
	StateCompleted State = "completed"
	// StateFailed is the unsuccessful terminal state.
	StateFailed State = "failed"
)

// Terminal reports whether polling should stop.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// ParseState maps a status string from a job endpoint to a State. Anything
// unrecognized counts as still processing so a new server-side status value
// never terminates polling early.
func ParseState(raw string) State {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "complete", "success":
		return StateCompleted
	case "failed", "error":
		return StateFailed
	case "idle":
		return StateIdle
	default:
		return StateProcessing
	}
}

// StatusFunc queries the current state of a job.
type StatusFunc func(ctx context.Context) (State, error)

// DefaultInterval is the fixed delay between status requests.
const DefaultInterval = 2 * time.Second

// Poller repeatedly queries a job's status until it reaches a terminal state.
// Failed poll attempts are skipped and retried on the next tick; there is no
// backoff and no attempt cutoff, so callers bound the wait with their context.
type Poller struct {
	status   StatusFunc
	onTick   func(State)
	interval time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTick registers a hook invoked after every successful status response.
func WithTick(fn func(State)) Option {
	return func(p *Poller) {
		p.onTick = fn
	}
}

// NewPoller creates a poller over the given status function.
func NewPoller(status StatusFunc, opts ...Option) *Poller {
	p := &Poller{
		status:   status,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait polls until the job reaches a terminal state or the context is
// cancelled. On cancellation the last observed state is returned together
// with the context error; no further status requests are issued after that.
func (p *Poller) Wait(ctx context.Context) (State, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	state := StateProcessing
	for {
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
			current, err := p.status(ctx)
			if err != nil {
				// Transient failure: skip this tick, retry on the next one.
				slog.Debug("Job status request failed, retrying on next tick",
					"error", err)
				continue
			}
			state = current
			if p.onTick != nil {
				p.onTick(state)
			}
			if state.Terminal() {
				return state, nil
			}
		}
	}
}

// Tracker is the local job state machine surfaced to views. Starting a job
// moves it to processing synchronously so feedback does not wait for the
// first poll tick.
type Tracker struct {
	mu    sync.Mutex
	jobID string
	state State
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{state: StateIdle}
}

// Start records the job id and optimistically marks the job processing.
func (t *Tracker) Start(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobID = jobID
	t.state = StateProcessing
}

// Observe applies a polled state to the tracker.
func (t *Tracker) Observe(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
}

// Reset returns the tracker to idle, discarding the job id. This is the
// client-side retry affordance; it does not stop server-side work.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobID = ""
	t.state = StateIdle
}

// State returns the current local state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// JobID returns the tracked job id, empty when idle.
func (t *Tracker) JobID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobID
}
