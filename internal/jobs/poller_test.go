package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want State
	}{
		{name: "completed", raw: "completed", want: StateCompleted},
		{name: "completed mixed case", raw: "Completed", want: StateCompleted},
		{name: "failed", raw: "failed", want: StateFailed},
		{name: "error counts as failed", raw: "error", want: StateFailed},
		{name: "processing", raw: "processing", want: StateProcessing},
		{name: "unknown stays non-terminal", raw: "queued", want: StateProcessing},
		{name: "empty stays non-terminal", raw: "", want: StateProcessing},
		{name: "idle", raw: "idle", want: StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseState(tt.raw))
		})
	}
}

func TestPollerStopsAtTerminalState(t *testing.T) {
	// Three processing responses followed by completed must result in
	// exactly four status requests.
	responses := []State{StateProcessing, StateProcessing, StateProcessing, StateCompleted}
	calls := 0

	poller := NewPoller(func(_ context.Context) (State, error) {
		state := responses[calls]
		calls++
		return state, nil
	}, WithInterval(time.Millisecond))

	state, err := poller.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
	assert.Equal(t, 4, calls)

	// No further status requests once the terminal state was observed.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 4, calls)
}

func TestPollerStopsOnFailure(t *testing.T) {
	calls := 0
	poller := NewPoller(func(_ context.Context) (State, error) {
		calls++
		return StateFailed, nil
	}, WithInterval(time.Millisecond))

	state, err := poller.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, 1, calls)
}

func TestPollerSkipsFailedAttempts(t *testing.T) {
	// A failed poll attempt is silently skipped and retried on the next
	// tick rather than terminating the wait.
	responses := []func() (State, error){
		func() (State, error) { return StateProcessing, nil },
		func() (State, error) { return "", errors.New("status: 502") },
		func() (State, error) { return StateCompleted, nil },
	}
	calls := 0

	poller := NewPoller(func(_ context.Context) (State, error) {
		fn := responses[calls]
		calls++
		return fn()
	}, WithInterval(time.Millisecond))

	state, err := poller.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
	assert.Equal(t, 3, calls)
}

func TestPollerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	poller := NewPoller(func(_ context.Context) (State, error) {
		return StateProcessing, nil
	}, WithInterval(time.Millisecond))

	done := make(chan struct{})
	var state State
	var err error
	go func() {
		state, err = poller.Wait(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateProcessing, state)
}

func TestPollerTickHook(t *testing.T) {
	var observed []State
	responses := []State{StateProcessing, StateCompleted}
	calls := 0

	poller := NewPoller(func(_ context.Context) (State, error) {
		state := responses[calls]
		calls++
		return state, nil
	}, WithInterval(time.Millisecond), WithTick(func(s State) {
		observed = append(observed, s)
	}))

	_, err := poller.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []State{StateProcessing, StateCompleted}, observed)
}

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewTracker()
	assert.Equal(t, StateIdle, tracker.State())

	// Starting a job surfaces processing synchronously, before any poll
	// has resolved.
	tracker.Start("job-123")
	assert.Equal(t, StateProcessing, tracker.State())
	assert.Equal(t, "job-123", tracker.JobID())

	tracker.Observe(StateFailed)
	assert.Equal(t, StateFailed, tracker.State())

	// Reset is the local retry affordance: back to idle, job id discarded.
	tracker.Reset()
	assert.Equal(t, StateIdle, tracker.State())
	assert.Empty(t, tracker.JobID())
}
