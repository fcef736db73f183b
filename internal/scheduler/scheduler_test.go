package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddRejectsBadSpecAndDuplicates(t *testing.T) {
	s := New(nil)
	noop := func(context.Context) error { return nil }

	require.Error(t, s.Add("broken", "every tuesday-ish", noop))
	require.NoError(t, s.Add("cleanup", "0 3 * * *", noop))
	require.Error(t, s.Add("cleanup", "@every 1h", noop))
	require.NoError(t, s.Add("manual", "", noop))
}

func TestScheduler_TriggerRunsJob(t *testing.T) {
	s := New(nil)
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("sync", "@every 6h", func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	}))
	s.Start()
	defer s.Stop(context.Background())

	require.NoError(t, s.Trigger("sync"))
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run")
	}

	assert.Error(t, s.Trigger("missing"))
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := New(nil)
	started := make(chan struct{})
	cancelled := make(chan struct{})
	require.NoError(t, s.Add("long", "", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))
	s.Start()
	require.NoError(t, s.Trigger("long"))
	<-started

	s.Stop(context.Background())
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context not cancelled")
	}
}
