package jobmgr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStopLifecycle(t *testing.T) {
	m := NewManager(nil)

	started := make(chan struct{})
	require.NoError(t, m.StartAsync(context.Background(), "worker", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	}))
	<-started
	assert.Equal(t, []string{"worker"}, m.Running())

	require.NoError(t, m.Stop("worker"))
	m.Wait()
	assert.Empty(t, m.Running())
}

func TestDuplicateNameRejected(t *testing.T) {
	m := NewManager(nil)
	defer func() { m.StopAll(); m.Wait() }()

	block := func(ctx context.Context) error { <-ctx.Done(); return nil }
	require.NoError(t, m.StartAsync(context.Background(), "worker", block))
	assert.Error(t, m.StartAsync(context.Background(), "worker", block))
}

func TestStopUnknownJob(t *testing.T) {
	m := NewManager(nil)
	assert.Error(t, m.Stop("ghost"))
}

func TestStopAllWaits(t *testing.T) {
	m := NewManager(nil)

	block := func(ctx context.Context) error { <-ctx.Done(); return nil }
	require.NoError(t, m.StartAsync(context.Background(), "a", block))
	require.NoError(t, m.StartAsync(context.Background(), "b", block))

	m.StopAll()
	done := make(chan struct{})
	go func() { m.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("jobs did not stop")
	}
}
