package audiograph

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/audiograph/graph"
)

// invariant 5: no two workers ever run the same node concurrently.
func TestNoConcurrentRunOfSameNode(t *testing.T) {
	c := New(WithWorkerCount(4))

	var running atomic.Bool
	var violated atomic.Bool
	var calls atomic.Int64

	d := c.CreateNodeDescriptor(1)
	d.Name = "busy"
	d.CreatePort(0, graph.AudioOut)
	d.Run = func(n *graph.Node) error {
		if !running.CompareAndSwap(false, true) {
			violated.Store(true)
		}
		calls.Add(1)
		time.Sleep(time.Millisecond)
		running.Store(false)
		return nil
	}

	n, err := c.CreateNode(d)
	require.NoError(t, err)
	_ = n

	require.NoError(t, c.Start())
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, c.Stop())

	assert.False(t, violated.Load(), "a node's Run must never overlap itself")
	assert.Greater(t, calls.Load(), int64(0))
}

// invariant 6 / lifecycle: Stop leaves the pipeline restartable and joins
// every goroutine (no leaked workers after Stop returns).
func TestStartStopIsRestartable(t *testing.T) {
	c := New(WithWorkerCount(2))
	d := c.CreateNodeDescriptor(1)
	d.Name = "noop"
	d.CreatePort(0, graph.AudioOut)
	d.Run = func(n *graph.Node) error { return nil }
	_, err := c.CreateNode(d)
	require.NoError(t, err)

	require.NoError(t, c.Start())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Stop())

	require.NoError(t, c.Start())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Stop())
}

func TestStartTwiceFails(t *testing.T) {
	c := New()
	require.NoError(t, c.Start())
	defer c.Stop()
	assert.ErrorIs(t, c.Start(), ErrAlreadyStarted)
}

func TestStopWithoutStartFails(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Stop(), ErrNotStarted)
}

func TestMutationRejectedWhileRunning(t *testing.T) {
	c := New()
	d := c.CreateNodeDescriptor(1)
	d.CreatePort(0, graph.AudioOut)

	require.NoError(t, c.Start())
	defer c.Stop()

	_, err := c.CreateNode(d)
	assert.ErrorIs(t, err, ErrPipelineRunning)
}
