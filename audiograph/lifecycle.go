package audiograph

import "github.com/google/uuid"

// Start launches the scheduler: the task queue, the worker pool, and the
// manager goroutine, then binds hardware callbacks so a render/MIDI
// callback nudges the manager. Returns ErrAlreadyStarted if already
// running. After Start, CreateNode/DestroyNode/ConnectPorts return
// ErrPipelineRunning until Stop.
func (c *Context) Start() error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	// runID correlates one Start/Stop cycle's log lines across every
	// worker and the manager, the same way the teacher tags a channel's
	// lifetime with a google/uuid-minted ID in channel_impl.go/engine.go —
	// generalized here from a per-channel ID to a per-pipeline-run one.
	c.runID = uuid.NewString()

	nodes := c.Nodes()
	c.queue = newTaskQueue(len(nodes) + 1)
	c.stop = make(chan struct{})

	c.bindHardwareCallbacks()

	c.workers.Add(c.numWorkers)
	for i := 0; i < c.numWorkers; i++ {
		go c.runWorker()
	}

	c.workers.Add(1)
	go c.runManager()

	c.wake()
	c.log.Info("pipeline started", "run_id", c.runID, "nodes", len(nodes), "workers", c.numWorkers)
	return nil
}

// Stop signals every worker and the manager to exit and blocks until all
// of them have, leaving the pipeline in the state Start requires to run
// again. Returns ErrNotStarted if the pipeline isn't running.
func (c *Context) Stop() error {
	if !c.running.CompareAndSwap(true, false) {
		return ErrNotStarted
	}
	close(c.stop)
	c.queue.close()
	c.workers.Wait()
	// Every goroutine has exited, so no node is owned any more: release the
	// ones the manager claimed but no worker ran before shutdown.
	for _, n := range c.Nodes() {
		n.Release()
	}
	c.log.Info("pipeline stopped", "run_id", c.runID)
	return nil
}
