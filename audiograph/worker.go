package audiograph

import "github.com/shaban/audiograph/graph"

// runWorker is one of runtime.NumCPU() (or WithWorkerCount) pool goroutines
// from spec.md §4.7. A worker never touches the graph's node list and never
// imports package hardware; it only pops, runs, reports, and clears.
func (c *Context) runWorker() {
	defer c.workers.Done()

	for {
		n, ok := c.queue.pop()
		if !ok {
			return
		}
		c.runNode(n)
		n.Release()
		c.wake()
	}
}

func (c *Context) runNode(n *graph.Node) {
	if n.Descriptor.Run == nil {
		return
	}
	if err := n.Descriptor.Run(n); err != nil {
		c.errorHandler.HandleNodeError(n, err)
	}
}
