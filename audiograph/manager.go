package audiograph

import "github.com/shaban/audiograph/graph"

// runManager is the single scan-and-dispatch goroutine of spec.md §4.6. It
// owns no locks of its own: readiness is decided purely from the
// being_processed CAS and each node's AllOutputBuffersFull, so the scan
// never blocks a worker and a worker never blocks the scan.
func (c *Context) runManager() {
	defer c.workers.Done()

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		nodes := c.Nodes()
		for _, n := range nodes {
			if !n.TryAcquire() {
				continue
			}
			if n.AllOutputBuffersFull() {
				n.Release()
				continue
			}
			if !c.inputsReady(n) {
				n.Release()
				continue
			}
			c.queue.push(n)
		}

		select {
		case <-c.stop:
			return
		case <-c.signal:
		}
	}
}

// inputsReady reports whether every node feeding one of n's input ports has
// either finished producing for this round (AllOutputBuffersFull) or is not
// connected at all. If a producer is currently claimed by a worker, or is
// idle but still has output room (meaning it intends to produce more before
// yielding), n is not ready yet this round.
func (c *Context) inputsReady(n *graph.Node) bool {
	for _, p := range n.Ports {
		if !p.Descriptor.Kind.IsIn() {
			continue
		}
		src := p.InputFrom
		if src == nil {
			continue
		}
		producer := src.Node
		if !producer.PeekIdle() {
			return false
		}
		if !producer.AllOutputBuffersFull() {
			return false
		}
	}
	return true
}

// wake signals the manager that scheduling state may have changed (a
// worker finished a node, or a hardware callback fired). The send is
// advisory and never blocks: a full signal channel means a wakeup is
// already pending, so dropping this one changes nothing (spec.md §4.7).
func (c *Context) wake() {
	select {
	case c.signal <- struct{}{}:
	default:
	}
}
