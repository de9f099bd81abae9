package audiograph

import "github.com/shaban/audiograph/graph"

// taskQueue is the Go rendering of the bounded MPMC node queue from §4.5:
// a channel sized to the graph's node count so push never blocks (the
// manager is the only producer and never wants to wait on a worker), plus a
// close-once channel that broadcasts shutdown to every blocked pop for
// free — the same "closing a channel wakes every receiver" idiom the
// teacher's engine/queue.Queue relies on for its own shutdown path.
type taskQueue struct {
	ready   chan *graph.Node
	closing chan struct{}
}

func newTaskQueue(capacity int) *taskQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &taskQueue{
		ready:   make(chan *graph.Node, capacity),
		closing: make(chan struct{}),
	}
}

// push enqueues a ready node. It never blocks: capacity is always at least
// len(nodes), and a node is never pushed twice without an intervening pop
// (the manager only pushes nodes it just successfully claimed).
func (q *taskQueue) push(n *graph.Node) {
	select {
	case q.ready <- n:
	case <-q.closing:
	}
}

// pop blocks until a node is ready or the queue is closed, returning
// (nil, false) in the latter case.
func (q *taskQueue) pop() (*graph.Node, bool) {
	select {
	case n := <-q.ready:
		return n, true
	case <-q.closing:
		return nil, false
	}
}

// close wakes every blocked pop exactly once, the task_queue_wakeup()
// contract from spec.md §4.5. Safe to call at most once.
func (q *taskQueue) close() {
	close(q.closing)
}
