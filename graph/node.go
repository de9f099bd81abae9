package graph

import "sync/atomic"

// minAudioFrames is the smallest write the scheduler considers meaningful
// when deciding whether an audio output port still has room. A port with
// fewer bytes writable than one frame at its negotiated channel count is
// treated as full even if a few stray bytes remain.
const minAudioFrames = 1

// Node is one instantiated processing unit. Its port array is allocated
// once, in descriptor order, and never resized; Destroy is the only way to
// remove it from its DescriptorContext.
type Node struct {
	Descriptor *NodeDescriptor
	Ports      []*Port

	setIndex int // position in DescriptorContext.nodes; swap-remove-compatible

	// beingProcessed is the graph-wide mutual-exclusion primitive
	// (invariant 6): at most one worker runs this node's Run at a time,
	// enforced by CAS instead of a per-node lock so the manager can scan
	// without blocking workers.
	beingProcessed atomic.Bool
}

// TryAcquire attempts to claim the node for processing, the Go equivalent
// of `!being_processed.test_and_set()`. It returns true if the caller now
// owns the node and must eventually call Release.
func (n *Node) TryAcquire() bool {
	return n.beingProcessed.CompareAndSwap(false, true)
}

// Release clears being_processed, relinquishing ownership claimed by a
// prior successful TryAcquire.
func (n *Node) Release() {
	n.beingProcessed.Store(false)
}

// PeekIdle reports whether the node is currently idle (not being
// processed) without leaving it claimed: it performs the same
// acquire-then-immediately-release dance the manager uses on child nodes
// while checking readiness (spec.md §4.6 step 3). Returns false if the
// node was already claimed by someone else.
func (n *Node) PeekIdle() bool {
	if !n.TryAcquire() {
		return false
	}
	n.Release()
	return true
}

// FindPortIndex returns the index of the port named name, or -1.
func (n *Node) FindPortIndex(name string) int {
	for i, p := range n.Ports {
		if p.Descriptor.Name == name {
			return i
		}
	}
	return -1
}

// Port returns the port at index, or nil if index is out of range
// (genesis_node_port's boundary behavior).
func (n *Node) Port(index int) *Port {
	if index < 0 || index >= len(n.Ports) {
		return nil
	}
	return n.Ports[index]
}

// AllOutputBuffersFull reports whether every output port on the node is
// currently full — i.e. the node has deposited everything it can and is
// idle-with-no-room, the "done for this round" condition the manager uses
// both to decide whether to schedule n itself and, symmetrically, whether
// an upstream producer still has work to do (spec.md §4.6, §9: this
// predicate was an unimplemented stub in the source, so this definition is
// this implementation's own). A node with no output ports at all (a pure
// sink) has no downstream back-pressure to respect, so it reports false.
func (n *Node) AllOutputBuffersFull() bool {
	sawOutput := false
	for _, p := range n.Ports {
		if !p.Descriptor.Kind.IsOut() {
			continue
		}
		sawOutput = true
		if !p.outputFull() {
			return false
		}
	}
	return sawOutput
}

// outputFull reports whether this one output port currently has no usable
// room: for audio, less than one frame's worth of bytes writable; for
// notes/param, the event channel send buffer is at capacity. An audio
// output port with no ring yet (not connected) is never "full" — it has
// nowhere to overflow, so it must not block scheduling. A notes/param
// output owns its channel from creation, so it can be full while
// unconnected.
func (p *Port) outputFull() bool {
	switch {
	case p.Descriptor.Kind == AudioOut:
		if p.ring == nil {
			return false
		}
		fb := p.frameBytes()
		if fb == 0 {
			fb = 4
		}
		return p.ring.Writable() < fb*minAudioFrames
	case p.Descriptor.Kind == NotesOut || p.Descriptor.Kind == ParamOut:
		if p.events == nil {
			return false
		}
		return len(p.events) >= cap(p.events)
	default:
		return false
	}
}

// Destroy removes n from its DescriptorContext via swap-remove, fixing the
// swapped-in node's setIndex (invariant 4), severs every edge n
// participates in (so the peer's InputFrom/OutputTo return to nil, per the
// round-trip property in spec.md §8), and releases its ports. Destroy
// tolerates a nil node and is safe to call at most once per node; it is
// not idempotent (a second call on an already-removed node is a programmer error,
// not guarded against, matching the "destroy functions must tolerate null"
// policy for the null case only).
func (ctx *DescriptorContext) Destroy(n *Node) {
	if n == nil {
		return
	}

	for _, p := range n.Ports {
		Disconnect(p)
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	last := len(ctx.nodes) - 1
	idx := n.setIndex
	ctx.nodes[idx] = ctx.nodes[last]
	ctx.nodes[idx].setIndex = idx
	ctx.nodes[last] = nil
	ctx.nodes = ctx.nodes[:last]
}
