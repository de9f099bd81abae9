package graph

import "sync"

// DescriptorContext owns every NodeDescriptor and Node created against it,
// the way genesis.cpp's GenesisContext owns node_descriptors and nodes. It
// is the explicit handle genesis_node_descriptor_create_node should have
// taken instead of reading a free-floating `context` symbol (spec.md §9);
// threading it through CreateNode/DescriptorContext.Destroy is the fix.
//
// DescriptorContext holds only the graph-model state (C2-C4). The
// scheduler state (task queue, manager, workers) lives one level up in
// package audiograph, which embeds a *DescriptorContext.
type DescriptorContext struct {
	mu              sync.Mutex
	nodeDescriptors []*NodeDescriptor
	nodes           []*Node
}

// NewDescriptorContext creates an empty graph context.
func NewDescriptorContext() *DescriptorContext {
	return &DescriptorContext{}
}

// NodeDescriptor is the immutable template for a node: an ordered list of
// port descriptors plus the Run callback every Node instantiated from it
// will execute. Descriptors live from registration to context teardown
// and are shared immutably by every Node built from them.
type NodeDescriptor struct {
	ctx         *DescriptorContext
	Name        string
	Description string
	Ports       []*PortDescriptor

	// Run is supplied by the descriptor's owner (a synth, a hardware sink,
	// …) and is a black box to the scheduler: the core only guarantees its
	// concurrency preconditions (spec.md §1). Returning a non-nil error
	// does not stop the pipeline; it is routed to the active ErrorHandler.
	Run func(*Node) error
}

// CreateNodeDescriptor registers a new descriptor with portCount
// (initially nil) port slots, mirroring genesis_create_node_descriptor.
// Ports are filled in afterward with CreatePort.
func (c *DescriptorContext) CreateNodeDescriptor(portCount int) *NodeDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := &NodeDescriptor{ctx: c, Ports: make([]*PortDescriptor, portCount)}
	c.nodeDescriptors = append(c.nodeDescriptors, d)
	return d
}

// FindNodeDescriptor returns the descriptor registered under name, or nil.
func (c *DescriptorContext) FindNodeDescriptor(name string) *NodeDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.nodeDescriptors {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// CreatePort fills descriptor slot index with a new PortDescriptor of kind,
// mirroring genesis_node_descriptor_create_port. Returns nil if index is
// out of [0, len(Ports)) — the boundary behavior spec.md §8 requires.
func (d *NodeDescriptor) CreatePort(index int, kind PortKind) *PortDescriptor {
	if index < 0 || index >= len(d.Ports) {
		return nil
	}
	pd := &PortDescriptor{Kind: kind, SameChannelLayoutIndex: NoSiblingIndex, SameSampleRateIndex: NoSiblingIndex}
	d.Ports[index] = pd
	return pd
}

// FindPortIndex returns the index of the port descriptor named name, or -1.
func (d *NodeDescriptor) FindPortIndex(name string) int {
	for i, pd := range d.Ports {
		if pd != nil && pd.Name == name {
			return i
		}
	}
	return -1
}

// CreateNode instantiates a Node from d, registering it into ctx's node
// list. It returns ErrInvalidState if ctx is not the DescriptorContext d
// was registered against — spec.md §9's recommended resolution to the
// "descriptor reused across contexts" open question: forbid it outright.
func (d *NodeDescriptor) CreateNode(ctx *DescriptorContext) (*Node, error) {
	if ctx == nil || d.ctx != ctx {
		return nil, ErrInvalidState
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	n := &Node{Descriptor: d, Ports: make([]*Port, len(d.Ports))}
	for i, pd := range d.Ports {
		n.Ports[i] = newPort(pd, n)
	}
	n.setIndex = len(ctx.nodes)
	ctx.nodes = append(ctx.nodes, n)
	return n, nil
}

// Nodes returns a snapshot of the context's current node list. Callers
// must not mutate the pipeline (Start/Stop) concurrently with reading this
// (spec.md §5: context.nodes is mutated only by the control goroutine).
func (c *DescriptorContext) Nodes() []*Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}
