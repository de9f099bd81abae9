package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func synthDescriptor(ctx *DescriptorContext) *NodeDescriptor {
	d := ctx.CreateNodeDescriptor(2)
	d.Name = "synth"
	d.CreatePort(0, NotesIn)
	d.CreatePort(1, AudioOut)
	return d
}

func sinkDescriptor(ctx *DescriptorContext) *NodeDescriptor {
	d := ctx.CreateNodeDescriptor(2)
	d.Name = "sink"
	d.CreatePort(0, NotesOut)
	d.CreatePort(1, AudioIn)
	return d
}

// invariant 1: a port's Kind never changes after creation.
func TestPortKindImmutable(t *testing.T) {
	ctx := NewDescriptorContext()
	d := synthDescriptor(ctx)
	n, err := d.CreateNode(ctx)
	require.NoError(t, err)

	kind := n.Ports[0].Descriptor.Kind
	assert.Equal(t, kind, n.Ports[0].Descriptor.Kind)
}

// invariant 4: destroying a node swap-removes it and fixes the swapped
// node's setIndex, leaving every other node's identity and index valid.
func TestDestroyFixesSwappedIndex(t *testing.T) {
	ctx := NewDescriptorContext()
	d := synthDescriptor(ctx)

	a, err := d.CreateNode(ctx)
	require.NoError(t, err)
	b, err := d.CreateNode(ctx)
	require.NoError(t, err)
	c, err := d.CreateNode(ctx)
	require.NoError(t, err)

	require.Equal(t, 0, a.setIndex)
	require.Equal(t, 1, b.setIndex)
	require.Equal(t, 2, c.setIndex)

	ctx.Destroy(a)

	assert.Equal(t, 0, c.setIndex, "last node should have been swapped into the destroyed slot")
	assert.Len(t, ctx.Nodes(), 2)
	assert.Contains(t, ctx.Nodes(), b)
	assert.Contains(t, ctx.Nodes(), c)
}

// round-trip property: Connect then Disconnect restores both sides to nil.
func TestConnectDisconnectRoundTripAudio(t *testing.T) {
	ctx := NewDescriptorContext()
	sd, kd := synthDescriptor(ctx), sinkDescriptor(ctx)

	src, err := sd.CreateNode(ctx)
	require.NoError(t, err)
	dst, err := kd.CreateNode(ctx)
	require.NoError(t, err)

	out, in := src.Ports[1], dst.Ports[1]
	require.NoError(t, Connect(out, in))
	assert.NotNil(t, out.OutputTo)
	assert.NotNil(t, in.InputFrom)
	assert.NotNil(t, out.Ring())

	require.NoError(t, Disconnect(out))
	assert.Nil(t, out.OutputTo)
	assert.Nil(t, in.InputFrom)
	assert.Nil(t, out.Ring())
	assert.Nil(t, in.Ring())
}

func TestConnectDisconnectRoundTripNotes(t *testing.T) {
	ctx := NewDescriptorContext()
	sd, kd := sinkDescriptor(ctx), synthDescriptor(ctx)

	srcNode, err := sd.CreateNode(ctx)
	require.NoError(t, err)
	dstNode, err := kd.CreateNode(ctx)
	require.NoError(t, err)

	out, in := srcNode.Ports[0], dstNode.Ports[0]
	require.NoError(t, Connect(out, in))
	assert.NotNil(t, out.OutputTo)
	assert.NotNil(t, in.InputFrom)

	require.NoError(t, Disconnect(in))
	assert.Nil(t, out.OutputTo)
	assert.Nil(t, in.InputFrom)
	assert.Nil(t, in.Events())
}

// Disconnect twice is a no-op (idempotence).
func TestDisconnectIdempotent(t *testing.T) {
	ctx := NewDescriptorContext()
	sd, kd := synthDescriptor(ctx), sinkDescriptor(ctx)
	src, _ := sd.CreateNode(ctx)
	dst, _ := kd.CreateNode(ctx)
	out := src.Ports[1]

	require.NoError(t, Disconnect(out))
	require.NoError(t, Disconnect(out))
	require.NoError(t, Connect(out, dst.Ports[1]))
	require.NoError(t, Disconnect(out))
	require.NoError(t, Disconnect(out))
}

func TestCreateNodeRejectsForeignContext(t *testing.T) {
	ctxA := NewDescriptorContext()
	ctxB := NewDescriptorContext()
	d := synthDescriptor(ctxA)

	_, err := d.CreateNode(ctxB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestParamConnectionUnimplemented(t *testing.T) {
	ctx := NewDescriptorContext()
	d := ctx.CreateNodeDescriptor(2)
	d.CreatePort(0, ParamOut)
	d.CreatePort(1, ParamIn)
	n, err := d.CreateNode(ctx)
	require.NoError(t, err)

	err = Connect(n.Ports[0], n.Ports[1])
	assert.True(t, errors.Is(err, ErrUnimplemented))
}

func TestOutOfRangeCreatePortReturnsNil(t *testing.T) {
	ctx := NewDescriptorContext()
	d := ctx.CreateNodeDescriptor(1)
	assert.Nil(t, d.CreatePort(-1, AudioIn))
	assert.Nil(t, d.CreatePort(1, AudioIn))
	assert.NotNil(t, d.CreatePort(0, AudioIn))
}

// both-unfixed audio connections default to mono/48kHz (spec.md reconciliation table).
func TestBothUnfixedDefaultsToMonoAnd48k(t *testing.T) {
	ctx := NewDescriptorContext()
	sd, kd := synthDescriptor(ctx), sinkDescriptor(ctx)
	src, _ := sd.CreateNode(ctx)
	dst, _ := kd.CreateNode(ctx)

	require.NoError(t, Connect(src.Ports[1], dst.Ports[1]))
	assert.Equal(t, LayoutMono, src.Ports[1].ChannelLayout)
	assert.Equal(t, DefaultSampleRate, src.Ports[1].SampleRate)
}

func TestFixedSampleRateMismatchFails(t *testing.T) {
	ctx := NewDescriptorContext()
	sd := ctx.CreateNodeDescriptor(1)
	pd := sd.CreatePort(0, AudioOut)
	pd.SampleRateFixed = true
	pd.SampleRate = 44100

	kd := ctx.CreateNodeDescriptor(1)
	qd := kd.CreatePort(0, AudioIn)
	qd.SampleRateFixed = true
	qd.SampleRate = 48000

	src, _ := sd.CreateNode(ctx)
	dst, _ := kd.CreateNode(ctx)

	err := Connect(src.Ports[0], dst.Ports[0])
	assert.True(t, errors.Is(err, ErrIncompatibleSampleRates))
}

// property: any sequence of Create/Destroy on a single descriptor leaves
// ctx.Nodes() containing exactly the surviving nodes, each with a valid
// index into that same slice.
func TestNodeLifecyclePropertyBased(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := NewDescriptorContext()
		d := synthDescriptor(ctx)

		var alive []*Node
		steps := rapid.SliceOfN(rapid.IntRange(0, 1), 1, 30).Draw(t, "steps")
		for _, step := range steps {
			if step == 0 || len(alive) == 0 {
				n, err := d.CreateNode(ctx)
				require.NoError(t, err)
				alive = append(alive, n)
			} else {
				idx := rapid.IntRange(0, len(alive)-1).Draw(t, "victim")
				ctx.Destroy(alive[idx])
				alive = append(alive[:idx], alive[idx+1:]...)
			}
		}

		nodes := ctx.Nodes()
		require.Len(t, nodes, len(alive))
		for _, n := range nodes {
			require.GreaterOrEqual(t, n.setIndex, 0)
			require.Less(t, n.setIndex, len(nodes))
			require.Same(t, n, nodes[n.setIndex])
		}
	})
}
