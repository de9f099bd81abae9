package graph

import (
	"github.com/shaban/audiograph/ringbuffer"
)

// PortKind tags the six port variants a descriptor or port can take. The
// underlying type is int rather than string (unlike the teacher's
// ChannelType) because the resolver switches on it on the hot connect path.
type PortKind int

const (
	AudioIn PortKind = iota
	AudioOut
	NotesIn
	NotesOut
	ParamIn
	ParamOut
)

func (k PortKind) String() string {
	switch k {
	case AudioIn:
		return "audio_in"
	case AudioOut:
		return "audio_out"
	case NotesIn:
		return "notes_in"
	case NotesOut:
		return "notes_out"
	case ParamIn:
		return "param_in"
	case ParamOut:
		return "param_out"
	default:
		panic("graph: invalid port kind")
	}
}

// IsAudio, IsNotes, IsParam classify a kind by media, regardless of
// direction.
func (k PortKind) IsAudio() bool { return k == AudioIn || k == AudioOut }
func (k PortKind) IsNotes() bool { return k == NotesIn || k == NotesOut }
func (k PortKind) IsParam() bool { return k == ParamIn || k == ParamOut }

// IsOut, IsIn classify a kind by direction.
func (k PortKind) IsOut() bool { return k == AudioOut || k == NotesOut || k == ParamOut }
func (k PortKind) IsIn() bool  { return k == AudioIn || k == NotesIn || k == ParamIn }

// NoSiblingIndex is the "none" sentinel for PortDescriptor's
// SameChannelLayoutIndex / SameSampleRateIndex fields (-1 in the C source).
const NoSiblingIndex = -1

// ChannelLayout is the ordered set of audio channels a port carries.
// Genesis' builtin channel-layout table is out of scope (spec.md §1); this
// core only needs channel count to size buffers and compare equality, so
// ChannelLayout is kept to that minimal shape rather than modeling the full
// named-layout catalog.
type ChannelLayout struct {
	Channels int
}

// LayoutMono and LayoutStereo are the two layouts the built-in node
// descriptors and the reconciliation defaults (spec.md §4.4) use.
var (
	LayoutMono   = ChannelLayout{Channels: 1}
	LayoutStereo = ChannelLayout{Channels: 2}
)

// DefaultSampleRate is the fallback negotiated when neither side of an
// audio connection is fixed (spec.md §4.4 reconciliation table).
const DefaultSampleRate = 48000

// PortDescriptor is the immutable template for one port on a
// NodeDescriptor. Once appended via NodeDescriptor.CreatePort it is shared
// by every Node instantiated from that descriptor.
type PortDescriptor struct {
	Kind PortKind
	Name string

	// Audio-only fields; zero values on notes/param descriptors.
	ChannelLayoutFixed     bool
	SameChannelLayoutIndex int // NoSiblingIndex, or index of sibling to mirror
	ChannelLayout          ChannelLayout
	SampleRateFixed        bool
	SameSampleRateIndex    int // NoSiblingIndex, or index of sibling to mirror
	SampleRate             int
}

// Event is one timestamped MIDI-note or parameter-change event carried on
// a notes/param port. Frame is the offset within the current processing
// block the event applies at; Data holds raw note/CC payload bytes so the
// core stays agnostic to any particular event encoding.
type Event struct {
	Frame int
	Data  []byte
}

// eventQueueCapacity bounds the notes/param MPSC event list. Spec.md §4.2
// calls these ports "small; not performance-critical", so a modestly sized
// buffered channel suffices — no custom ring is needed here.
const eventQueueCapacity = 256

// Port is one concrete, instantiated endpoint on a Node. Port never changes
// Kind after creation (invariant 1); ChannelLayout/SampleRate change only
// inside Connect.
type Port struct {
	Descriptor *PortDescriptor
	Node       *Node

	InputFrom *Port
	OutputTo  *Port

	// Negotiated audio format; meaningless for notes/param ports.
	ChannelLayout ChannelLayout
	SampleRate    int

	// ring is nil until Connect allocates it for an audio edge; Connect
	// then assigns the same *ringbuffer.Ring to both the AudioOut and the
	// AudioIn end, and Disconnect clears it on both.
	ring *ringbuffer.Ring

	// events is the analogous owned/shared channel for notes/param ports.
	events chan Event
}

// newPort builds the concrete Port for a descriptor, matching
// create_port_from_descriptor's three-way dispatch. All three variants
// share the same Go struct; the switch only decides what (if anything)
// gets pre-allocated.
func newPort(descriptor *PortDescriptor, node *Node) *Port {
	p := &Port{Descriptor: descriptor, Node: node}
	switch descriptor.Kind {
	case AudioIn, AudioOut:
		// Ring is allocated lazily at connect time (spec.md §4.2).
	case NotesIn, NotesOut, ParamIn, ParamOut:
		if descriptor.Kind == NotesOut || descriptor.Kind == ParamOut {
			p.events = make(chan Event, eventQueueCapacity)
		}
	default:
		panic("graph: invalid port kind")
	}
	return p
}

// Ring returns the ring buffer backing an audio port, or nil if the port
// is not connected (on either side of the edge) or not audio at all.
func (p *Port) Ring() *ringbuffer.Ring { return p.ring }

// Events returns the event channel backing a notes/param port, or nil if
// not yet connected (the *In side) or not a notes/param port.
func (p *Port) Events() chan Event { return p.events }

// resolveChannelLayout implements genesis' resolve_channel_layout: a fixed
// port either adopts its own descriptor layout, or mirrors an already
// resolved (or itself-fixed) sibling.
func resolveChannelLayout(p *Port) {
	d := p.Descriptor
	if !d.ChannelLayoutFixed {
		return
	}
	if d.SameChannelLayoutIndex >= 0 {
		sibling := p.Node.Ports[d.SameChannelLayoutIndex]
		p.ChannelLayout = sibling.ChannelLayout
	} else {
		p.ChannelLayout = d.ChannelLayout
	}
}

// resolveSampleRate is the sample-rate analog of resolveChannelLayout.
func resolveSampleRate(p *Port) {
	d := p.Descriptor
	if !d.SampleRateFixed {
		return
	}
	if d.SameSampleRateIndex >= 0 {
		sibling := p.Node.Ports[d.SameSampleRateIndex]
		p.SampleRate = sibling.SampleRate
	} else {
		p.SampleRate = d.SampleRate
	}
}

// frameBytes is the per-frame byte footprint of 32-bit float samples at
// the port's negotiated channel count, used to size the audio ring.
func (p *Port) frameBytes() int {
	return p.ChannelLayout.Channels * 4
}
