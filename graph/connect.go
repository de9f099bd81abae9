package graph

import "github.com/shaban/audiograph/ringbuffer"

// defaultLatencyFrames is the number of frames of slack an audio
// connection's ring buffer carries beyond a single processing block, so a
// producer can run one round ahead of its consumer without stalling
// (spec.md §4.2 "latency-samples"). The ring is sized to twice this many
// frames so the producer and consumer can each be mid-block without either
// side observing a full or empty buffer as a hard stop. Connect uses this
// value directly; ConnectWithLatency lets a caller override it.
const defaultLatencyFrames = 4096

// Connect wires source's output to dest's input, following the six-step
// algorithm in spec.md §4.2/§4.4: direction check, media-kind check, audio
// format negotiation (fixed/unfixed reconciliation), edge installation,
// and (for audio) ring allocation. Notes and param connections skip
// negotiation and allocation entirely — they carry no format to agree on.
// The audio ring is sized to the package default latency; callers that
// need an operator-configured latency (audiograph.Config.LatencyFrames)
// should use ConnectWithLatency instead.
func Connect(source, dest *Port) error {
	return connect(source, dest, defaultLatencyFrames)
}

// ConnectWithLatency behaves exactly like Connect but sizes an audio
// connection's ring to latencyFrames instead of the package default
// (spec.md §4.2's "latency-samples", surfaced to operators as
// audiograph.Config.LatencyFrames). latencyFrames <= 0 falls back to the
// package default. Non-audio connections ignore latencyFrames entirely.
func ConnectWithLatency(source, dest *Port, latencyFrames int) error {
	if latencyFrames <= 0 {
		latencyFrames = defaultLatencyFrames
	}
	return connect(source, dest, latencyFrames)
}

func connect(source, dest *Port, latencyFrames int) error {
	if source == nil || dest == nil {
		return ErrInvalidState
	}
	if !source.Descriptor.Kind.IsOut() || !dest.Descriptor.Kind.IsIn() {
		return ErrInvalidPortDirection
	}

	sk, dk := source.Descriptor.Kind, dest.Descriptor.Kind
	switch {
	case sk.IsAudio() && dk.IsAudio():
		return connectAudio(source, dest, latencyFrames)
	case sk.IsNotes() && dk.IsNotes():
		return connectEvents(source, dest)
	case sk.IsParam() && dk.IsParam():
		// Param connection is intentionally unimplemented (spec.md §9):
		// the source stubbed param negotiation out entirely, and nothing
		// in this core depends on it existing yet.
		return ErrUnimplemented
	default:
		return ErrIncompatiblePorts
	}
}

// connectAudio implements the reconciliation table from spec.md §4.4:
//
//	both fixed    -> must already match, or fail
//	both unfixed  -> default to mono / 48kHz
//	one fixed     -> the unfixed side copies the fixed side's value
func connectAudio(source, dest *Port, latencyFrames int) error {
	resolveChannelLayout(source)
	resolveChannelLayout(dest)
	resolveSampleRate(source)
	resolveSampleRate(dest)

	layout, err := reconcileChannelLayout(source, dest)
	if err != nil {
		return err
	}
	rate, err := reconcileSampleRate(source, dest)
	if err != nil {
		return err
	}

	source.ChannelLayout, dest.ChannelLayout = layout, layout
	source.SampleRate, dest.SampleRate = rate, rate

	if dest.InputFrom != nil {
		disconnectAudio(dest)
	}
	if source.OutputTo != nil {
		disconnectAudio(source)
	}

	frameBytes := layout.Channels * 4
	ring := ringbuffer.New(frameBytes * latencyFrames * 2)

	source.ring = ring
	dest.ring = ring
	source.OutputTo = dest
	dest.InputFrom = source
	return nil
}

func reconcileChannelLayout(source, dest *Port) (ChannelLayout, error) {
	sf, df := source.Descriptor.ChannelLayoutFixed, dest.Descriptor.ChannelLayoutFixed
	switch {
	case sf && df:
		if source.ChannelLayout != dest.ChannelLayout {
			return ChannelLayout{}, ErrIncompatibleChannelLayouts
		}
		return source.ChannelLayout, nil
	case sf && !df:
		return source.ChannelLayout, nil
	case !sf && df:
		return dest.ChannelLayout, nil
	default:
		return LayoutMono, nil
	}
}

func reconcileSampleRate(source, dest *Port) (int, error) {
	sf, df := source.Descriptor.SampleRateFixed, dest.Descriptor.SampleRateFixed
	switch {
	case sf && df:
		if source.SampleRate != dest.SampleRate {
			return 0, ErrIncompatibleSampleRates
		}
		return source.SampleRate, nil
	case sf && !df:
		return source.SampleRate, nil
	case !sf && df:
		return dest.SampleRate, nil
	default:
		return DefaultSampleRate, nil
	}
}

// connectEvents wires a notes port pair: no negotiation, just sharing the
// source's already-allocated event channel with the destination.
func connectEvents(source, dest *Port) error {
	if dest.InputFrom != nil {
		disconnectEvents(dest)
	}
	if source.OutputTo != nil {
		disconnectEvents(source)
	}
	dest.events = source.events
	source.OutputTo = dest
	dest.InputFrom = source
	return nil
}

// Disconnect severs whatever edge port participates in, on either side,
// tolerating an already-unconnected or nil port (spec.md §8 idempotence
// property: Disconnect followed by Disconnect is a no-op).
func Disconnect(port *Port) error {
	if port == nil {
		return nil
	}
	switch {
	case port.Descriptor.Kind.IsAudio():
		disconnectAudio(port)
	case port.Descriptor.Kind.IsNotes(), port.Descriptor.Kind.IsParam():
		disconnectEvents(port)
	}
	return nil
}

func disconnectAudio(port *Port) {
	var in, out *Port
	if port.Descriptor.Kind.IsOut() {
		out, in = port, port.OutputTo
	} else {
		in, out = port, port.InputFrom
	}
	if out != nil {
		out.OutputTo = nil
		out.ring = nil
	}
	if in != nil {
		in.InputFrom = nil
		in.ring = nil
	}
}

// disconnectEvents tears down a notes/param edge. The Out side owns its
// event channel for life (allocated once in newPort); only the In side's
// borrowed reference is cleared.
func disconnectEvents(port *Port) {
	var in, out *Port
	if port.Descriptor.Kind.IsOut() {
		out, in = port, port.OutputTo
	} else {
		in, out = port, port.InputFrom
	}
	if out != nil {
		out.OutputTo = nil
	}
	if in != nil {
		in.InputFrom = nil
		in.events = nil
	}
}
