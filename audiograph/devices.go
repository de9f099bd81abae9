package audiograph

import (
	"github.com/shaban/audiograph/graph"
	"github.com/shaban/audiograph/hardware"
)

// AudioDeviceCreateNodeDescriptor builds the descriptor for one playback
// device: a single fixed audio_in port whose channel layout and sample
// rate mirror the device's native format (spec.md §6's
// audio_device_create_node_descriptor). run is invoked once per Run with
// that port already resolved; a real backend's run callback hands the
// port's ring contents to the hardware render callback.
//
// dev must be a playback-capable device (MaxOutputCount > 0); a
// recording-only device returns ErrInvalidState, matching the boundary
// behavior in spec.md §8.
func (c *Context) AudioDeviceCreateNodeDescriptor(dev hardware.AudioDeviceInfo, run func(in *graph.Port) error) (*graph.NodeDescriptor, error) {
	if dev.MaxOutputCount <= 0 {
		return nil, graph.ErrInvalidState
	}

	d := c.CreateNodeDescriptor(1)
	d.Name = "playback:" + dev.UID
	d.Description = "audio playback sink for " + dev.Name

	pd := d.CreatePort(0, graph.AudioIn)
	pd.Name = "audio_in"
	pd.ChannelLayoutFixed = true
	pd.ChannelLayout = deviceChannelLayout(dev.MaxOutputCount)
	pd.SampleRateFixed = true
	pd.SampleRate = int(dev.DefaultSampleRate)

	d.Run = func(n *graph.Node) error {
		if run == nil {
			return nil
		}
		return run(n.Port(0))
	}
	return d, nil
}

// deviceChannelLayout maps a device's reported output-channel count onto
// the two layouts this core models (spec.md §1: the full channel-layout
// builtin table is an external collaborator, out of scope here).
func deviceChannelLayout(channels int) graph.ChannelLayout {
	if channels >= 2 {
		return graph.LayoutStereo
	}
	return graph.LayoutMono
}

// MidiDeviceCreateNodeDescriptor builds the descriptor for one MIDI input
// device: notes_out and param_out, both unconstrained (spec.md §6's
// midi_device_create_node_descriptor). run is invoked once per Run with
// both ports already resolved.
func (c *Context) MidiDeviceCreateNodeDescriptor(dev hardware.MIDIDeviceInfo, run func(notesOut, paramOut *graph.Port) error) *graph.NodeDescriptor {
	d := c.CreateNodeDescriptor(2)
	d.Name = "midi:" + dev.UID
	d.Description = "MIDI source for " + dev.Name

	d.CreatePort(0, graph.NotesOut)
	d.Ports[0].Name = "notes_out"
	d.CreatePort(1, graph.ParamOut)
	d.Ports[1].Name = "param_out"

	d.Run = func(n *graph.Node) error {
		if run == nil {
			return nil
		}
		return run(n.Port(0), n.Port(1))
	}
	return d
}
