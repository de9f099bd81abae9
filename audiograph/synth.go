package audiograph

import "github.com/shaban/audiograph/graph"

const synthDescriptorName = "synth"

// RegisterSynthDescriptor installs the built-in "synth" node descriptor:
// one notes_in port and one audio_out port, both unfixed so Connect
// negotiates channel layout and sample rate from whatever they're wired
// to (spec.md §4.4's both-unfixed default of mono/48kHz, if nothing more
// specific is on the other end). fn is invoked once per Run with the
// node's notes_in and audio_out ports already resolved.
func (c *Context) RegisterSynthDescriptor(fn func(notesIn, audioOut *graph.Port) error) *graph.NodeDescriptor {
	d := c.CreateNodeDescriptor(2)
	d.Name = synthDescriptorName
	d.Description = "notes-in, audio-out synthesizer node"

	d.CreatePort(0, graph.NotesIn)
	d.Ports[0].Name = "notes_in"

	d.CreatePort(1, graph.AudioOut)
	d.Ports[1].Name = "audio_out"

	d.Run = func(n *graph.Node) error {
		return fn(n.Port(0), n.Port(1))
	}
	return d
}
