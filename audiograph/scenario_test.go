package audiograph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaban/audiograph/graph"
	"github.com/shaban/audiograph/hardware"
	"github.com/shaban/audiograph/hardware/memhw"
)

// Scenario 1: build the synth descriptor and check its port shape.
func TestScenarioBuildSynthDescriptor(t *testing.T) {
	c := New(WithAudioHardware(memhw.NewAudioHardware()), WithMidiHardware(memhw.NewMidiHardware("")))
	defer c.Close()

	d := c.RegisterSynthDescriptor(func(notesIn, audioOut *graph.Port) error { return nil })

	found := c.FindNodeDescriptor("synth")
	require.NotNil(t, found)
	require.Same(t, d, found)

	require.Len(t, found.Ports, 2)
	assert.Equal(t, graph.NotesIn, found.Ports[0].Kind)
	assert.Equal(t, "notes_in", found.Ports[0].Name)
	assert.Equal(t, graph.AudioOut, found.Ports[1].Kind)
	assert.Equal(t, "audio_out", found.Ports[1].Name)
	assert.False(t, found.Ports[1].ChannelLayoutFixed)
	assert.False(t, found.Ports[1].SampleRateFixed)
}

// Scenario 2: MIDI -> synth -> playback, where the playback device is
// fixed at stereo @ 44,100 Hz. After connecting, synth.audio_out must have
// negotiated to that same stereo/44,100 format.
func TestScenarioMidiSynthPlayback(t *testing.T) {
	c := New()
	defer c.Close()

	midiDesc := c.MidiDeviceCreateNodeDescriptor(hardware.MIDIDeviceInfo{UID: "midi0", Name: "Test Keyboard", IsInput: true}, nil)
	synthDesc := c.RegisterSynthDescriptor(func(notesIn, audioOut *graph.Port) error { return nil })

	playbackDev := hardware.AudioDeviceInfo{
		UID: "out0", Name: "Test Interface",
		MaxOutputCount: 2, DefaultSampleRate: 44100,
	}
	playbackDesc, err := c.AudioDeviceCreateNodeDescriptor(playbackDev, nil)
	require.NoError(t, err)

	midiNode, err := c.CreateNode(midiDesc)
	require.NoError(t, err)
	synthNode, err := c.CreateNode(synthDesc)
	require.NoError(t, err)
	playbackNode, err := c.CreateNode(playbackDesc)
	require.NoError(t, err)

	require.NoError(t, c.ConnectPorts(midiNode.Ports[0], synthNode.Ports[0]))
	require.NoError(t, c.ConnectPorts(synthNode.Ports[1], playbackNode.Ports[0]))

	assert.Equal(t, graph.LayoutStereo, synthNode.Ports[1].ChannelLayout)
	assert.Equal(t, 44100, synthNode.Ports[1].SampleRate)
	assert.Equal(t, graph.LayoutStereo, playbackNode.Ports[0].ChannelLayout)
	assert.Equal(t, 44100, playbackNode.Ports[0].SampleRate)
}

// Scenario 3: connecting an already-resolved synth output to a second,
// differently-fixed playback device overwrites the first edge rather than
// coexisting with it (the single-edge invariant), and the synth port
// re-negotiates to the second device's format.
func TestScenarioReconnectOverwritesPriorEdge(t *testing.T) {
	c := New()
	defer c.Close()

	synthDesc := c.RegisterSynthDescriptor(func(notesIn, audioOut *graph.Port) error { return nil })
	synthNode, err := c.CreateNode(synthDesc)
	require.NoError(t, err)

	dev1 := hardware.AudioDeviceInfo{UID: "out1", MaxOutputCount: 2, DefaultSampleRate: 44100}
	desc1, err := c.AudioDeviceCreateNodeDescriptor(dev1, nil)
	require.NoError(t, err)
	node1, err := c.CreateNode(desc1)
	require.NoError(t, err)

	dev2 := hardware.AudioDeviceInfo{UID: "out2", MaxOutputCount: 2, DefaultSampleRate: 48000}
	desc2, err := c.AudioDeviceCreateNodeDescriptor(dev2, nil)
	require.NoError(t, err)
	node2, err := c.CreateNode(desc2)
	require.NoError(t, err)

	require.NoError(t, c.ConnectPorts(synthNode.Ports[1], node1.Ports[0]))
	assert.Equal(t, 44100, synthNode.Ports[1].SampleRate)

	require.NoError(t, c.ConnectPorts(synthNode.Ports[1], node2.Ports[0]))
	assert.Equal(t, 48000, synthNode.Ports[1].SampleRate, "second connect must overwrite, re-negotiating to the second device")

	assert.Nil(t, node1.Ports[0].InputFrom, "the overwritten first edge must be fully severed")
	assert.Same(t, node2.Ports[0], synthNode.Ports[1].OutputTo)
}

// Scenario 4: Start immediately followed by Stop must return nil/nil and
// exit every goroutine within a bounded time.
func TestScenarioStartStopBounded(t *testing.T) {
	c := New(WithAudioHardware(memhw.NewAudioHardware()))
	defer c.Close()

	d := c.CreateNodeDescriptor(1)
	d.CreatePort(0, graph.AudioOut)
	d.Run = func(n *graph.Node) error { return nil }
	_, err := c.CreateNode(d)
	require.NoError(t, err)

	require.NoError(t, c.Start())

	done := make(chan error, 1)
	go func() { done <- c.Stop() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return within the bounded time")
	}
}

// Scenario 5: connecting a source-shaped audio_in to a dest-shaped
// audio_out (direction swapped) fails with InvalidPortDirection.
func TestScenarioDirectionError(t *testing.T) {
	c := New()
	defer c.Close()

	d := c.CreateNodeDescriptor(2)
	inPort := d.CreatePort(0, graph.AudioIn)
	inPort.Name = "audio_in"
	outPort := d.CreatePort(1, graph.AudioOut)
	outPort.Name = "audio_out"

	n, err := c.CreateNode(d)
	require.NoError(t, err)

	err = c.ConnectPorts(n.Ports[0], n.Ports[1])
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrInvalidPortDirection)
}

// Boundary behavior: a recording-only device cannot build a playback node
// descriptor.
func TestAudioDeviceDescriptorRejectsRecordingOnlyDevice(t *testing.T) {
	c := New()
	defer c.Close()

	recordOnly := hardware.AudioDeviceInfo{UID: "in0", MaxInputCount: 2, MaxOutputCount: 0, DefaultSampleRate: 48000}
	_, err := c.AudioDeviceCreateNodeDescriptor(recordOnly, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidState)
}
