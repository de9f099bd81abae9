// Command audiographd is a small demonstration front-end for the
// audiograph pipeline core: it builds a MIDI -> synth graph (the synth's
// audio_out is not connected to a playback node) against either the
// in-memory backend or the PortAudio/PortMidi backend, starts the
// pipeline, and runs until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/shaban/audiograph/audiograph"
	"github.com/shaban/audiograph/graph"
	"github.com/shaban/audiograph/hardware"
	"github.com/shaban/audiograph/hardware/memhw"
	"github.com/shaban/audiograph/hardware/porthw"
	"github.com/shaban/audiograph/internal/alog"
)

var log = alog.For("audiographd")

func main() {
	var (
		device     = pflag.StringP("device", "d", "memory", `Hardware backend to use: "memory" or "portaudio".`)
		configPath = pflag.StringP("config", "c", "", "Path to a YAML config file (see audiograph.LoadConfig).")
		midiName   = pflag.String("midi-device", "", "MIDI input device name (portaudio backend only, empty selects the default input).")
		listDevs   = pflag.Bool("list-devices", false, "Print the audio backend's enumerated devices and exit.")
		help       = pflag.BoolP("help", "h", false, "Display help text.")
	)
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	cfg := audiograph.DefaultConfig()
	if *configPath != "" {
		loaded, err := audiograph.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("loading config", "err", err)
		}
		cfg = loaded
	}

	ctx, err := buildContext(*device, *midiName, cfg)
	if err != nil {
		log.Fatal("building context", "err", err)
	}
	defer ctx.Close()

	if *listDevs {
		printDevices(ctx)
		return
	}

	if err := buildDemoGraph(ctx); err != nil {
		log.Fatal("building demo graph", "err", err)
	}

	if err := ctx.Start(); err != nil {
		log.Fatal("starting pipeline", "err", err)
	}
	log.Info("pipeline running", "device", *device)

	go eventLoop(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("stopping pipeline")
	if err := ctx.Stop(); err != nil {
		log.Error("stopping pipeline", "err", err)
	}
}

// eventLoop is the control goroutine spec.md §5 describes: its only
// blocking point is WaitEvents. It runs for the life of the process; once
// main returns after Stop, the goroutine is simply abandoned along with
// the rest of the process's state.
func eventLoop(c *audiograph.Context) {
	for {
		c.WaitEvents()
	}
}

func buildContext(device, midiName string, cfg *audiograph.Config) (*audiograph.Context, error) {
	opts := []audiograph.Option{}
	if cfg.WorkerCount > 0 {
		opts = append(opts, audiograph.WithWorkerCount(cfg.WorkerCount))
	}
	if cfg.LatencyFrames > 0 {
		opts = append(opts, audiograph.WithLatencyFrames(cfg.LatencyFrames))
	}

	switch device {
	case "memory":
		audioHW := memhw.NewAudioHardware()
		midiHW := memhw.NewMidiHardware(midiName)
		opts = append(opts, audiograph.WithAudioHardware(audioHW), audiograph.WithMidiHardware(midiHW))
	case "portaudio":
		// AudioHardware's events-signal callback is rebound to the real
		// Context.Wakeup by Start (bindHardwareCallbacks), so nil is fine
		// here. MidiHardware has no such rebind hook (hardware.MidiHardware
		// fixes its callback at construction), so it needs this forwarding
		// indirection: the Context doesn't exist yet when NewMidiHardware
		// runs, so the callback forwards through ctxRef instead of
		// capturing a *Context directly.
		var ctxRef atomic.Pointer[audiograph.Context]
		forwardWakeup := func() {
			if c := ctxRef.Load(); c != nil {
				c.Wakeup()
			}
		}

		audioHW, err := porthw.NewAudioHardware(2, 48000, 512, cfg.PreferredDeviceUID, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("audiographd: %w", err)
		}
		midiHW, err := porthw.NewMidiHardware(midiName, forwardWakeup, nil)
		if err != nil {
			audioHW.Close()
			return nil, fmt.Errorf("audiographd: %w", err)
		}
		opts = append(opts, audiograph.WithAudioHardware(audioHW), audiograph.WithMidiHardware(midiHW))
		c := audiograph.New(opts...)
		ctxRef.Store(c)
		return c, nil
	default:
		return nil, fmt.Errorf("audiographd: unknown device backend %q", device)
	}

	return audiograph.New(opts...), nil
}

// buildDemoGraph wires a trivial notes_out -> notes_in -> audio_out chain:
// a MIDI source descriptor (no hardware decoding wired up in this demo,
// just an empty notes_out port) feeding the built-in synth descriptor. The
// synth's audio_out is left unconnected, so its Run finds no ring and
// writes nothing.
func buildDemoGraph(c *audiograph.Context) error {
	synthDesc := c.RegisterSynthDescriptor(func(notesIn, audioOut *graph.Port) error {
		buf := audioOut.Ring()
		if buf == nil {
			return nil
		}
		n := buf.Writable()
		if n == 0 {
			return nil
		}
		dst := buf.WriteSlice(n)
		for i := range dst {
			dst[i] = 0
		}
		buf.AdvanceWrite(len(dst))
		return nil
	})

	midiDesc := c.CreateNodeDescriptor(2)
	midiDesc.Name = "midi_source"
	midiDesc.CreatePort(0, graph.NotesOut)
	midiDesc.CreatePort(1, graph.ParamOut)
	midiDesc.Run = func(n *graph.Node) error { return nil }

	midiNode, err := c.CreateNode(midiDesc)
	if err != nil {
		return err
	}
	synthNode, err := c.CreateNode(synthDesc)
	if err != nil {
		return err
	}

	return c.ConnectPorts(midiNode.Ports[0], synthNode.Ports[0])
}

func printDevices(c *audiograph.Context) {
	info := c.RefreshAudioDevices()
	printDeviceList(info)
}

func printDeviceList(info *hardware.AudioDevicesInfo) {
	for _, d := range info.Devices {
		fmt.Printf("%-12s %-32s in=%d out=%d rate=%.0f\n", d.UID, d.Name, d.MaxInputCount, d.MaxOutputCount, d.DefaultSampleRate)
	}
}
