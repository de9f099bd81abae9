package porthw

import (
	"fmt"
	"sync"
	"time"

	"github.com/rakyll/portmidi"
	"gitlab.com/gomidi/midi/v2"

	"github.com/shaban/audiograph/hardware"
)

// midiPollInterval is how often the input stream is drained for new
// events; PortMidi's Go binding has no blocking read, only Poll/Read.
const midiPollInterval = 2 * time.Millisecond

// MidiHardware wraps one PortMidi input stream, decoding each raw event
// with gitlab.com/gomidi/midi/v2 into a typed Message before dispatch.
type MidiHardware struct {
	mu      sync.Mutex
	stream  *portmidi.Stream
	done    chan struct{}
	onEvent hardware.EventsSignalFunc

	// Decoded holds the most recently decoded messages pending a FlushEvents
	// call, standing in for the node graph's notes_out ports a concrete
	// source node would drain from. A real MIDI-source NodeDescriptor reads
	// this list from its Run callback.
	Decoded []midi.Message
}

// NewMidiHardware opens the PortMidi input device named name (or the
// default input device if name is empty) and starts a background goroutine
// polling it at midiPollInterval.
func NewMidiHardware(name string, onEventsSignal hardware.EventsSignalFunc, onDevicesChange hardware.DevicesChangeFunc) (*MidiHardware, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("porthw: portmidi init: %w", err)
	}

	devID, err := findInputDevice(name)
	if err != nil {
		portmidi.Terminate()
		return nil, err
	}

	stream, err := portmidi.NewInputStream(devID, 256)
	if err != nil {
		portmidi.Terminate()
		return nil, fmt.Errorf("porthw: open midi input: %w", err)
	}

	h := &MidiHardware{stream: stream, done: make(chan struct{}), onEvent: onEventsSignal}
	go h.pollLoop()
	return h, nil
}

func findInputDevice(name string) (portmidi.DeviceID, error) {
	count := portmidi.CountDevices()
	var fallback portmidi.DeviceID = -1
	for i := 0; i < count; i++ {
		id := portmidi.DeviceID(i)
		info := portmidi.Info(id)
		if info == nil || !info.IsInputAvailable {
			continue
		}
		if fallback < 0 {
			fallback = id
		}
		if name != "" && info.Name == name {
			return id, nil
		}
	}
	if name == "" && fallback >= 0 {
		return fallback, nil
	}
	return 0, fmt.Errorf("porthw: no matching midi input device %q", name)
}

func (h *MidiHardware) pollLoop() {
	ticker := time.NewTicker(midiPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			events, err := h.stream.Read()
			if err != nil || len(events) == 0 {
				continue
			}
			h.mu.Lock()
			for _, e := range events {
				h.Decoded = append(h.Decoded, decodeEvent(e))
			}
			fn := h.onEvent
			h.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// decodeEvent converts one raw PortMidi status/data byte triple into a
// gomidi Message, the boundary where this backend stops speaking PortMidi
// and starts speaking a library-neutral MIDI representation.
func decodeEvent(e portmidi.Event) midi.Message {
	return midi.Message([]byte{byte(e.Status), byte(e.Data1), byte(e.Data2)})
}

// FlushEvents discards the buffered decoded messages, clearing Decoded for
// the next round. It returns nothing.
func (h *MidiHardware) FlushEvents() {
	h.mu.Lock()
	h.Decoded = h.Decoded[:0]
	h.mu.Unlock()
}

func (h *MidiHardware) Close() error {
	close(h.done)
	h.mu.Lock()
	stream := h.stream
	h.mu.Unlock()
	var err error
	if stream != nil {
		err = stream.Close()
	}
	portmidi.Terminate()
	return err
}
