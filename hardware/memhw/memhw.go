// Package memhw provides a deterministic hardware backend with no external
// dependencies, used by tests and by the CLI demo's
// --device=memory mode. It never touches real audio or MIDI devices; a
// caller drives it explicitly by calling Tick.
package memhw

import (
	"context"
	"sync"

	"github.com/shaban/audiograph/hardware"
)

// AudioHardware is an in-memory stand-in for a real audio device: it
// reports one fixed fake device and only signals events when Tick is
// called, so tests control the pipeline's cadence directly.
type AudioHardware struct {
	mu              sync.Mutex
	onEventsSignal  hardware.EventsSignalFunc
	onDevicesChange hardware.DevicesChangeFunc
	closed          bool
}

// NewAudioHardware returns a ready-to-use in-memory audio backend. It is
// always "ready" and always reports one device, so BlockUntilReady and
// BlockUntilHaveDevices return immediately.
func NewAudioHardware() *AudioHardware {
	return &AudioHardware{}
}

func (h *AudioHardware) SetOnDevicesChange(fn hardware.DevicesChangeFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDevicesChange = fn
}

func (h *AudioHardware) SetOnEventsSignal(fn hardware.EventsSignalFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEventsSignal = fn
}

func (h *AudioHardware) DevicesInfo() *hardware.AudioDevicesInfo {
	return &hardware.AudioDevicesInfo{
		Devices: []hardware.AudioDeviceInfo{{
			UID:               "memory",
			Name:              "In-Memory Device",
			MaxInputCount:     2,
			MaxOutputCount:    2,
			DefaultSampleRate: 48000,
		}},
		DefaultInput:  "memory",
		DefaultOutput: "memory",
	}
}

func (h *AudioHardware) FlushEvents() {}

func (h *AudioHardware) BlockUntilReady(ctx context.Context) error       { return nil }
func (h *AudioHardware) BlockUntilHaveDevices(ctx context.Context) error { return nil }

func (h *AudioHardware) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Tick simulates one hardware render callback firing, invoking the
// registered events signal exactly as a real render callback would.
func (h *AudioHardware) Tick() {
	h.mu.Lock()
	fn := h.onEventsSignal
	closed := h.closed
	h.mu.Unlock()
	if !closed && fn != nil {
		fn()
	}
}

// NotifyDevicesChanged simulates a hot-plug event for tests that exercise
// device-change handling.
func (h *AudioHardware) NotifyDevicesChanged() {
	h.mu.Lock()
	fn := h.onDevicesChange
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// MidiHardware is the matching in-memory MIDI backend.
type MidiHardware struct {
	mu     sync.Mutex
	closed bool
}

// NewMidiHardware returns an in-memory MIDI backend; name is accepted for
// interface-signature parity with real backends and otherwise ignored.
func NewMidiHardware(name string) *MidiHardware {
	return &MidiHardware{}
}

func (h *MidiHardware) FlushEvents() {}

func (h *MidiHardware) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}
