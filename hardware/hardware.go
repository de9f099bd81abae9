// Package hardware declares the collaborator contracts the pipeline core
// depends on but never implements itself: audio device I/O and MIDI device
// I/O. Device enumeration and codec support are explicitly out of scope for
// the core (see the module's expanded specification, §1); this package only
// fixes the shape a backend must have to plug into a Context.
package hardware

import "context"

// DevicesChangeFunc is invoked whenever a backend's device list changes
// (hot-plug, default-device change). The callback runs on the backend's own
// goroutine and must not block.
type DevicesChangeFunc func()

// EventsSignalFunc is invoked from a hardware callback (an audio render
// callback or a MIDI input callback) to wake the pipeline's control
// goroutine. Implementations must be safe to call from any goroutine and
// must not block.
type EventsSignalFunc func()

// AudioDeviceInfo describes one enumerated audio device.
type AudioDeviceInfo struct {
	UID             string
	Name            string
	MaxInputCount   int
	MaxOutputCount  int
	DefaultSampleRate float64
}

// AudioDevicesInfo is the enumerated snapshot returned by DevicesInfo.
type AudioDevicesInfo struct {
	Devices       []AudioDeviceInfo
	DefaultInput  string
	DefaultOutput string
}

// MIDIDeviceInfo describes one enumerated MIDI endpoint.
type MIDIDeviceInfo struct {
	UID  string
	Name string
	IsInput bool
}

// AudioHardware is the collaborator responsible for audio device I/O: it
// owns the hardware render callback and reports devices coming and going.
// The core never calls into AudioHardware's internals beyond this contract.
type AudioHardware interface {
	// SetOnDevicesChange registers the callback invoked on hot-plug events.
	SetOnDevicesChange(DevicesChangeFunc)
	// SetOnEventsSignal registers the callback invoked once per render
	// callback to wake the pipeline's control goroutine.
	SetOnEventsSignal(EventsSignalFunc)
	// DevicesInfo returns the current device snapshot.
	DevicesInfo() *AudioDevicesInfo
	// FlushEvents drains any internally queued device-change notifications.
	FlushEvents()
	// BlockUntilReady waits for the backend to finish its own
	// initialization (opening the default device, starting a stream).
	BlockUntilReady(ctx context.Context) error
	// BlockUntilHaveDevices waits until DevicesInfo will return at least
	// one device.
	BlockUntilHaveDevices(ctx context.Context) error
	// Close releases the backend's resources.
	Close() error
}

// MidiHardware is the collaborator responsible for MIDI device I/O.
type MidiHardware interface {
	// FlushEvents drains any internally queued MIDI messages.
	FlushEvents()
	// Close releases the backend's resources.
	Close() error
}

// AudioHardwareFactory constructs an AudioHardware backend bound to the
// given callbacks, deferring initialization details to the backend.
type AudioHardwareFactory func(onEventsSignal EventsSignalFunc, onDevicesChange DevicesChangeFunc) (AudioHardware, error)

// MidiHardwareFactory constructs a MidiHardware backend bound to name (a
// backend-specific device selector; the empty string means "default").
type MidiHardwareFactory func(name string, onEventsSignal EventsSignalFunc, onDevicesChange DevicesChangeFunc) (MidiHardware, error)
