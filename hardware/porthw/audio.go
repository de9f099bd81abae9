// Package porthw implements the hardware collaborator contracts against
// PortAudio (audio I/O) and PortMidi + gomidi (MIDI I/O), the cross-platform
// backend used outside of tests and demos.
package porthw

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/shaban/audiograph/hardware"
)

// AudioHardware wraps a single PortAudio duplex stream, invoking the
// registered EventsSignalFunc once per render callback the way a CoreAudio
// render callback would.
type AudioHardware struct {
	mu              sync.Mutex
	onEventsSignal  hardware.EventsSignalFunc
	onDevicesChange hardware.DevicesChangeFunc

	stream *portaudio.Stream
	ready  atomic.Bool
}

// NewAudioHardware initializes PortAudio and opens a duplex stream at
// channels/sampleRate/framesPerBuffer. preferredDeviceUID selects a
// specific device by the UID DevicesInfo reports (its PortAudio device
// name); the empty string opens PortAudio's default duplex stream. The
// returned backend calls onEventsSignal from PortAudio's own callback
// goroutine on every buffer.
func NewAudioHardware(channels int, sampleRate float64, framesPerBuffer int, preferredDeviceUID string,
	onEventsSignal hardware.EventsSignalFunc, onDevicesChange hardware.DevicesChangeFunc) (*AudioHardware, error) {

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("porthw: portaudio init: %w", err)
	}

	h := &AudioHardware{onEventsSignal: onEventsSignal, onDevicesChange: onDevicesChange}

	stream, err := openStream(channels, sampleRate, framesPerBuffer, preferredDeviceUID, h.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("porthw: open stream: %w", err)
	}
	h.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("porthw: start stream: %w", err)
	}
	h.ready.Store(true)
	return h, nil
}

// openStream opens the duplex stream for both channels on preferredDeviceUID
// if given, falling back to PortAudio's default stream otherwise.
func openStream(channels int, sampleRate float64, framesPerBuffer int, preferredDeviceUID string,
	callback func(in, out []float32)) (*portaudio.Stream, error) {

	if preferredDeviceUID == "" {
		return portaudio.OpenDefaultStream(channels, channels, sampleRate, framesPerBuffer, callback)
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	var dev *portaudio.DeviceInfo
	for _, d := range devices {
		if d.Name == preferredDeviceUID {
			dev = d
			break
		}
	}
	if dev == nil {
		return nil, fmt.Errorf("preferred device %q not found", preferredDeviceUID)
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowOutputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}
	return portaudio.OpenStream(params, callback)
}

// callback is PortAudio's render callback: it must not block, allocate, or
// call back into anything but the registered signal func.
func (h *AudioHardware) callback(in, out []float32) {
	for i := range out {
		out[i] = 0
	}
	h.mu.Lock()
	fn := h.onEventsSignal
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
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
	devices, err := portaudio.Devices()
	if err != nil {
		return &hardware.AudioDevicesInfo{}
	}

	info := &hardware.AudioDevicesInfo{}
	for _, d := range devices {
		info.Devices = append(info.Devices, hardware.AudioDeviceInfo{
			UID:               d.Name,
			Name:              d.Name,
			MaxInputCount:     d.MaxInputChannels,
			MaxOutputCount:    d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
		})
	}
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		info.DefaultInput = def.Name
	}
	if def, err := portaudio.DefaultOutputDevice(); err == nil && def != nil {
		info.DefaultOutput = def.Name
	}
	return info
}

// FlushEvents is a no-op: PortAudio delivers its callback directly rather
// than through a queue this backend drains.
func (h *AudioHardware) FlushEvents() {}

func (h *AudioHardware) BlockUntilReady(ctx context.Context) error {
	if h.ready.Load() {
		return nil
	}
	return ctx.Err()
}

func (h *AudioHardware) BlockUntilHaveDevices(ctx context.Context) error {
	for {
		devices, err := portaudio.Devices()
		if err != nil {
			return fmt.Errorf("porthw: enumerate devices: %w", err)
		}
		if len(devices) > 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (h *AudioHardware) Close() error {
	var err error
	if h.stream != nil {
		err = h.stream.Close()
	}
	portaudio.Terminate()
	return err
}
