// Package audiograph is the real-time node-graph pipeline core: it owns
// the scheduler (task queue, manager goroutine, worker pool) and the
// hardware event wakeup path built on top of the graph package's
// node/port/connection model.
package audiograph

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shaban/audiograph/graph"
	"github.com/shaban/audiograph/hardware"
	"github.com/shaban/audiograph/internal/alog"
)

// ErrAlreadyStarted and ErrNotStarted guard Start/Stop against misuse, and
// ErrPipelineRunning is returned by graph mutation methods called while the
// pipeline is live, matching spec.md §5's "nodes mutated only when not
// running" rule.
var (
	ErrAlreadyStarted  = errors.New("audiograph: already started")
	ErrNotStarted      = errors.New("audiograph: not started")
	ErrPipelineRunning = graph.ErrInvalidState
)

// Option configures a Context at construction time.
type Option func(*Context)

// WithAudioHardware registers the audio collaborator backend.
func WithAudioHardware(h hardware.AudioHardware) Option {
	return func(c *Context) { c.audioHW = h }
}

// WithMidiHardware registers the MIDI collaborator backend.
func WithMidiHardware(h hardware.MidiHardware) Option {
	return func(c *Context) { c.midiHW = h }
}

// WithErrorHandler overrides the default LoggingErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Context) { c.errorHandler = h }
}

// WithWorkerCount overrides the default runtime.NumCPU() worker count.
func WithWorkerCount(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.numWorkers = n
		}
	}
}

// WithLatencyFrames overrides the ring-buffer latency every subsequent
// ConnectPorts call sizes its audio connections to (Config.LatencyFrames).
// n <= 0 is ignored, leaving graph's package default in effect.
func WithLatencyFrames(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.latencyFrames = n
		}
	}
}

// Context owns one node graph and its scheduler: the task queue, the
// manager goroutine, the worker pool, and the hardware event wakeup pair.
// It is the direct analog of genesis.cpp's GenesisContext, generalized
// per spec.md §3/§5.
type Context struct {
	*graph.DescriptorContext

	numWorkers    int
	latencyFrames int // 0 means "use graph's package default"
	errorHandler  ErrorHandler
	log           *alog.Logger
	runID         string // set fresh by Start, correlates one run's log lines

	audioHW hardware.AudioHardware
	midiHW  hardware.MidiHardware

	queue   *taskQueue
	signal  chan struct{} // buffered(1) "work may be ready" flag, the manager's taskCond
	running atomic.Bool
	workers sync.WaitGroup
	stop    chan struct{}

	eventsMu   sync.Mutex
	eventsCond *sync.Cond
}

// New creates a Context with an empty graph. Hardware backends and the
// error handler can be supplied via Options; a Context with no audio/MIDI
// hardware registered is still fully usable for graph construction and
// tests (see hardware/memhw).
func New(opts ...Option) *Context {
	ensureInitialized()
	c := &Context{
		DescriptorContext: graph.NewDescriptorContext(),
		numWorkers:        runtime.NumCPU(),
		errorHandler:      NewLoggingErrorHandler(),
		log:               alog.For("audiograph"),
		signal:            make(chan struct{}, 1),
	}
	c.eventsCond = sync.NewCond(&c.eventsMu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close stops the pipeline if running and releases hardware backends. It
// is safe to call on a Context that was never started.
func (c *Context) Close() error {
	if c.running.Load() {
		c.Stop()
	}
	var err error
	if c.audioHW != nil {
		if e := c.audioHW.Close(); e != nil {
			err = e
		}
	}
	if c.midiHW != nil {
		if e := c.midiHW.Close(); e != nil {
			err = e
		}
	}
	return err
}

// CreateNode wraps DescriptorContext's node creation, additionally
// refusing to mutate the graph while the pipeline is running — spec.md §5:
// nodes is owned exclusively by the goroutine that isn't the scheduler.
func (c *Context) CreateNode(d *graph.NodeDescriptor) (*graph.Node, error) {
	if c.running.Load() {
		return nil, ErrPipelineRunning
	}
	return d.CreateNode(c.DescriptorContext)
}

// DestroyNode wraps Node.Destroy with the same running guard as CreateNode.
func (c *Context) DestroyNode(n *graph.Node) error {
	if c.running.Load() {
		return ErrPipelineRunning
	}
	c.DescriptorContext.Destroy(n)
	return nil
}

// ConnectPorts wraps graph.ConnectWithLatency with the same running guard,
// sizing any audio connection's ring to this Context's configured latency
// (WithLatencyFrames / Config.LatencyFrames) rather than graph's built-in
// default.
func (c *Context) ConnectPorts(source, dest *graph.Port) error {
	if c.running.Load() {
		return ErrPipelineRunning
	}
	return graph.ConnectWithLatency(source, dest, c.latencyFrames)
}

// RefreshAudioDevices forces the registered audio backend to re-enumerate,
// a no-op if none is registered.
func (c *Context) RefreshAudioDevices() *hardware.AudioDevicesInfo {
	if c.audioHW == nil {
		return &hardware.AudioDevicesInfo{}
	}
	return c.audioHW.DevicesInfo()
}

// GetAudioDeviceCount returns the number of devices the audio backend
// currently reports.
func (c *Context) GetAudioDeviceCount() int {
	return len(c.RefreshAudioDevices().Devices)
}

// GetAudioDevice returns device info by index, or the zero value and false
// if index is out of range.
func (c *Context) GetAudioDevice(index int) (hardware.AudioDeviceInfo, bool) {
	devices := c.RefreshAudioDevices().Devices
	if index < 0 || index >= len(devices) {
		return hardware.AudioDeviceInfo{}, false
	}
	return devices[index], true
}

// SetAudioDeviceCallback registers the hot-plug notification callback on
// the audio backend, if one is registered.
func (c *Context) SetAudioDeviceCallback(fn hardware.DevicesChangeFunc) {
	if c.audioHW != nil {
		c.audioHW.SetOnDevicesChange(fn)
	}
}
