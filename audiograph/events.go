package audiograph

// FlushEvents drains any queued hardware device-change/event notifications
// from both registered backends without waiting, the direct analog of
// spec.md §4.8's events_mutex-guarded drain.
func (c *Context) FlushEvents() {
	if c.audioHW != nil {
		c.audioHW.FlushEvents()
	}
	if c.midiHW != nil {
		c.midiHW.FlushEvents()
	}
}

// WaitEvents flushes any events already queued, then blocks until the next
// hardware event wakeup (an audio render callback firing, a MIDI message
// arriving, or a device hot-plug). It is the control goroutine's only
// blocking point (spec.md §5); flushing before blocking, not after,
// matches genesis_context_wait_events draining the hardware queues first
// so nothing queued before the call sits unhandled until the *next*
// wakeup.
func (c *Context) WaitEvents() {
	c.FlushEvents()
	c.eventsMu.Lock()
	c.eventsCond.Wait()
	c.eventsMu.Unlock()
}

// Wakeup broadcasts to every goroutine blocked in WaitEvents and nudges the
// manager to rescan. Hardware backends call this through their
// EventsSignalFunc from their own callback goroutines; it must never
// block, matching the real-time render callback's constraints.
func (c *Context) Wakeup() {
	c.eventsMu.Lock()
	c.eventsCond.Broadcast()
	c.eventsMu.Unlock()
	c.wake()
}

// bindHardwareCallbacks sets the audio backend's events-signal callback to
// this Context's Wakeup, so each render callback both wakes a blocked
// WaitEvents caller and nudges the manager to rescan. The MIDI backend is
// not rebound here (hardware.MidiHardware receives its EventsSignalFunc at
// construction), and the device-change callback is left to
// SetAudioDeviceCallback.
func (c *Context) bindHardwareCallbacks() {
	if c.audioHW != nil {
		c.audioHW.SetOnEventsSignal(c.Wakeup)
	}
}
