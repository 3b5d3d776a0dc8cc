package consoledump

import "sync/atomic"

// DebugSwitch provides thread-safe, runtime control of debug rendering.
// An Extension built with WithDebugSwitch renders dumps only while the
// switch is on, so a running server can turn dumps on and off without
// re-parsing its templates.
type DebugSwitch struct {
	enabled atomic.Bool
}

// NewDebugSwitch creates a switch with the given initial state.
func NewDebugSwitch(enabled bool) *DebugSwitch {
	ds := &DebugSwitch{}
	ds.Set(enabled)
	return ds
}

// Enabled reports whether debug rendering is on.
func (ds *DebugSwitch) Enabled() bool {
	return ds.enabled.Load()
}

// Set turns debug rendering on or off.
// This operation is thread-safe and takes effect immediately.
func (ds *DebugSwitch) Set(enabled bool) {
	ds.enabled.Store(enabled)
}

// On turns debug rendering on.
func (ds *DebugSwitch) On() *DebugSwitch {
	ds.Set(true)
	return ds
}

// Off turns debug rendering off.
func (ds *DebugSwitch) Off() *DebugSwitch {
	ds.Set(false)
	return ds
}
