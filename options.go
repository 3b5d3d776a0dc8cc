package consoledump

// config holds the configuration for building an Extension.
type config struct {
	debug       func() bool
	scriptNonce string
}

// Option is a functional option for configuring an Extension.
type Option func(*config)

// WithDebug sets a fixed debug mode. Dumps render only in debug mode.
func WithDebug(enabled bool) Option {
	return func(c *config) {
		c.debug = func() bool { return enabled }
	}
}

// WithDebugFunc asks fn on every dump whether the current render is a debug
// render. A nil fn means debug mode is off.
func WithDebugFunc(fn func() bool) Option {
	return func(c *config) {
		c.debug = fn
	}
}

// WithDebugSwitch ties debug mode to a DebugSwitch.
func WithDebugSwitch(ds *DebugSwitch) Option {
	return func(c *config) {
		if ds == nil {
			c.debug = nil
			return
		}
		c.debug = ds.Enabled
	}
}

// WithScriptNonce sets the nonce used when a dump call passes none.
func WithScriptNonce(nonce string) Option {
	return func(c *config) {
		c.scriptNonce = nonce
	}
}
