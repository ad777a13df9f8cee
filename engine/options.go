package engine

import "github.com/rs/zerolog"

// Option is a configuration function for an Engine.
type Option func(*Engine)

// WithPointerSize sets the width in bytes of relocatable placeholder slots.
// The default is 4. Values below 1 are ignored.
func WithPointerSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.pointerSize = size
		}
	}
}

// WithLogger sets the logger used for structured engine events. Discovery
// and compile summaries log at debug level; per-path and per-block events
// log at trace level. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithEmitter sets the emitter used to write relocatable slots and run
// terminators. If not set, a built-in emitter writes bare zero-filled slots
// and no terminator.
func WithEmitter(emitter Emitter) Option {
	return func(e *Engine) {
		if emitter != nil {
			e.emitter = emitter
		}
	}
}
