// Package scriptc compiles branching byte-emitting routines into programs
// of relocatable blocks. It is a thin facade over the engine and block
// packages; use those directly for finer control.
package scriptc

import (
	"github.com/rs/zerolog"

	"github.com/scriptc-io/scriptc/block"
	"github.com/scriptc-io/scriptc/engine"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	pointerSize int
	emitter     engine.Emitter
	logger      *zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) engineOpts() []engine.Option {
	var opts []engine.Option
	if o.pointerSize > 0 {
		opts = append(opts, engine.WithPointerSize(o.pointerSize))
	}
	if o.emitter != nil {
		opts = append(opts, engine.WithEmitter(o.emitter))
	}
	if o.logger != nil {
		opts = append(opts, engine.WithLogger(*o.logger))
	}
	return opts
}

// WithPointerSize sets the width in bytes of relocatable jump slots in the
// compiled output. The default is engine.DefaultPointerSize.
func WithPointerSize(size int) Option {
	return func(o *options) {
		o.pointerSize = size
	}
}

// WithEmitter sets the emitter used to write jump slots and run
// terminators.
func WithEmitter(emitter engine.Emitter) Option {
	return func(o *options) {
		o.emitter = emitter
	}
}

// WithLogger sets the logger for structured compilation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// NewEngine returns an engine configured by the given options. Use this
// over Compile to reuse one engine, and its variable and function
// registries, across several compilations.
func NewEngine(opts ...Option) *engine.Engine {
	return engine.New(collectOptions(opts...).engineOpts()...)
}

// Compile runs the routine on a fresh engine and returns the compiled
// program. The returned program is immutable apart from linker offset
// assignment and is safe to share.
func Compile(fn engine.Routine, opts ...Option) (*block.Program, error) {
	return NewEngine(opts...).Compile(fn)
}
