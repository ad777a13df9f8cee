// Package engine compiles a branching byte-emitting routine into a directed
// graph of relocatable blocks.
//
// # Two-Phase Compilation Strategy
//
// A routine emits opaque instruction bytes and requests branch decisions
// from the engine as it runs. The engine cannot know ahead of time how many
// decision points a routine has, so compilation happens in two phases.
//
// Phase 1: path discovery
//
// The engine repeatedly executes the routine, feeding recorded decisions by
// position. When the routine requests a decision beyond the recorded
// sequence, the run is abandoned and both one-longer sequences (true and
// false appended) are queued for their own runs. Runs that complete without
// an unrecorded request contribute a terminal path. A routine with no branch
// points yields exactly one empty path.
//
// Phase 2: path compilation
//
// Each terminal path is replayed once, in reverse-lexicographic path order,
// this time emitting real bytes. Every branch writes two adjacent
// placeholder slots (the true and false continuations) and opens a nested
// block for the remainder of the run; every call writes one slot and
// compiles the subroutine into its own block. Blocks are keyed by the stack
// of active branch decisions and call identities, so sibling paths that
// share a prefix re-enter the blocks created earlier and fill in the other
// jump slot, and repeated calls to one subroutine in one context share one
// compiled block.
//
// # Determinism Contract
//
// The whole scheme relies on the routine being a deterministic function of
// decision position: replaying a path must reproduce the same bytes and the
// same number of decision requests. A routine whose branch count diverges
// between runs fails compilation with a NondeterminismError; divergence the
// engine cannot observe silently corrupts the block graph.
//
// # Output
//
// Compile returns a block.Program: the arena of immutable blocks in
// creation order, rooted at the program entry block. An external linker
// assigns final offsets and patches the placeholder slots named by each
// block's jump map.
package engine

import (
	"errors"
	"io"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/scriptc-io/scriptc/block"
)

// DefaultPointerSize is the width in bytes of relocatable placeholder
// slots unless WithPointerSize overrides it. It matches the width blocks
// assume when none is supplied.
const DefaultPointerSize = block.DefaultPointerSize

// State identifies what an engine is currently doing.
type State int

const (
	// Idle means no compilation is in progress.
	Idle State = iota

	// Discovering means the engine is enumerating feasible decision paths.
	Discovering

	// Compiling means the engine is replaying paths and emitting blocks.
	Compiling
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Discovering:
		return "discovering"
	case Compiling:
		return "compiling"
	default:
		return "unknown"
	}
}

// Token is the opaque value returned by Unknown. It carries no
// engine-defined semantics; it exists so routines can thread a placeholder
// through code that expects a value.
type Token struct{}

// Engine runs routines through the two compilation phases and owns all of
// the per-compilation state: the accumulation buffer, the decision context,
// the block memo, and the symbol registries. An Engine is not safe for
// concurrent use; callers needing parallel compilation use separate
// instances.
type Engine struct {
	state       State
	pointerSize int
	emitter     Emitter
	log         zerolog.Logger
	runLog      zerolog.Logger

	vars  *Registry
	funcs *Registry

	// Per-run state, reset before every routine execution.
	buf     *Buffer
	path    Path
	cursor  int
	escaped bool

	// Set on a compilation failure.
	failure error

	// Phase 2 state.
	memo    map[string]*openBlock
	order   []*openBlock
	context []string
	frames  []frame
	cur     *openBlock
	subIDs  map[*Subroutine]int
}

var _ io.Writer = (*Engine)(nil)

// New creates and returns a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		state:       Idle,
		pointerSize: DefaultPointerSize,
		emitter:     defaultEmitter{},
		log:         zerolog.Nop(),
		buf:         NewBuffer(),
	}
	e.vars = newEngineRegistry(false, nil)
	e.funcs = newEngineRegistry(true, e.recordFailure)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.runLog = e.log
	return e
}

// Compile runs the routine through both phases and returns the compiled
// program. The engine state moves Idle -> Discovering -> Compiling and is
// restored to Idle on exit, on success and on failure alike. The returned
// program's Root block is the graph entry point.
func (e *Engine) Compile(fn Routine) (*block.Program, error) {
	if fn == nil {
		return nil, errors.New("no routine supplied")
	}
	if e.state != Idle {
		return nil, errors.New("compile already in progress")
	}
	e.failure = nil
	e.runLog = e.log.With().Str("compile_id", newCompileID()).Logger()
	defer func() {
		e.state = Idle
	}()

	e.state = Discovering
	paths, err := e.explorePaths(fn)
	if err != nil {
		return nil, err
	}

	e.state = Compiling
	program, err := e.compilePaths(fn, paths)
	if err != nil {
		return nil, err
	}
	e.runLog.Debug().
		Int("path_count", len(paths)).
		Int("block_count", program.BlockCount()).
		Msg("compile complete")
	return program, nil
}

// Branch requests the next branch decision. The condition is metadata only
// and is never evaluated by the engine: the decision depends on how many
// branch requests the current run has already made, not on cond. The
// routine must follow the returned decision and must propagate a returned
// error.
func (e *Engine) Branch(cond any) (bool, error) {
	switch e.state {
	case Discovering:
		if e.failure != nil {
			return false, e.failure
		}
		if e.escaped {
			return false, errNeedsDecision
		}
		if e.cursor < len(e.path) {
			decision := e.path[e.cursor]
			e.cursor++
			return decision, nil
		}
		e.escaped = true
		return false, errNeedsDecision
	case Compiling:
		if e.failure != nil {
			return false, e.failure
		}
		return e.compileBranch(cond)
	default:
		return false, errors.New("branch requested while idle")
	}
}

// Call executes the subroutine through the engine. While compiling, the
// subroutine body is compiled into its own block, reached through one
// relocatable slot in the current block, and reused for every call site
// that shares the same subroutine identity and surrounding context. The
// subroutine's return value is passed through to the caller.
func (e *Engine) Call(sub *Subroutine) (any, error) {
	if sub == nil || sub.body == nil {
		return nil, errors.New("no subroutine supplied")
	}
	switch e.state {
	case Discovering:
		if e.failure != nil {
			return nil, e.failure
		}
		if e.escaped {
			return nil, errNeedsDecision
		}
		return sub.body(e)
	case Compiling:
		if e.failure != nil {
			return nil, e.failure
		}
		return e.compileCall(sub)
	default:
		return nil, errors.New("call requested while idle")
	}
}

// Loop always fails: loop constructs are not supported. The failure is
// fatal to any compilation in progress.
func (e *Engine) Loop(cond any) (bool, error) {
	err := NewUnsupportedConstructError("loop")
	e.recordFailure(err)
	return false, err
}

// Unknown appends size bytes of value in little-endian order while
// compiling and does nothing during discovery. The returned token is
// opaque; see Token.
func (e *Engine) Unknown(value int64, size int) Token {
	if e.state == Compiling && e.failure == nil {
		e.buf.WriteValue(value, size)
	}
	return Token{}
}

// WriteValue appends the value in little-endian order using exactly size
// bytes, with no relocation. Discovery-phase output is discarded, so
// routines may emit unconditionally.
func (e *Engine) WriteValue(value int64, size int) {
	if e.failure != nil || e.escaped {
		return
	}
	e.buf.WriteValue(value, size)
}

// Write appends raw bytes to the current block. Engine implements
// io.Writer so routines can target it with the standard library's
// encoders and formatters.
func (e *Engine) Write(p []byte) (int, error) {
	if e.failure != nil {
		return 0, e.failure
	}
	if e.escaped {
		return 0, errNeedsDecision
	}
	return e.buf.Write(p)
}

// WriteSlot appends one zero-filled placeholder slot of pointer size and
// returns the offset where it starts, or -1 if the engine has failed.
// Emitter implementations build on this.
func (e *Engine) WriteSlot() int {
	if e.failure != nil || e.escaped {
		return -1
	}
	return e.buf.WriteZeros(e.pointerSize)
}

// Vars returns the engine's variable registry. Entries are created lazily
// and are readable and writable.
func (e *Engine) Vars() *Registry {
	return e.vars
}

// Funcs returns the engine's function registry. Entries are created lazily
// and are read-only handles; assigning one fails the compile.
func (e *Engine) Funcs() *Registry {
	return e.funcs
}

// State returns what the engine is currently doing.
func (e *Engine) State() State {
	return e.state
}

// PointerSize returns the width in bytes of relocatable placeholder slots.
func (e *Engine) PointerSize() int {
	return e.pointerSize
}

// beginRun resets the per-run state ahead of one routine execution.
func (e *Engine) beginRun(p Path) {
	e.buf.Reset()
	e.path = p
	e.cursor = 0
	e.escaped = false
}

// recordFailure marks the compilation in progress as failed. The first
// failure wins; later ones are dropped.
func (e *Engine) recordFailure(err error) {
	if e.state != Idle && e.failure == nil {
		e.failure = err
	}
}

func newCompileID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
