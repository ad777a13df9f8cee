package engine

import "fmt"

// Routine is a caller-supplied function that emits instruction bytes by
// querying the engine for branch and call decisions. The engine executes a
// routine many times during one compile; it must be a deterministic function
// of decision position, with no externally visible side effects across runs
// that share a decision prefix.
//
// The returned value is surfaced through Call for subroutine bodies and
// handed to the emitter's End hook. A routine must propagate any error the
// engine API returns to it.
type Routine func(e *Engine) (any, error)

// Subroutine pairs a routine body with a name and gives it a stable
// identity. The engine compiles each distinct *Subroutine at most once per
// surrounding context, so call sites that share one *Subroutine value share
// one compiled block.
type Subroutine struct {
	name string
	body Routine
}

// NewSubroutine creates a named subroutine from the given body.
func NewSubroutine(name string, body Routine) *Subroutine {
	return &Subroutine{name: name, body: body}
}

// Name returns the subroutine's name.
func (s *Subroutine) Name() string {
	return s.name
}

// String returns a short description of the subroutine.
func (s *Subroutine) String() string {
	return fmt.Sprintf("subroutine(%s)", s.name)
}
