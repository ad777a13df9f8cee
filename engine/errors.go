package engine

import (
	"errors"
	"fmt"
)

// UnsupportedConstructError is used to indicate that a routine requested a
// construct the engine cannot compile, such as a loop. These are fatal and
// have no fallback.
type UnsupportedConstructError struct {
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

func NewUnsupportedConstructError(construct string) *UnsupportedConstructError {
	return &UnsupportedConstructError{Construct: construct}
}

// ImmutableBindingError is used to indicate a write to a read-only symbol,
// such as an entry in the engine's function registry. These are fatal.
type ImmutableBindingError struct {
	Name string
}

func (e *ImmutableBindingError) Error() string {
	return fmt.Sprintf("cannot assign to read-only symbol %q", e.Name)
}

func NewImmutableBindingError(name string) *ImmutableBindingError {
	return &ImmutableBindingError{Name: name}
}

// NondeterminismError is used to indicate that a routine requested a decision
// beyond the recorded path while compiling, meaning it diverged between the
// discovery and compile runs. This is an internal-consistency failure and is
// never silently recovered: a recovered path would be half-compiled and
// wrong.
type NondeterminismError struct {
	// Index is the decision position the routine requested.
	Index int

	// Path is the recorded decision sequence being replayed.
	Path Path
}

func (e *NondeterminismError) Error() string {
	return fmt.Sprintf("nondeterministic routine: decision %d requested beyond recorded path %q",
		e.Index, e.Path.String())
}

// errNeedsDecision unwinds a discovery run that reached an undiscovered
// decision point. The explorer consumes it; it never escapes Compile.
var errNeedsDecision = errors.New("decision required beyond the recorded path")
