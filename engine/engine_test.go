package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	e := New()
	require.Equal(t, Idle, e.State())
	require.Equal(t, DefaultPointerSize, e.PointerSize())

	require.False(t, e.Vars().Get("counter").ReadOnly())
	require.Nil(t, e.Vars().Set("counter", 3))

	require.True(t, e.Funcs().Get("memcpy").ReadOnly())
}

func TestWithPointerSizeIgnoresInvalid(t *testing.T) {
	require.Equal(t, 4, New(WithPointerSize(0)).PointerSize())
	require.Equal(t, 4, New(WithPointerSize(-3)).PointerSize())
	require.Equal(t, 2, New(WithPointerSize(2)).PointerSize())
}

func TestWithEmitterIgnoresNil(t *testing.T) {
	e := New(WithEmitter(nil))
	program, err := e.Compile(writeFlagRoutine)
	require.Nil(t, err)
	require.Equal(t, 3, program.BlockCount())
}

func TestWithLogger(t *testing.T) {
	var sb strings.Builder
	logger := zerolog.New(&sb).Level(zerolog.DebugLevel)

	e := New(WithLogger(logger))
	_, err := e.Compile(writeFlagRoutine)
	require.Nil(t, err)

	out := sb.String()
	require.Contains(t, out, "path discovery complete")
	require.Contains(t, out, "compile complete")
	require.Contains(t, out, `"compile_id":"`)
}

func TestCompileNoRoutine(t *testing.T) {
	e := New()
	program, err := e.Compile(nil)
	require.Nil(t, program)
	require.EqualError(t, err, "no routine supplied")
}

func TestRequestsWhileIdle(t *testing.T) {
	e := New()

	_, err := e.Branch("cond")
	require.EqualError(t, err, "branch requested while idle")

	_, err = e.Call(NewSubroutine("noop", func(e *Engine) (any, error) {
		return nil, nil
	}))
	require.EqualError(t, err, "call requested while idle")

	_, err = e.Call(nil)
	require.EqualError(t, err, "no subroutine supplied")
}

func TestLoopWhileIdle(t *testing.T) {
	// A loop request outside a compile reports the error but does not
	// poison the engine.
	e := New()
	_, err := e.Loop("cond")
	var ucErr *UnsupportedConstructError
	require.True(t, errors.As(err, &ucErr))

	program, err := e.Compile(writeFlagRoutine)
	require.Nil(t, err)
	require.Equal(t, 3, program.BlockCount())
}

func TestCompileReentrant(t *testing.T) {
	e := New()
	var inner error
	program, err := e.Compile(func(*Engine) (any, error) {
		if e.State() == Discovering {
			_, inner = e.Compile(writeFlagRoutine)
		}
		e.WriteValue(0x01, 1)
		return nil, nil
	})
	require.Nil(t, err)
	require.EqualError(t, inner, "compile already in progress")
	require.Equal(t, []byte{0x01}, program.Root().Bytes())
	require.Equal(t, Idle, e.State())
}

func TestImmutableBindingFailsCompile(t *testing.T) {
	// The routine drops the assignment error, but the violation is fatal
	// to the compile anyway.
	e := New()
	program, err := e.Compile(func(e *Engine) (any, error) {
		e.Funcs().Set("memcpy", 42)
		e.WriteValue(0x01, 1)
		return nil, nil
	})
	require.Nil(t, program)

	var ibErr *ImmutableBindingError
	require.True(t, errors.As(err, &ibErr))
	require.Equal(t, "memcpy", ibErr.Name)
	require.Equal(t, Idle, e.State())
}

func TestVarsPersistAcrossCompiles(t *testing.T) {
	e := New()
	_, err := e.Compile(func(e *Engine) (any, error) {
		return nil, e.Vars().Set("origin", 0x8000)
	})
	require.Nil(t, err)

	sym, ok := e.Vars().Lookup("origin")
	require.True(t, ok)
	require.Equal(t, 0x8000, sym.Value())

	program, err := e.Compile(func(e *Engine) (any, error) {
		origin := e.Vars().Get("origin").Value().(int)
		e.WriteValue(int64(origin), 2)
		return nil, nil
	})
	require.Nil(t, err)
	require.Equal(t, []byte{0x00, 0x80}, program.Root().Bytes())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "discovering", Discovering.String())
	require.Equal(t, "compiling", Compiling.String())
	require.Equal(t, "unknown", State(99).String())
}
