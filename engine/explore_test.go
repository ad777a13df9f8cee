package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// discoverPaths runs phase 1 alone and returns the terminal path set.
func discoverPaths(t *testing.T, fn Routine) []Path {
	t.Helper()
	e := New()
	e.state = Discovering
	defer func() { e.state = Idle }()
	paths, err := e.explorePaths(fn)
	require.Nil(t, err)
	return paths
}

func TestDiscoveryZeroBranches(t *testing.T) {
	paths := discoverPaths(t, func(e *Engine) (any, error) {
		e.WriteValue(0x90, 1)
		return nil, nil
	})
	require.Len(t, paths, 1)
	require.Equal(t, Path(nil), paths[0])
}

func TestDiscoverySingleBranch(t *testing.T) {
	paths := discoverPaths(t, func(e *Engine) (any, error) {
		if _, err := e.Branch("x > 0"); err != nil {
			return nil, err
		}
		return nil, nil
	})
	require.Len(t, paths, 2)
	require.Equal(t, Path{true}, paths[0])
	require.Equal(t, Path{false}, paths[1])
}

func TestDiscoveryUniformTree(t *testing.T) {
	// Three branch call sites on every execution: 2^3 terminal paths.
	paths := discoverPaths(t, func(e *Engine) (any, error) {
		for i := 0; i < 3; i++ {
			if _, err := e.Branch(i); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	require.Len(t, paths, 8)
	require.Equal(t, Path{true, true, true}, paths[0])
	require.Equal(t, Path{false, false, false}, paths[7])
	for _, p := range paths {
		require.Len(t, p, 3)
	}
}

func TestDiscoveryMixedArity(t *testing.T) {
	// The second branch is only reached on the true side of the first,
	// so the tree is not uniform.
	paths := discoverPaths(t, func(e *Engine) (any, error) {
		outer, err := e.Branch("outer")
		if err != nil {
			return nil, err
		}
		if outer {
			if _, err := e.Branch("inner"); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	require.Equal(t, []Path{
		{true, true},
		{true, false},
		{false},
	}, paths)
}

func TestDiscoveryLoopFails(t *testing.T) {
	e := New()
	program, err := e.Compile(func(e *Engine) (any, error) {
		if _, err := e.Loop("i < 10"); err != nil {
			return nil, err
		}
		e.WriteValue(0x01, 1)
		return nil, nil
	})
	require.Nil(t, program)
	require.NotNil(t, err)
	require.Equal(t, "unsupported construct: loop", err.Error())

	var unsupported *UnsupportedConstructError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "loop", unsupported.Construct)
	require.Equal(t, Idle, e.State())
}

func TestDiscoveryRoutineErrorPropagates(t *testing.T) {
	boom := errors.New("routine exploded")
	e := New()
	program, err := e.Compile(func(e *Engine) (any, error) {
		return nil, boom
	})
	require.Nil(t, program)
	require.Equal(t, boom, err)
	require.Equal(t, Idle, e.State())
}

func TestDiscoverySwallowedEscape(t *testing.T) {
	// A routine that drops the engine's errors still discovers correctly:
	// the explorer trusts the engine's own escape flag, and post-escape
	// API calls are no-ops.
	program, err := New().Compile(func(e *Engine) (any, error) {
		decision, _ := e.Branch("sloppy")
		if decision {
			e.WriteValue(0x01, 1)
		} else {
			e.WriteValue(0x02, 1)
		}
		return nil, nil
	})
	require.Nil(t, err)
	require.Equal(t, 3, program.BlockCount())
}
