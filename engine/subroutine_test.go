package engine

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSubroutineAccessors(t *testing.T) {
	sub := NewSubroutine("memcpy", func(e *Engine) (any, error) {
		return nil, nil
	})
	require.Equal(t, "memcpy", sub.Name())
	require.Equal(t, "subroutine(memcpy)", sub.String())
}

func TestCallTraceNamesSubroutine(t *testing.T) {
	var sb strings.Builder
	logger := zerolog.New(&sb).Level(zerolog.TraceLevel)

	nop := NewSubroutine("nop", func(e *Engine) (any, error) {
		e.WriteValue(0x90, 1)
		return nil, nil
	})
	e := New(WithLogger(logger))
	_, err := e.Compile(func(e *Engine) (any, error) {
		_, err := e.Call(nop)
		return nil, err
	})
	require.Nil(t, err)

	out := sb.String()
	require.Contains(t, out, "compiling call")
	require.Contains(t, out, `"subroutine":"nop"`)
}
