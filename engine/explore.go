package engine

import "sort"

// explorePaths drives phase 1. It executes the routine once per pending
// partial path, starting from the empty path. A run that requests a
// decision beyond its recorded sequence is abandoned and enqueues both
// one-longer sequences; a run that completes is terminal. The terminal set
// is returned sorted in reverse-lexicographic order, which fixes the
// compile order for phase 2.
func (e *Engine) explorePaths(fn Routine) ([]Path, error) {
	pending := []Path{nil}
	var terminal []Path
	runs := 0
	for i := 0; i < len(pending); i++ {
		p := pending[i]
		e.beginRun(p)
		runs++
		_, err := fn(e)
		if e.failure != nil {
			return nil, e.failure
		}
		if e.escaped {
			// The routine hit an undiscovered decision point. Whatever
			// error it returned on the way out is the escape unwinding,
			// not a routine failure.
			pending = append(pending, p.Extend(true), p.Extend(false))
			continue
		}
		if err != nil {
			return nil, err
		}
		terminal = append(terminal, p)
	}
	sort.Slice(terminal, func(i, j int) bool {
		return terminal[j].Less(terminal[i])
	})
	e.runLog.Debug().
		Int("run_count", runs).
		Int("path_count", len(terminal)).
		Msg("path discovery complete")
	return terminal, nil
}
