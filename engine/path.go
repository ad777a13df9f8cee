package engine

import "strings"

// Path is an ordered sequence of branch decisions, one per branch point in
// encounter order, describing one feasible execution of a routine. Paths are
// immutable once discovered: Extend returns a new Path with fresh backing
// storage, so sibling extensions never share state.
type Path []bool

// Extend returns a new Path with the given decision appended.
func (p Path) Extend(decision bool) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = decision
	return next
}

// Equal reports whether two paths hold the same decisions.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Less orders paths elementwise with false before true; a proper prefix
// orders before its extensions. Terminal paths compile in descending order
// under this comparison, which fixes a deterministic compile order so that
// context-keyed block reuse always sees the same occurrence first.
func (p Path) Less(other Path) bool {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if p[i] != other[i] {
			return !p[i]
		}
	}
	return len(p) < len(other)
}

// String renders the path as one letter per decision, "T" or "F".
func (p Path) String() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, decision := range p {
		if decision {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('F')
		}
	}
	return sb.String()
}
