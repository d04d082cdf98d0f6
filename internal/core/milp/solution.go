package milp

import "math"

// Status is the outcome reported by a solver for a model.
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "not-solved"
	}
}

// Solution carries solver output for one model. Values is indexed by
// variable column index and is populated only for an optimal solve; readers
// must check Status before touching values.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Value returns the solved value of v, or NaN when the solution carries no
// value for it (non-optimal status, foreign variable).
func (s *Solution) Value(v *Variable) float64 {
	if s == nil || v == nil || v.Index() < 0 || v.Index() >= len(s.Values) {
		return math.NaN()
	}
	return s.Values[v.Index()]
}
