package port

import (
	"context"

	"adplan/internal/core/milp"
)

// Solver is the outbound port to an external MILP solving engine. An
// implementation accepts an assembled model and reports per-variable values
// plus a status; it must return values only for an optimal status.
// Infeasibility and unboundedness are legitimate outcomes, not errors: the
// error return is reserved for the engine itself failing.
type Solver interface {
	Solve(ctx context.Context, model *milp.Model) (*milp.Solution, error)
}
