// Package highsadapter implements the port.Solver interface on top of the
// HiGHS solver via the gohighs bindings. It is the only place where the
// in-memory model representation meets a concrete solving engine; swapping
// the backend means replacing this package, not the formulation.
package highsadapter

import (
	"context"
	"fmt"
	"math"

	"github.com/bartolsthoorn/gohighs/highs"

	"adplan/internal/config/configs"
	"adplan/internal/core/milp"
)

// Solver solves milp models with HiGHS. The zero value solves with solver
// defaults and output disabled.
type Solver struct {
	timeLimit float64
	output    bool
}

// NewSolver creates a Solver from configuration.
func NewSolver(cfg configs.Solver) *Solver {
	return &Solver{timeLimit: cfg.TimeLimitSeconds, output: cfg.Output}
}

// Solve converts the model into HiGHS column/row form, runs the solver and
// maps the result back. Values are attached only for an optimal status.
func (s *Solver) Solve(ctx context.Context, model *milp.Model) (*milp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vars := model.Variables()
	hm := highs.Model{
		Maximize: model.Direction() == milp.Maximize,
		ColCosts: make([]float64, len(vars)),
		ColLower: make([]float64, len(vars)),
		ColUpper: make([]float64, len(vars)),
		VarTypes: make([]highs.VariableType, len(vars)),
	}
	for i, v := range vars {
		hm.ColCosts[i] = v.ObjectiveCoefficient()
		hm.ColLower[i], hm.ColUpper[i] = v.Bounds()
		if v.Type() == milp.BinaryVariable {
			hm.VarTypes[i] = highs.Integer
		} else {
			hm.VarTypes[i] = highs.Continuous
		}
	}

	for _, c := range model.Constraints() {
		cvars, coefs := c.Terms()
		cols := make([]int, len(cvars))
		for i, v := range cvars {
			cols[i] = v.Index()
		}
		lower, upper := rowBounds(c)
		hm.AddSparseRow(lower, cols, coefs, upper)
	}

	opts := []highs.SolveOption{highs.WithOutput(s.output)}
	if s.timeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(s.timeLimit))
	}
	hs, err := hm.Solve(opts...)
	if err != nil {
		return nil, fmt.Errorf("highs solve: %w", err)
	}

	sol := &milp.Solution{Status: mapStatus(hs.Status)}
	if sol.Status == milp.Optimal {
		sol.Objective = hs.Objective
		sol.Values = hs.ColValues
	}
	return sol, nil
}

func rowBounds(c *milp.Constraint) (lower, upper float64) {
	switch c.Sense() {
	case milp.LessEq:
		return math.Inf(-1), c.RHS()
	case milp.GreaterEq:
		return c.RHS(), math.Inf(1)
	default:
		return c.RHS(), c.RHS()
	}
}

func mapStatus(st highs.ModelStatus) milp.Status {
	switch st {
	case highs.ModelStatusOptimal:
		return milp.Optimal
	case highs.ModelStatusInfeasible:
		return milp.Infeasible
	case highs.ModelStatusUnbounded, highs.ModelStatusUnboundedOrInfeasible:
		return milp.Unbounded
	default:
		return milp.NotSolved
	}
}
