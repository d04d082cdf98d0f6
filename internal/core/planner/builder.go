// Package planner formulates the campaign budget allocation problem as a
// mixed-integer linear program. Each campaign's achieved unique reach is
// min(reach ceiling, impressions/frequency), a non-linear expression that is
// linearized here with a Big-M scheme and one binary selector per campaign.
// Solving is left to an external backend behind the port.Solver interface.
package planner

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"adplan/internal/core/domain"
	"adplan/internal/core/milp"
)

var (
	// ErrNoCampaigns is returned for an empty campaign set; the Big-M
	// derivation takes minima over the set and is undefined without it.
	ErrNoCampaigns = errors.New("campaign set is empty")
	// ErrNegativeBudget is returned for a negative total budget.
	ErrNegativeBudget = errors.New("total budget must not be negative")
	// ErrDuplicateCampaign is returned when two campaigns share an id.
	ErrDuplicateCampaign = errors.New("duplicate campaign id")
)

// bigMBuffer is the safety factor applied on top of the largest value either
// branch of the min can take, so boundary ties cannot make the relaxed
// constraint binding.
const bigMBuffer = 1.1

// CampaignVars bundles the solver-visible variables created for one
// campaign, so callers can read allocations back after a solve.
type CampaignVars struct {
	// Budget is the money allocated to the campaign.
	Budget *milp.Variable
	// ReachedUsers is the linearized min(ceiling, impressions/frequency).
	ReachedUsers *milp.Variable
	// Selector is the binary branch switch of the min linearization:
	// 0 means the reach ceiling is binding, 1 means the budget-derived
	// impression estimate is.
	Selector *milp.Variable
	// Conversions is ReachedUsers scaled by the conversion rate.
	Conversions *milp.Variable
	// Revenue is Conversions scaled by the revenue per conversion.
	Revenue *milp.Variable
}

// BuiltModel is the output of one formulation call: the assembled model, a
// lookup from campaign id to its variables and the Big-M constant the
// linearization was built with.
type BuiltModel struct {
	ID        string
	Model     *milp.Model
	Vars      map[string]CampaignVars
	BigM      float64
	Objective domain.ObjectiveType
}

// bigM derives the Big-M constant for this input. M must strictly dominate
// both branches of the min for every campaign at any feasible budget: the
// largest reach ceiling, and the impression-derived reach if the whole
// budget went to the cheapest CPM at the lowest frequency. Optional caps
// and spend bounds only shrink the feasible region, so the estimate stays
// an overestimate under every optional-constraint combination. M depends on
// the input and must be recomputed per call.
func bigM(campaigns []domain.Campaign, totalBudget float64) float64 {
	maxCeiling := 0.0
	minCPM := math.Inf(1)
	minFrequency := math.Inf(1)
	for _, c := range campaigns {
		maxCeiling = math.Max(maxCeiling, c.ReachCeiling)
		minCPM = math.Min(minCPM, c.CPM)
		minFrequency = math.Min(minFrequency, c.OptimalFrequency)
	}
	maxBudgetReach := totalBudget / minCPM * 1000 / minFrequency
	return bigMBuffer * math.Max(maxCeiling, maxBudgetReach)
}

// Build assembles the maximization model for the given campaigns, total
// budget and objective. All configuration errors are rejected here, before
// any model state exists. The returned model is self-contained and scoped
// to this call; nothing is shared between formulations.
func Build(campaigns []domain.Campaign, totalBudget float64, objective domain.ObjectiveType) (*BuiltModel, error) {
	if len(campaigns) == 0 {
		return nil, ErrNoCampaigns
	}
	if totalBudget < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNegativeBudget, totalBudget)
	}
	switch objective {
	case domain.ObjectiveConversion, domain.ObjectiveRevenue:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownObjective, objective)
	}
	seen := make(map[string]struct{}, len(campaigns))
	for _, c := range campaigns {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCampaign, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	m := milp.NewModel("campaign-budget-allocation", milp.Maximize)
	built := &BuiltModel{
		ID:        uuid.NewString(),
		Model:     m,
		Vars:      make(map[string]CampaignVars, len(campaigns)),
		BigM:      bigM(campaigns, totalBudget),
		Objective: objective,
	}

	var buildErr error
	constrain := func(name string, vars []*milp.Variable, coefs []float64, sense milp.Sense, rhs float64) {
		if buildErr == nil {
			buildErr = m.AddConstraint(name, vars, coefs, sense, rhs)
		}
	}
	variable := func(name string, binary bool) *milp.Variable {
		if buildErr != nil {
			return nil
		}
		var v *milp.Variable
		if binary {
			v, buildErr = m.AddBinaryVariable(name)
		} else {
			v, buildErr = m.AddVariable(name)
		}
		return v
	}

	budgetVars := make([]*milp.Variable, 0, len(campaigns))
	budgetCoefs := make([]float64, 0, len(campaigns))
	for _, c := range campaigns {
		vars := CampaignVars{
			Budget:       variable("allocated_budget["+c.ID+"]", false),
			ReachedUsers: variable("reached_users["+c.ID+"]", false),
			Selector:     variable("selector["+c.ID+"]", true),
			Conversions:  variable("conversions["+c.ID+"]", false),
			Revenue:      variable("revenue["+c.ID+"]", false),
		}
		if buildErr != nil {
			return nil, buildErr
		}

		// impressions = budget / cpm * 1000, so one currency unit buys
		// reachPerUnit users on the impression-derived branch of the min.
		impressionsPerUnit := 1000 / c.CPM
		reachPerUnit := impressionsPerUnit / c.OptimalFrequency

		// Min linearization. (1)-(2) bound reached users above by both
		// candidates; (3)-(4) force it up to the branch the selector
		// activates, relaxing the other by M. The objective rewards larger
		// reach, so at optimality reached users sit exactly on the minimum.
		constrain("reach_le_ceiling["+c.ID+"]",
			[]*milp.Variable{vars.ReachedUsers},
			[]float64{1},
			milp.LessEq, c.ReachCeiling)
		constrain("reach_le_budget["+c.ID+"]",
			[]*milp.Variable{vars.ReachedUsers, vars.Budget},
			[]float64{1, -reachPerUnit},
			milp.LessEq, 0)
		constrain("reach_ge_ceiling["+c.ID+"]",
			[]*milp.Variable{vars.ReachedUsers, vars.Selector},
			[]float64{1, built.BigM},
			milp.GreaterEq, c.ReachCeiling)
		constrain("reach_ge_budget["+c.ID+"]",
			[]*milp.Variable{vars.ReachedUsers, vars.Budget, vars.Selector},
			[]float64{1, -reachPerUnit, -built.BigM},
			milp.GreaterEq, -built.BigM)

		// Derived metrics as equalities.
		constrain("conversions["+c.ID+"]",
			[]*milp.Variable{vars.Conversions, vars.ReachedUsers},
			[]float64{1, -c.ConversionRate},
			milp.Equal, 0)
		constrain("revenue["+c.ID+"]",
			[]*milp.Variable{vars.Revenue, vars.Conversions},
			[]float64{1, -c.RevenuePerConversion},
			milp.Equal, 0)

		// Optional per-campaign limits, emitted only when configured.
		if c.ImpressionCap != nil {
			constrain("impression_cap["+c.ID+"]",
				[]*milp.Variable{vars.Budget},
				[]float64{impressionsPerUnit},
				milp.LessEq, *c.ImpressionCap)
		}
		if c.MinSpend != nil {
			constrain("min_spend["+c.ID+"]",
				[]*milp.Variable{vars.Budget},
				[]float64{1},
				milp.GreaterEq, *c.MinSpend)
		}
		if c.MaxSpend != nil {
			constrain("max_spend["+c.ID+"]",
				[]*milp.Variable{vars.Budget},
				[]float64{1},
				milp.LessEq, *c.MaxSpend)
		}

		switch objective {
		case domain.ObjectiveConversion:
			vars.Conversions.SetObjectiveCoefficient(1)
		case domain.ObjectiveRevenue:
			vars.Revenue.SetObjectiveCoefficient(1)
		}

		budgetVars = append(budgetVars, vars.Budget)
		budgetCoefs = append(budgetCoefs, 1)
		built.Vars[c.ID] = vars
	}

	constrain("total_budget", budgetVars, budgetCoefs, milp.LessEq, totalBudget)
	if buildErr != nil {
		return nil, buildErr
	}
	return built, nil
}
