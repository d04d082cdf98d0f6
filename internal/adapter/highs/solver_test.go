package highsadapter

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"adplan/internal/config/configs"
	"adplan/internal/core/domain"
	"adplan/internal/core/milp"
	"adplan/internal/core/planner"
)

// Solver feasibility tolerances leave small residues on MIP solutions;
// assertions on money and reach scale use these slacks.
const (
	moneyTol = 0.1
	reachTol = 1.0
)

func f(v float64) *float64 { return &v }

func solve(t *testing.T, campaigns []domain.Campaign, budget float64, objective domain.ObjectiveType) (*planner.BuiltModel, *milp.Solution) {
	t.Helper()
	built, err := planner.Build(campaigns, budget, objective)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	sol, err := NewSolver(configs.Solver{TimeLimitSeconds: 30}).Solve(context.Background(), built.Model)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	return built, sol
}

func scenarioCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{ID: "A", ReachCeiling: 800000, OptimalFrequency: 3, CPM: 5, ConversionRate: 0.02, RevenuePerConversion: 10, MinSpend: f(1000)},
		{ID: "B", ReachCeiling: 400000, OptimalFrequency: 2, CPM: 7, ConversionRate: 0.03, RevenuePerConversion: 12, MaxSpend: f(20000)},
		{ID: "C", ReachCeiling: 1500000, OptimalFrequency: 4, CPM: 4, ConversionRate: 0.015, RevenuePerConversion: 15},
	}
}

// TestScenarioThreeCampaigns runs the reference three-campaign scenario
// under both objectives and checks budget conservation, spend bounds and
// the reach ceilings on the solved allocation.
func TestScenarioThreeCampaigns(t *testing.T) {
	for _, objective := range []domain.ObjectiveType{domain.ObjectiveConversion, domain.ObjectiveRevenue} {
		t.Run(string(objective), func(t *testing.T) {
			campaigns := scenarioCampaigns()
			built, sol := solve(t, campaigns, 50000, objective)
			if sol.Status != milp.Optimal {
				t.Fatalf("status = %v, want optimal", sol.Status)
			}

			var total float64
			for _, c := range campaigns {
				vars := built.Vars[c.ID]
				budget := sol.Value(vars.Budget)
				reached := sol.Value(vars.ReachedUsers)
				total += budget
				if budget < -moneyTol {
					t.Errorf("campaign %s: negative budget %v", c.ID, budget)
				}
				if reached > c.ReachCeiling+reachTol {
					t.Errorf("campaign %s: reached %v exceeds ceiling %v", c.ID, reached, c.ReachCeiling)
				}
			}
			if total > 50000+moneyTol {
				t.Errorf("total allocated %v exceeds budget 50000", total)
			}
			if a := sol.Value(built.Vars["A"].Budget); a < 1000-moneyTol {
				t.Errorf("campaign A budget %v violates min spend 1000", a)
			}
			if b := sol.Value(built.Vars["B"].Budget); b > 20000+moneyTol {
				t.Errorf("campaign B budget %v violates max spend 20000", b)
			}
		})
	}
}

// TestReachedUsersEqualsMin checks the linearization invariant on a single
// campaign: the solved reach must equal min(ceiling, budget/cpm*1000/freq)
// whichever branch binds.
func TestReachedUsersEqualsMin(t *testing.T) {
	campaign := domain.Campaign{
		ID: "solo", ReachCeiling: 1000, OptimalFrequency: 2, CPM: 5,
		ConversionRate: 0.02, RevenuePerConversion: 10,
	}
	// Budget 5 keeps the budget branch binding; 50 saturates the ceiling.
	for _, budget := range []float64{5, 50} {
		built, sol := solve(t, []domain.Campaign{campaign}, budget, domain.ObjectiveConversion)
		if sol.Status != milp.Optimal {
			t.Fatalf("budget %v: status = %v, want optimal", budget, sol.Status)
		}
		vars := built.Vars["solo"]
		spent := sol.Value(vars.Budget)
		reached := sol.Value(vars.ReachedUsers)
		want := math.Min(campaign.ReachCeiling, spent/campaign.CPM*1000/campaign.OptimalFrequency)
		if !scalar.EqualWithinAbs(reached, want, reachTol) {
			t.Errorf("budget %v: reached = %v, want min = %v", budget, reached, want)
		}
	}
}

// TestObjectiveMonotonicInBudget checks that increasing the total budget
// never decreases the optimal objective value.
func TestObjectiveMonotonicInBudget(t *testing.T) {
	campaigns := scenarioCampaigns()
	prev := math.Inf(-1)
	for _, budget := range []float64{5000, 10000, 20000, 40000} {
		_, sol := solve(t, campaigns, budget, domain.ObjectiveRevenue)
		if sol.Status != milp.Optimal {
			t.Fatalf("budget %v: status = %v, want optimal", budget, sol.Status)
		}
		if sol.Objective < prev-1e-3 {
			t.Fatalf("objective decreased from %v to %v when budget grew to %v", prev, sol.Objective, budget)
		}
		prev = sol.Objective
	}
}

// TestObjectiveTypeSensitivity forces a preference: X converts better, Y
// earns more per unit of reach. The conversion run must favor X and the
// revenue run must favor Y.
func TestObjectiveTypeSensitivity(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "X", ReachCeiling: 100000, OptimalFrequency: 2, CPM: 10, ConversionRate: 0.05, RevenuePerConversion: 1},
		{ID: "Y", ReachCeiling: 100000, OptimalFrequency: 2, CPM: 10, ConversionRate: 0.01, RevenuePerConversion: 20},
	}
	// Saturating one ceiling costs 2000, so the budget funds only one.
	const budget = 2000

	built, sol := solve(t, campaigns, budget, domain.ObjectiveConversion)
	if sol.Status != milp.Optimal {
		t.Fatalf("conversion status = %v, want optimal", sol.Status)
	}
	if x, y := sol.Value(built.Vars["X"].Budget), sol.Value(built.Vars["Y"].Budget); x <= y+moneyTol {
		t.Errorf("conversion objective must favor X: got X=%v, Y=%v", x, y)
	}

	built, sol = solve(t, campaigns, budget, domain.ObjectiveRevenue)
	if sol.Status != milp.Optimal {
		t.Fatalf("revenue status = %v, want optimal", sol.Status)
	}
	if x, y := sol.Value(built.Vars["X"].Budget), sol.Value(built.Vars["Y"].Budget); y <= x+moneyTol {
		t.Errorf("revenue objective must favor Y: got X=%v, Y=%v", x, y)
	}
}

// TestMinSpendSumInfeasible ensures an over-committed minimum spend is
// reported as infeasible with no values attached.
func TestMinSpendSumInfeasible(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "a", ReachCeiling: 1000, OptimalFrequency: 2, CPM: 5, ConversionRate: 0.02, RevenuePerConversion: 10, MinSpend: f(30000)},
		{ID: "b", ReachCeiling: 1000, OptimalFrequency: 2, CPM: 5, ConversionRate: 0.02, RevenuePerConversion: 10, MinSpend: f(30000)},
	}
	_, sol := solve(t, campaigns, 50000, domain.ObjectiveConversion)
	if sol.Status != milp.Infeasible {
		t.Fatalf("status = %v, want infeasible", sol.Status)
	}
	if sol.Values != nil {
		t.Fatal("infeasible solution must not carry values")
	}
}

// TestImpressionCapRespected checks that a configured impression cap bounds
// the bought impressions even when budget is abundant.
func TestImpressionCapRespected(t *testing.T) {
	campaigns := []domain.Campaign{
		{ID: "capped", ReachCeiling: 1000000, OptimalFrequency: 1, CPM: 5, ConversionRate: 0.05, RevenuePerConversion: 10, ImpressionCap: f(100000)},
		{ID: "open", ReachCeiling: 1000000, OptimalFrequency: 1, CPM: 5, ConversionRate: 0.01, RevenuePerConversion: 10},
	}
	built, sol := solve(t, campaigns, 10000, domain.ObjectiveConversion)
	if sol.Status != milp.Optimal {
		t.Fatalf("status = %v, want optimal", sol.Status)
	}
	budget := sol.Value(built.Vars["capped"].Budget)
	impressions := budget / campaigns[0].CPM * 1000
	if impressions > 100000+reachTol {
		t.Errorf("impressions %v exceed cap 100000", impressions)
	}
}
