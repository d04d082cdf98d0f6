package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"adplan/internal/core/domain"
	"adplan/internal/core/milp"
	"adplan/internal/core/planner"
	"adplan/internal/core/port"
	"adplan/internal/core/port/mocks"
)

func f(v float64) *float64 { return &v }

func testCampaigns() []domain.Campaign {
	return []domain.Campaign{{
		ID:                   "c1",
		Name:                 "Campaign 1",
		ReachCeiling:         1000,
		OptimalFrequency:     2,
		CPM:                  5,
		ConversionRate:       0.02,
		RevenuePerConversion: 10,
	}}
}

// TestOptimizePlanMapsOptimalSolution ensures an optimal solve is read back
// into per-campaign allocations with derived impressions.
func TestOptimizePlanMapsOptimalSolution(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	repo.On("ListCampaigns", mock.Anything).Return(testCampaigns(), nil)

	// The solution values depend on the model built inside the usecase, so
	// they are filled in once the mock sees the model.
	sol := &milp.Solution{Status: milp.Optimal, Objective: 2}
	solver.On("Solve", mock.Anything, mock.AnythingOfType("*milp.Model")).
		Run(func(args mock.Arguments) {
			m := args.Get(1).(*milp.Model)
			sol.Values = make([]float64, len(m.Variables()))
			set := func(name string, v float64) {
				variable := m.Variable(name)
				if variable == nil {
					t.Fatalf("model is missing variable %q", name)
				}
				sol.Values[variable.Index()] = v
			}
			set("allocated_budget[c1]", 5)
			set("reached_users[c1]", 500)
			set("selector[c1]", 1)
			set("conversions[c1]", 10)
			set("revenue[c1]", 100)
		}).
		Return(sol, nil)

	svc := NewPlanUseCase(repo, solver)
	res, err := svc.OptimizePlan(context.Background(), port.PlanRequest{TotalBudget: 5, Objective: "conversion"})
	if err != nil {
		t.Fatalf("OptimizePlan error: %v", err)
	}
	if res.Status != milp.Optimal {
		t.Fatalf("status = %v, want optimal", res.Status)
	}
	if res.ObjectiveValue != 2 {
		t.Fatalf("objective value = %v, want 2", res.ObjectiveValue)
	}
	if len(res.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(res.Allocations))
	}
	a := res.Allocations[0]
	if a.CampaignID != "c1" || a.Budget != 5 || a.ReachedUsers != 500 || a.Conversions != 10 || a.Revenue != 100 {
		t.Fatalf("unexpected allocation: %+v", a)
	}
	// impressions = budget / cpm * 1000 = 5/5*1000
	if a.Impressions != 1000 {
		t.Fatalf("impressions = %v, want 1000", a.Impressions)
	}
}

// TestOptimizePlanPropagatesInfeasible ensures a non-optimal status is
// reported as-is, with no allocations fabricated.
func TestOptimizePlanPropagatesInfeasible(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	repo.On("ListCampaigns", mock.Anything).Return(testCampaigns(), nil)
	solver.On("Solve", mock.Anything, mock.AnythingOfType("*milp.Model")).
		Return(&milp.Solution{Status: milp.Infeasible}, nil)

	svc := NewPlanUseCase(repo, solver)
	res, err := svc.OptimizePlan(context.Background(), port.PlanRequest{TotalBudget: 100, Objective: "revenue"})
	if err != nil {
		t.Fatalf("OptimizePlan error: %v", err)
	}
	if res.Status != milp.Infeasible {
		t.Fatalf("status = %v, want infeasible", res.Status)
	}
	if len(res.Allocations) != 0 || res.ObjectiveValue != 0 {
		t.Fatalf("infeasible result must carry no allocation, got %+v", res)
	}
}

// TestOptimizePlanRejectsUnknownObjective ensures the objective is checked
// before any repository or solver work happens.
func TestOptimizePlanRejectsUnknownObjective(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	svc := NewPlanUseCase(repo, solver)
	_, err := svc.OptimizePlan(context.Background(), port.PlanRequest{TotalBudget: 100, Objective: "clicks"})
	if !errors.Is(err, domain.ErrUnknownObjective) {
		t.Fatalf("error = %v, want ErrUnknownObjective", err)
	}
}

// TestOptimizePlanRejectsNegativeBudget ensures formulation errors
// short-circuit before the solver is invoked.
func TestOptimizePlanRejectsNegativeBudget(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	repo.On("ListCampaigns", mock.Anything).Return(testCampaigns(), nil)

	svc := NewPlanUseCase(repo, solver)
	_, err := svc.OptimizePlan(context.Background(), port.PlanRequest{TotalBudget: -1, Objective: "conversion"})
	if !errors.Is(err, planner.ErrNegativeBudget) {
		t.Fatalf("error = %v, want ErrNegativeBudget", err)
	}
}

// TestOptimizePlanRejectsEmptyCampaignSet ensures an empty repository is a
// configuration error, not a solver call.
func TestOptimizePlanRejectsEmptyCampaignSet(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	repo.On("ListCampaigns", mock.Anything).Return([]domain.Campaign{}, nil)

	svc := NewPlanUseCase(repo, solver)
	_, err := svc.OptimizePlan(context.Background(), port.PlanRequest{TotalBudget: 100, Objective: "conversion"})
	if !errors.Is(err, planner.ErrNoCampaigns) {
		t.Fatalf("error = %v, want ErrNoCampaigns", err)
	}
}

func TestCreateCampaignValidatesBeforeStore(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	solver := mocks.NewMockSolver(t)

	svc := NewPlanUseCase(repo, solver)
	bad := testCampaigns()[0]
	bad.CPM = 0
	if err := svc.CreateCampaign(context.Background(), bad); !errors.Is(err, domain.ErrInvalidCampaign) {
		t.Fatalf("error = %v, want ErrInvalidCampaign", err)
	}

	good := testCampaigns()[0]
	good.MaxSpend = f(100)
	repo.On("CreateCampaign", mock.Anything, good).Return(nil)
	if err := svc.CreateCampaign(context.Background(), good); err != nil {
		t.Fatalf("CreateCampaign error: %v", err)
	}
}
