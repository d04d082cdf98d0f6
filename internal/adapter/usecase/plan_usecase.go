package usecase

import (
	"context"
	"fmt"

	"adplan/internal/core/domain"
	"adplan/internal/core/milp"
	"adplan/internal/core/planner"
	"adplan/internal/core/port"
)

// PlanUseCase implements port.PlanUseCase. It orchestrates the campaign
// repository, the planner formulation and the external solver. The usecase
// itself holds no state between calls; every optimization builds a fresh
// model with a freshly derived Big-M.
type PlanUseCase struct {
	repo   port.CampaignRepository
	solver port.Solver
}

// NewPlanUseCase creates a usecase with the provided repository and solver.
func NewPlanUseCase(repo port.CampaignRepository, solver port.Solver) *PlanUseCase {
	return &PlanUseCase{repo: repo, solver: solver}
}

// OptimizePlan loads the stored campaigns, formulates the allocation MILP
// and hands it to the solver. Configuration errors fail before any model is
// built. A non-optimal solver status is propagated on the result unchanged,
// with no allocations attached and no variable values read.
func (u *PlanUseCase) OptimizePlan(ctx context.Context, req port.PlanRequest) (*port.PlanResult, error) {
	objective, err := domain.ParseObjective(req.Objective)
	if err != nil {
		return nil, err
	}
	campaigns, err := u.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("load campaigns: %w", err)
	}

	built, err := planner.Build(campaigns, req.TotalBudget, objective)
	if err != nil {
		return nil, err
	}

	sol, err := u.solver.Solve(ctx, built.Model)
	if err != nil {
		return nil, fmt.Errorf("solve model %s: %w", built.ID, err)
	}

	res := &port.PlanResult{ModelID: built.ID, Status: sol.Status}
	if sol.Status != milp.Optimal {
		return res, nil
	}

	res.ObjectiveValue = sol.Objective
	res.Allocations = make([]domain.Allocation, 0, len(campaigns))
	for _, c := range campaigns {
		vars := built.Vars[c.ID]
		budget := sol.Value(vars.Budget)
		res.Allocations = append(res.Allocations, domain.Allocation{
			CampaignID:   c.ID,
			Budget:       budget,
			Impressions:  budget / c.CPM * 1000,
			ReachedUsers: sol.Value(vars.ReachedUsers),
			Conversions:  sol.Value(vars.Conversions),
			Revenue:      sol.Value(vars.Revenue),
		})
	}
	return res, nil
}

// ListCampaigns returns the stored campaign records.
func (u *PlanUseCase) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx)
}

// CreateCampaign validates and stores a campaign record.
func (u *PlanUseCase) CreateCampaign(ctx context.Context, c domain.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return u.repo.CreateCampaign(ctx, c)
}
