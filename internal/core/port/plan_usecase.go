package port

import (
	"context"

	"adplan/internal/core/domain"
	"adplan/internal/core/milp"
)

// PlanUseCase defines the business operations exposed by the budget
// planner. This interface is the primary port into the application domain;
// the HTTP layer is a thin consumer of it.
type PlanUseCase interface {
	// OptimizePlan formulates the allocation MILP for the stored campaigns
	// and the requested budget and objective, solves it, and returns the
	// solver status plus per-campaign allocations. Allocations are present
	// only when the status is optimal; any other status means no allocation
	// is available. Invalid input (negative budget, unknown objective,
	// malformed campaign, empty campaign set) is rejected as an error
	// before any model is built.
	OptimizePlan(ctx context.Context, req PlanRequest) (*PlanResult, error)

	// ListCampaigns returns the stored campaign records.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// CreateCampaign validates and stores a campaign record.
	CreateCampaign(ctx context.Context, c domain.Campaign) error
}

// PlanRequest carries the inputs of one formulation call.
type PlanRequest struct {
	TotalBudget float64
	Objective   string
}

// PlanResult is the outcome of one optimization run. ModelID identifies the
// formulation for diagnostics. ObjectiveValue and Allocations are populated
// only for an optimal status.
type PlanResult struct {
	ModelID        string
	Status         milp.Status
	ObjectiveValue float64
	Allocations    []domain.Allocation
}
