package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adplan/internal/core/domain"
	"adplan/internal/core/planner"
	"adplan/internal/core/port"
)

type optimizeRequest struct {
	TotalBudget float64 `json:"total_budget"`
	Objective   string  `json:"objective"`
}

type allocationPayload struct {
	CampaignID   string  `json:"campaign_id"`
	Budget       float64 `json:"budget"`
	Impressions  float64 `json:"impressions"`
	ReachedUsers float64 `json:"reached_users"`
	Conversions  float64 `json:"conversions"`
	Revenue      float64 `json:"revenue"`
}

type optimizeResponse struct {
	ModelID        string              `json:"model_id"`
	Status         string              `json:"status"`
	ObjectiveValue float64             `json:"objective_value,omitempty"`
	Allocations    []allocationPayload `json:"allocations,omitempty"`
}

// handleOptimizePlan formulates and solves an allocation for the stored
// campaigns. The request body carries the total budget and objective
// selector. Invalid configuration yields HTTP 422, parsing errors HTTP 400
// and internal failures HTTP 500. A non-optimal solver status is a valid
// outcome reported in the response body with no allocations.
func (h *Handler) handleOptimizePlan(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.OptimizePlan(r.Context(), port.PlanRequest{
		TotalBudget: req.TotalBudget,
		Objective:   req.Objective,
	})
	if err != nil {
		if isConfigError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("optimize plan error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := optimizeResponse{
		ModelID:        res.ModelID,
		Status:         res.Status.String(),
		ObjectiveValue: res.ObjectiveValue,
	}
	for _, a := range res.Allocations {
		resp.Allocations = append(resp.Allocations, allocationPayload{
			CampaignID:   a.CampaignID,
			Budget:       a.Budget,
			Impressions:  a.Impressions,
			ReachedUsers: a.ReachedUsers,
			Conversions:  a.Conversions,
			Revenue:      a.Revenue,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// isConfigError reports whether err stems from invalid request or campaign
// configuration rather than from an internal failure.
func isConfigError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCampaign) ||
		errors.Is(err, domain.ErrUnknownObjective) ||
		errors.Is(err, planner.ErrNoCampaigns) ||
		errors.Is(err, planner.ErrNegativeBudget) ||
		errors.Is(err, planner.ErrDuplicateCampaign)
}
