package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adplan/internal/core/domain"
	"adplan/internal/core/port"
)

type campaignPayload struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	ReachCeiling         float64  `json:"reach_ceiling"`
	OptimalFrequency     float64  `json:"optimal_frequency"`
	CPM                  float64  `json:"cpm"`
	ConversionRate       float64  `json:"conversion_rate"`
	RevenuePerConversion float64  `json:"revenue_per_conversion"`
	ImpressionCap        *float64 `json:"impression_cap,omitempty"`
	MinSpend             *float64 `json:"min_spend,omitempty"`
	MaxSpend             *float64 `json:"max_spend,omitempty"`
}

func toCampaignPayload(c domain.Campaign) campaignPayload {
	return campaignPayload{
		ID:                   c.ID,
		Name:                 c.Name,
		ReachCeiling:         c.ReachCeiling,
		OptimalFrequency:     c.OptimalFrequency,
		CPM:                  c.CPM,
		ConversionRate:       c.ConversionRate,
		RevenuePerConversion: c.RevenuePerConversion,
		ImpressionCap:        c.ImpressionCap,
		MinSpend:             c.MinSpend,
		MaxSpend:             c.MaxSpend,
	}
}

// handleListCampaigns returns all stored campaign records as JSON.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	payload := make([]campaignPayload, 0, len(campaigns))
	for _, c := range campaigns {
		payload = append(payload, toCampaignPayload(c))
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleCreateCampaign stores a new campaign record. Malformed JSON yields
// HTTP 400, a validation failure HTTP 422 and a duplicate id HTTP 409.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c := domain.Campaign{
		ID:                   payload.ID,
		Name:                 payload.Name,
		ReachCeiling:         payload.ReachCeiling,
		OptimalFrequency:     payload.OptimalFrequency,
		CPM:                  payload.CPM,
		ConversionRate:       payload.ConversionRate,
		RevenuePerConversion: payload.RevenuePerConversion,
		ImpressionCap:        payload.ImpressionCap,
		MinSpend:             payload.MinSpend,
		MaxSpend:             payload.MaxSpend,
	}
	if err := h.svc.CreateCampaign(r.Context(), c); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCampaign):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, port.ErrCampaignExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("create campaign error", slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}
