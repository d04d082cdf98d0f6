package port

import (
	"context"
	"errors"

	"adplan/internal/core/domain"
)

// ErrCampaignExists is returned when creating a campaign whose id is taken.
var ErrCampaignExists = errors.New("campaign already exists")

// CampaignRepository is the outbound persistence port for campaign records.
// Implementations must be safe for concurrent use.
type CampaignRepository interface {
	// ListCampaigns returns all stored campaigns ordered by id.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns a campaign by id, or nil when absent.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// CreateCampaign stores a new campaign record.
	CreateCampaign(ctx context.Context, c domain.Campaign) error
}
