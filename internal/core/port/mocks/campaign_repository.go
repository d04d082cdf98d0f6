package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adplan/internal/core/domain"
)

// MockCampaignRepository mocks port.CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

// NewMockCampaignRepository creates a MockCampaignRepository bound to t;
// expectations are asserted on test cleanup.
func NewMockCampaignRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCampaignRepository {
	m := &MockCampaignRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	var campaigns []domain.Campaign
	if args.Get(0) != nil {
		campaigns = args.Get(0).([]domain.Campaign)
	}
	return campaigns, args.Error(1)
}

func (m *MockCampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	var c *domain.Campaign
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Campaign)
	}
	return c, args.Error(1)
}

func (m *MockCampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}
