package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"adplan/internal/core/domain"
	"adplan/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Optional attributes are nullable columns scanned straight
// into the pointer fields, so NULL means unconstrained.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
        id,
        name,
        reach_ceiling,
        optimal_frequency,
        cpm,
        conversion_rate,
        revenue_per_conversion,
        impression_cap,
        min_spend,
        max_spend,
        created_at,
        updated_at`

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ReachCeiling,
		&c.OptimalFrequency,
		&c.CPM,
		&c.ConversionRate,
		&c.RevenuePerConversion,
		&c.ImpressionCap,
		&c.MinSpend,
		&c.MaxSpend,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// ListCampaigns returns all stored campaigns ordered by id.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// GetCampaign returns a campaign by id, or nil when it does not exist.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query campaign %q: %w", id, err)
	}
	c, err := pgx.CollectOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCampaign stores a new campaign record. A duplicate id is reported
// as port.ErrCampaignExists.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
    (id, name, reach_ceiling, optimal_frequency, cpm, conversion_rate,
     revenue_per_conversion, impression_cap, min_spend, max_spend, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())`,
		c.ID, c.Name, c.ReachCeiling, c.OptimalFrequency, c.CPM, c.ConversionRate,
		c.RevenuePerConversion, c.ImpressionCap, c.MinSpend, c.MaxSpend)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %q", port.ErrCampaignExists, c.ID)
		}
		return fmt.Errorf("insert campaign %q: %w", c.ID, err)
	}
	return nil
}
