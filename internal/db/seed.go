package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a small demo campaign set: three campaigns with mixed spend
// bounds, useful for exercising both optimization objectives against a
// 50000-unit budget.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	type campaign struct {
		id            string
		name          string
		ceiling       float64
		frequency     float64
		cpm           float64
		conversion    float64
		revenue       float64
		impressionCap *float64
		minSpend      *float64
		maxSpend      *float64
	}
	f := func(v float64) *float64 { return &v }
	campaigns := []campaign{
		{id: "brand-awareness", name: "Brand awareness", ceiling: 800000, frequency: 3, cpm: 5, conversion: 0.02, revenue: 10, minSpend: f(1000)},
		{id: "retargeting", name: "Retargeting", ceiling: 400000, frequency: 2, cpm: 7, conversion: 0.03, revenue: 12, maxSpend: f(20000)},
		{id: "prospecting", name: "Prospecting", ceiling: 1500000, frequency: 4, cpm: 4, conversion: 0.015, revenue: 15},
	}
	for _, c := range campaigns {
		_, err := pool.Exec(ctx, `INSERT INTO campaigns
    (id, name, reach_ceiling, optimal_frequency, cpm, conversion_rate,
     revenue_per_conversion, impression_cap, min_spend, max_spend, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now()) ON CONFLICT DO NOTHING`,
			c.id, c.name, c.ceiling, c.frequency, c.cpm, c.conversion,
			c.revenue, c.impressionCap, c.minSpend, c.maxSpend)
		if err != nil {
			return err
		}
	}
	return nil
}
