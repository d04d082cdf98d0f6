package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCampaign is wrapped by every campaign validation failure so
// callers can distinguish bad input from internal errors.
var ErrInvalidCampaign = errors.New("invalid campaign")

// Campaign holds the attributes of an advertising campaign consumed by the
// budget planner. Records are immutable inputs to a formulation: the planner
// never mutates them and nothing is written back after a solve.
type Campaign struct {
	ID   string
	Name string

	// ReachCeiling is the maximum number of unique users the campaign can
	// reach regardless of spend.
	ReachCeiling float64
	// OptimalFrequency is the ideal number of exposures per reached user.
	OptimalFrequency float64
	// CPM is the cost per thousand impressions, in currency units.
	CPM float64
	// ConversionRate is the fraction of reached users who convert, in [0,1].
	ConversionRate float64
	// RevenuePerConversion is the revenue earned per converted user.
	RevenuePerConversion float64

	// Optional hard limits. nil means unconstrained; zero is a valid,
	// deliberate limit and must not double as an "absent" sentinel.
	ImpressionCap *float64
	MinSpend      *float64
	MaxSpend      *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the attributes the planner divides by or relies on. It
// must pass before a campaign is admitted into a formulation; a non-positive
// CPM or frequency would otherwise surface as a division by zero inside the
// Big-M derivation.
func (c Campaign) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCampaign)
	}
	if c.ReachCeiling <= 0 {
		return fmt.Errorf("%w: campaign %q: reach ceiling must be positive, got %v", ErrInvalidCampaign, c.ID, c.ReachCeiling)
	}
	if c.OptimalFrequency <= 0 {
		return fmt.Errorf("%w: campaign %q: optimal frequency must be positive, got %v", ErrInvalidCampaign, c.ID, c.OptimalFrequency)
	}
	if c.CPM <= 0 {
		return fmt.Errorf("%w: campaign %q: cpm must be positive, got %v", ErrInvalidCampaign, c.ID, c.CPM)
	}
	if c.ConversionRate < 0 || c.ConversionRate > 1 {
		return fmt.Errorf("%w: campaign %q: conversion rate must be in [0,1], got %v", ErrInvalidCampaign, c.ID, c.ConversionRate)
	}
	if c.RevenuePerConversion < 0 {
		return fmt.Errorf("%w: campaign %q: revenue per conversion must be non-negative, got %v", ErrInvalidCampaign, c.ID, c.RevenuePerConversion)
	}
	if c.ImpressionCap != nil && *c.ImpressionCap <= 0 {
		return fmt.Errorf("%w: campaign %q: impression cap must be positive when set, got %v", ErrInvalidCampaign, c.ID, *c.ImpressionCap)
	}
	if c.MinSpend != nil && *c.MinSpend < 0 {
		return fmt.Errorf("%w: campaign %q: min spend must be non-negative, got %v", ErrInvalidCampaign, c.ID, *c.MinSpend)
	}
	if c.MaxSpend != nil && *c.MaxSpend < 0 {
		return fmt.Errorf("%w: campaign %q: max spend must be non-negative, got %v", ErrInvalidCampaign, c.ID, *c.MaxSpend)
	}
	if c.MinSpend != nil && c.MaxSpend != nil && *c.MinSpend > *c.MaxSpend {
		return fmt.Errorf("%w: campaign %q: min spend %v exceeds max spend %v", ErrInvalidCampaign, c.ID, *c.MinSpend, *c.MaxSpend)
	}
	return nil
}
