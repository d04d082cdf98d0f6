package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownObjective is returned when an objective selector is neither
// "conversion" nor "revenue". The planner fails fast on it instead of
// silently defaulting.
var ErrUnknownObjective = errors.New("unknown objective type")

// ObjectiveType selects what the optimizer maximizes.
type ObjectiveType string

const (
	// ObjectiveConversion maximizes the total number of conversions.
	ObjectiveConversion ObjectiveType = "conversion"
	// ObjectiveRevenue maximizes total revenue.
	ObjectiveRevenue ObjectiveType = "revenue"
)

// ParseObjective converts a textual objective selector into an
// ObjectiveType. Matching is case-insensitive; anything but the two known
// selectors is an error.
func ParseObjective(s string) (ObjectiveType, error) {
	switch strings.ToLower(s) {
	case string(ObjectiveConversion):
		return ObjectiveConversion, nil
	case string(ObjectiveRevenue):
		return ObjectiveRevenue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownObjective, s)
	}
}

// Allocation is the solved outcome for a single campaign: the budget
// assigned to it and the metrics that budget buys. Values are read back
// from solver output and are only meaningful for an optimal solve.
type Allocation struct {
	CampaignID   string
	Budget       float64
	Impressions  float64
	ReachedUsers float64
	Conversions  float64
	Revenue      float64
}
