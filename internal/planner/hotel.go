// internal/planner/hotel.go
package planner

import (
	"fmt"
	"strings"
)

// Currency is the only currency tag any estimate carries.
const Currency = "INR"

// Tier is the hotel quality band chosen from per-night spend.
type Tier string

const (
	TierBudget Tier = "budget"
	TierMid    Tier = "mid"
	TierLuxury Tier = "luxury"
)

const (
	luxuryPerNight = 6000
	midPerNight    = 2500
)

var tierRates = map[Tier]int64{
	TierBudget: 1500,
	TierMid:    3500,
	TierLuxury: 8000,
}

type cityMultiplier struct {
	cities     []string
	multiplier float64
}

// Checked in order; the first rule whose city appears in the name wins.
var cityMultipliers = []cityMultiplier{
	{cities: []string{"goa"}, multiplier: 1.2},
	{cities: []string{"mumbai", "delhi"}, multiplier: 1.4},
	{cities: []string{"jaipur", "udaipur"}, multiplier: 1.1},
}

// HotelEstimate is the accommodation cost estimate for a stay.
type HotelEstimate struct {
	City               string `json:"city"`
	Days               int    `json:"days"`
	Tier               Tier   `json:"tier"`
	EstimatedPerNight  int64  `json:"estimated_per_night"`
	TotalEstimatedCost int64  `json:"total_estimated_cost"`
	Currency           string `json:"currency"`
	Breakdown          string `json:"breakdown"`
}

// EstimateHotel picks a tier from budget/nights and prices the stay with the
// city's multiplier. Non-positive nights price as a zero-cost budget stay.
func EstimateHotel(city string, nights int, budget float64) HotelEstimate {
	tier := SelectTier(budget, nights)
	rate := floorProduct(tierRates[tier], CityMultiplier(city))

	billable := nights
	if billable < 0 {
		billable = 0
	}
	total := rate * int64(billable)

	return HotelEstimate{
		City:               city,
		Days:               nights,
		Tier:               tier,
		EstimatedPerNight:  rate,
		TotalEstimatedCost: total,
		Currency:           Currency,
		Breakdown:          fmt.Sprintf("%s tier @ ~%d INR/night x %d nights = %d INR", tier, rate, nights, total),
	}
}

// SelectTier maps the per-night share of budget to a tier.
func SelectTier(budget float64, nights int) Tier {
	perNight := 0.0
	if nights > 0 {
		perNight = budget / float64(nights)
	}
	switch {
	case perNight >= luxuryPerNight:
		return TierLuxury
	case perNight >= midPerNight:
		return TierMid
	default:
		return TierBudget
	}
}

// CityMultiplier returns the nightly-rate multiplier for a city name.
func CityMultiplier(city string) float64 {
	name := strings.ToLower(strings.TrimSpace(city))
	for _, rule := range cityMultipliers {
		for _, c := range rule.cities {
			if strings.Contains(name, c) {
				return rule.multiplier
			}
		}
	}
	return 1.0
}
