// internal/planner/budget.go
package planner

// BudgetAllocation splits a total budget into fixed costs and a remainder
// shared equally between activities and food.
type BudgetAllocation struct {
	TotalBudget         float64 `json:"total_budget"`
	HotelAllocation     float64 `json:"hotel_allocation"`
	TransportAllocation float64 `json:"transport_allocation"`
	FixedTotal          float64 `json:"fixed_total"`
	RemainingBudget     float64 `json:"remaining_budget"`
	SuggestedActivities float64 `json:"suggested_activities"`
	SuggestedFood       float64 `json:"suggested_food"`
	Currency            string  `json:"currency"`
	WithinBudget        bool    `json:"within_budget"`
}

// AllocateBudget never rejects its inputs: a budget below the fixed costs
// yields a zero remainder and WithinBudget=false.
func AllocateBudget(totalBudget, hotelCost, transportCost float64) BudgetAllocation {
	fixed := hotelCost + transportCost
	remaining := totalBudget - fixed
	if remaining < 0 {
		remaining = 0
	}
	share := half(remaining)

	return BudgetAllocation{
		TotalBudget:         totalBudget,
		HotelAllocation:     hotelCost,
		TransportAllocation: transportCost,
		FixedTotal:          fixed,
		RemainingBudget:     remaining,
		SuggestedActivities: share,
		SuggestedFood:       share,
		Currency:            Currency,
		WithinBudget:        fixed <= totalBudget,
	}
}
