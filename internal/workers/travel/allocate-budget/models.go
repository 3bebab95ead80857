// internal/workers/travel/allocate-budget/models.go
package allocatebudget

import "travel-planner-workers/internal/planner"

type Input struct {
	TotalBudget   float64 `json:"totalBudget"`
	HotelCost     float64 `json:"hotelCost"`
	TransportCost float64 `json:"transportCost"`
}

type Output struct {
	BudgetAllocation planner.BudgetAllocation `json:"budgetAllocation"`
}
