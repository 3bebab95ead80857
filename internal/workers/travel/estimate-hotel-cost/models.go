// internal/workers/travel/estimate-hotel-cost/models.go
package estimatehotelcost

import "travel-planner-workers/internal/planner"

type Input struct {
	City   string  `json:"city"`
	Days   int     `json:"days"`
	Budget float64 `json:"budget"`
}

type Output struct {
	HotelEstimate planner.HotelEstimate `json:"hotelEstimate"`
}
