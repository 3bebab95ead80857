// internal/workers/travel/estimate-transport-cost/models.go
package estimatetransportcost

import "travel-planner-workers/internal/planner"

type Input struct {
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination"`
}

type Output struct {
	TransportEstimate planner.TransportEstimate `json:"transportEstimate"`
}
