// internal/workers/travel/compose-travel-plan/models.go
package composetravelplan

import "travel-planner-workers/internal/planner"

// Input collects whatever the process produced so far. Only intentResult is
// required; absent parts are left out of the reply.
type Input struct {
	RequestID         string                     `json:"requestId,omitempty"`
	IntentResult      planner.IntentResult       `json:"intentResult"`
	HotelEstimate     *planner.HotelEstimate     `json:"hotelEstimate,omitempty"`
	TransportEstimate *planner.TransportEstimate `json:"transportEstimate,omitempty"`
	BudgetAllocation  *planner.BudgetAllocation  `json:"budgetAllocation,omitempty"`
	Attractions       planner.Attractions        `json:"attractions"`
	Itinerary         string                     `json:"itinerary,omitempty"`
}

type Output struct {
	Response ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	RequestID string           `json:"requestId"`
	Status    string           `json:"status"`
	Kind      planner.Intent   `json:"kind"`
	Text      string           `json:"text"`
	Metadata  ResponseMetadata `json:"metadata"`
}

type ResponseMetadata struct {
	Timestamp     string   `json:"timestamp"`
	Version       string   `json:"version"`
	MissingFields []string `json:"missingFields,omitempty"`
	WithinBudget  *bool    `json:"withinBudget,omitempty"`
}
