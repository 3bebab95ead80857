// internal/workers/travel/build-itinerary/models.go
package builditinerary

import "travel-planner-workers/internal/planner"

type Input struct {
	Destination string              `json:"destination"`
	Attractions planner.Attractions `json:"attractions"`
	Days        int                 `json:"days"`
}

type Output struct {
	Itinerary string     `json:"itinerary"`
	DayPlans  [][]string `json:"dayPlans"`
}
