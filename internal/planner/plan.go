// internal/planner/plan.go
package planner

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultOrigin is assumed for transport when the traveller gave none.
const DefaultOrigin = "Mumbai"

// ErrPlanDetailsMissing is returned by Plan when a message classifies as
// complete but the structured trip fields needed to price it are absent.
var ErrPlanDetailsMissing = errors.New("destination, days and budget are required to build a plan")

// ErrTripTooLong is returned by Plan when days exceeds MaxTripDays.
var ErrTripTooLong = fmt.Errorf("days must be at most %d", MaxTripDays)

// PlanParts holds whatever pipeline outputs are available for composition.
type PlanParts struct {
	Hotel       *HotelEstimate
	Transport   *TransportEstimate
	Allocation  *BudgetAllocation
	Attractions []string
	Itinerary   string
}

// PlanRequest carries a message plus the structured trip fields the
// orchestrator extracted from it.
type PlanRequest struct {
	Message     string
	Destination string
	Origin      string
	Days        int
	Budget      float64
	Attractions Attractions
}

// PlanResult is the full pipeline output for one request.
type PlanResult struct {
	Intent     IntentResult       `json:"intent"`
	Hotel      *HotelEstimate     `json:"hotel,omitempty"`
	Transport  *TransportEstimate `json:"transport,omitempty"`
	Allocation *BudgetAllocation  `json:"allocation,omitempty"`
	Itinerary  string             `json:"itinerary,omitempty"`
	DayPlans   [][]string         `json:"day_plans,omitempty"`
	Reply      string             `json:"reply"`
}

// Plan classifies the message and, when it is complete, runs
// hotel → transport → allocation → itinerary and composes the reply.
func Plan(req PlanRequest, defaultOrigin string) (PlanResult, error) {
	intent := Classify(req.Message)
	result := PlanResult{Intent: intent}

	if intent.Intent != IntentComplete {
		result.Reply = ComposeReply(intent, PlanParts{})
		return result, nil
	}
	if strings.TrimSpace(req.Destination) == "" || req.Days <= 0 {
		return result, ErrPlanDetailsMissing
	}
	if req.Days > MaxTripDays {
		return result, ErrTripTooLong
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = defaultOrigin
	}
	if origin == "" {
		origin = DefaultOrigin
	}

	hotel := EstimateHotel(req.Destination, req.Days, req.Budget)
	transport := EstimateTransport(origin, req.Destination)
	allocation := AllocateBudget(req.Budget, float64(hotel.TotalEstimatedCost), float64(transport.TotalTransportEstimate))

	names := req.Attractions.Names()
	plans := BuildDayPlans(names, req.Days)
	itinerary := RenderItinerary(req.Destination, plans, req.Days)

	result.Hotel = &hotel
	result.Transport = &transport
	result.Allocation = &allocation
	result.Itinerary = itinerary
	result.DayPlans = plans
	result.Reply = ComposeReply(intent, PlanParts{
		Hotel:       &hotel,
		Transport:   &transport,
		Allocation:  &allocation,
		Attractions: names,
		Itinerary:   itinerary,
	})
	return result, nil
}

// ComposeReply produces the user-facing text for an intent: the greeting,
// the clarifying question, or the markdown plan built from parts.
func ComposeReply(intent IntentResult, parts PlanParts) string {
	switch intent.Intent {
	case IntentGreeting:
		if intent.GreetingResponse != "" {
			return intent.GreetingResponse
		}
		return GreetingResponse
	case IntentIncomplete:
		return intent.ClarifyingSuggestion
	}

	var sections []string
	if parts.Hotel != nil || parts.Transport != nil {
		lines := []string{"## Estimated Costs Breakdown"}
		if parts.Hotel != nil {
			lines = append(lines, "- Accommodation: "+parts.Hotel.Breakdown)
		}
		if parts.Transport != nil {
			lines = append(lines, fmt.Sprintf("- Transport (%s → %s): %s, total %d INR",
				parts.Transport.Origin, parts.Transport.Destination,
				parts.Transport.Breakdown, parts.Transport.TotalTransportEstimate))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(parts.Attractions) > 0 {
		lines := []string{"## Top Attractions"}
		for _, a := range parts.Attractions {
			lines = append(lines, "- "+a)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if a := parts.Allocation; a != nil {
		status := "within budget"
		if !a.WithinBudget {
			status = "over budget"
		}
		sections = append(sections, strings.Join([]string{
			"## Budget Allocation",
			fmt.Sprintf("- Total budget: %s INR", formatAmount(a.TotalBudget)),
			fmt.Sprintf("- Fixed costs (hotel + transport): %s INR (%s)", formatAmount(a.FixedTotal), status),
			fmt.Sprintf("- Remaining: %s INR", formatAmount(a.RemainingBudget)),
			fmt.Sprintf("- Activities: %s INR", formatAmount(a.SuggestedActivities)),
			fmt.Sprintf("- Food: %s INR", formatAmount(a.SuggestedFood)),
		}, "\n"))
	}
	if parts.Itinerary != "" {
		sections = append(sections, "## Day-by-Day Itinerary\n"+parts.Itinerary)
	}
	return strings.Join(sections, "\n\n")
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
