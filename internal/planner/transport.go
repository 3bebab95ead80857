// internal/planner/transport.go
package planner

import (
	"fmt"
	"strings"
)

const (
	// DefaultOneWayFare is used for any route missing from the fare table.
	DefaultOneWayFare int64 = 5000

	localPerDay int64 = 1500
	// localDays is a fixed assumption and does not follow the trip length.
	localDays int64 = 4
)

type route struct {
	origin      string
	destination string
}

var oneWayFares = map[route]int64{
	{"mumbai", "goa"}:    4500,
	{"delhi", "goa"}:     6500,
	{"bangalore", "goa"}: 4000,
	{"mumbai", "kerala"}: 5500,
	{"delhi", "kerala"}:  7000,
	{"goa", "mumbai"}:    4500,
	{"goa", "delhi"}:     6500,
	{"kerala", "mumbai"}: 5500,
}

// TransportEstimate is the round-trip flight plus local transport estimate.
type TransportEstimate struct {
	Origin                  string `json:"origin"`
	Destination             string `json:"destination"`
	FlightEstimateRoundTrip int64  `json:"flight_estimate_round_trip"`
	LocalTransportEstimate  int64  `json:"local_transport_estimate"`
	TotalTransportEstimate  int64  `json:"total_transport_estimate"`
	Currency                string `json:"currency"`
	Breakdown               string `json:"breakdown"`
}

// EstimateTransport prices a round trip between origin and destination.
func EstimateTransport(origin, destination string) TransportEstimate {
	flights := OneWayFare(origin, destination) * 2
	local := localPerDay * localDays
	total := flights + local

	return TransportEstimate{
		Origin:                  origin,
		Destination:             destination,
		FlightEstimateRoundTrip: flights,
		LocalTransportEstimate:  local,
		TotalTransportEstimate:  total,
		Currency:                Currency,
		Breakdown:               fmt.Sprintf("Flights: %d INR, Local: %d INR", flights, local),
	}
}

// OneWayFare looks up the ordered route, falling back to DefaultOneWayFare.
func OneWayFare(origin, destination string) int64 {
	key := route{
		origin:      strings.ToLower(strings.TrimSpace(origin)),
		destination: strings.ToLower(strings.TrimSpace(destination)),
	}
	if fare, ok := oneWayFares[key]; ok {
		return fare
	}
	return DefaultOneWayFare
}
