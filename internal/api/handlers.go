package api

import (
	"context"
	"net/http"
	"strings"

	"travel-planner-workers/internal/common/errors"
	"travel-planner-workers/internal/planner"
	allocatebudget "travel-planner-workers/internal/workers/travel/allocate-budget"
	builditinerary "travel-planner-workers/internal/workers/travel/build-itinerary"
	classifytravelintent "travel-planner-workers/internal/workers/travel/classify-travel-intent"
	composetravelplan "travel-planner-workers/internal/workers/travel/compose-travel-plan"
	estimatehotelcost "travel-planner-workers/internal/workers/travel/estimate-hotel-cost"
	estimatetransportcost "travel-planner-workers/internal/workers/travel/estimate-transport-cost"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type planRequest struct {
	Message     string              `json:"message"`
	Destination string              `json:"destination"`
	Origin      string              `json:"origin"`
	Days        int                 `json:"days"`
	Budget      float64             `json:"budget"`
	Attractions planner.Attractions `json:"attractions"`
}

type planResponse struct {
	RequestID  string                     `json:"requestId"`
	Intent     planner.IntentResult       `json:"intent"`
	Hotel      *planner.HotelEstimate     `json:"hotel,omitempty"`
	Transport  *planner.TransportEstimate `json:"transport,omitempty"`
	Allocation *planner.BudgetAllocation  `json:"allocation,omitempty"`
	Itinerary  string                     `json:"itinerary,omitempty"`
	DayPlans   [][]string                 `json:"dayPlans,omitempty"`
	Reply      string                     `json:"reply"`
}

// executeRaw feeds the request body to a task's variable decoder so HTTP and
// Zeebe callers see identical validation.
func executeRaw[T any](c *gin.Context, execute func(context.Context, string) (T, error), respond func(T) interface{}) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, errors.NewParseError(err))
		return
	}
	out, err := execute(c.Request.Context(), string(body))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, respond(out))
}

func (s *Server) classify(c *gin.Context) {
	executeRaw(c, s.handlers.Intent.ExecuteVariables, func(out *classifytravelintent.Output) interface{} {
		return out.IntentResult
	})
}

func (s *Server) estimateHotel(c *gin.Context) {
	executeRaw(c, s.handlers.Hotel.ExecuteVariables, func(out *estimatehotelcost.Output) interface{} {
		return out.HotelEstimate
	})
}

func (s *Server) estimateTransport(c *gin.Context) {
	executeRaw(c, s.handlers.Transport.ExecuteVariables, func(out *estimatetransportcost.Output) interface{} {
		return out.TransportEstimate
	})
}

func (s *Server) allocateBudget(c *gin.Context) {
	executeRaw(c, s.handlers.Budget.ExecuteVariables, func(out *allocatebudget.Output) interface{} {
		return out.BudgetAllocation
	})
}

func (s *Server) buildItinerary(c *gin.Context) {
	executeRaw(c, s.handlers.Itinerary.ExecuteVariables, func(out *builditinerary.Output) interface{} {
		return out
	})
}

// plan runs the whole pipeline for one message through the same handlers the
// Zeebe workers use.
func (s *Server) plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.NewParseError(err))
		return
	}

	ctx := c.Request.Context()
	requestID := c.GetString(requestIDKey)

	classified, err := s.handlers.Intent.Execute(ctx, &classifytravelintent.Input{Message: req.Message})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := planResponse{RequestID: requestID, Intent: classified.IntentResult}
	compose := &composetravelplan.Input{RequestID: requestID, IntentResult: classified.IntentResult}

	if classified.IntentResult.Intent == planner.IntentComplete {
		if strings.TrimSpace(req.Destination) == "" || req.Days <= 0 {
			writeError(c, errors.NewPlanDetailsMissingError(planner.ErrPlanDetailsMissing.Error()))
			return
		}
		if req.Days > planner.MaxTripDays {
			writeError(c, errors.NewInvalidInputError(planner.ErrTripTooLong.Error()))
			return
		}
		if err := s.runPipeline(ctx, req, &resp, compose); err != nil {
			writeError(c, err)
			return
		}
	}

	composed, err := s.handlers.Compose.Execute(ctx, compose)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Reply = composed.Response.Text
	c.JSON(http.StatusOK, resp)
}

func (s *Server) runPipeline(ctx context.Context, req planRequest, resp *planResponse, compose *composetravelplan.Input) error {
	hotel, err := s.handlers.Hotel.Execute(ctx, &estimatehotelcost.Input{
		City:   req.Destination,
		Days:   req.Days,
		Budget: req.Budget,
	})
	if err != nil {
		return err
	}
	transport, err := s.handlers.Transport.Execute(ctx, &estimatetransportcost.Input{
		Origin:      req.Origin,
		Destination: req.Destination,
	})
	if err != nil {
		return err
	}
	allocation, err := s.handlers.Budget.Execute(ctx, &allocatebudget.Input{
		TotalBudget:   req.Budget,
		HotelCost:     float64(hotel.HotelEstimate.TotalEstimatedCost),
		TransportCost: float64(transport.TransportEstimate.TotalTransportEstimate),
	})
	if err != nil {
		return err
	}
	itinerary, err := s.handlers.Itinerary.Execute(ctx, &builditinerary.Input{
		Destination: req.Destination,
		Attractions: req.Attractions,
		Days:        req.Days,
	})
	if err != nil {
		return err
	}

	resp.Hotel = &hotel.HotelEstimate
	resp.Transport = &transport.TransportEstimate
	resp.Allocation = &allocation.BudgetAllocation
	resp.Itinerary = itinerary.Itinerary
	resp.DayPlans = itinerary.DayPlans

	compose.HotelEstimate = resp.Hotel
	compose.TransportEstimate = resp.Transport
	compose.BudgetAllocation = resp.Allocation
	compose.Attractions = req.Attractions
	compose.Itinerary = itinerary.Itinerary
	return nil
}

func writeError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)

	status := http.StatusInternalServerError
	switch stdErr.Code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeParseError:
		status = http.StatusBadRequest
	case errors.ErrCodePlanDetailsMissing:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	c.AbortWithStatusJSON(status, errorResponse{
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
		Details: stdErr.Details,
	})
}
