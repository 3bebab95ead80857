// internal/workers/travel/estimate-hotel-cost/handler.go
package estimatehotelcost

import (
	"context"
	"strconv"

	"travel-planner-workers/internal/common/cache"
	"travel-planner-workers/internal/common/camunda"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/observability"
	"travel-planner-workers/internal/common/validation"
	"travel-planner-workers/internal/planner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType  = "estimate-hotel-cost"
	cacheKind = "hotel"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"city":   {Type: "string", MinLength: validation.Int(1)},
		"days":   {Type: "integer", Description: "number of nights", Maximum: validation.Float(planner.MaxTripDays)},
		"budget": {Type: "number", Description: "total trip budget in INR"},
	},
	Required: []string{"city", "days", "budget"},
})

type Handler struct {
	config *Config
	cache  *cache.EstimateCache
	runner *camunda.Runner
	logger logger.Logger
}

// NewHandler builds the handler. estimates may be nil to disable caching.
func NewHandler(config *Config, estimates *cache.EstimateCache, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		cache:  estimates,
		runner: camunda.NewRunner(TaskType, config.Timeout, obs, log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		return h.ExecuteVariables(ctx, variables)
	})
}

// ExecuteVariables decodes raw variables and runs Execute.
func (h *Handler) ExecuteVariables(ctx context.Context, variables string) (*Output, error) {
	var input Input
	if err := validation.DecodeVariables(variables, inputSchema, &input); err != nil {
		return nil, err
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	key := h.cache.Key(cacheKind, input.City, strconv.Itoa(input.Days), cache.FormatNumber(input.Budget))

	estimate, err := cache.Fetch(ctx, h.cache, cacheKind, key, func() (planner.HotelEstimate, error) {
		return planner.EstimateHotel(input.City, input.Days, input.Budget), nil
	})
	if err != nil {
		return nil, err
	}
	// The key is normalized; echo this caller's spelling, not the first one cached.
	estimate.City = input.City

	h.logger.Debug("hotel estimated", map[string]interface{}{
		"city":  input.City,
		"tier":  estimate.Tier,
		"total": estimate.TotalEstimatedCost,
	})
	return &Output{HotelEstimate: estimate}, nil
}
