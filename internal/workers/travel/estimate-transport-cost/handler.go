// internal/workers/travel/estimate-transport-cost/handler.go
package estimatetransportcost

import (
	"context"
	"strings"

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
	TaskType  = "estimate-transport-cost"
	cacheKind = "transport"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"origin":      {Type: "string", Description: "blank means the configured default origin"},
		"destination": {Type: "string", MinLength: validation.Int(1)},
	},
	Required: []string{"destination"},
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
	origin := strings.TrimSpace(input.Origin)
	if origin == "" {
		origin = h.config.DefaultOrigin
	}

	key := h.cache.Key(cacheKind, origin, input.Destination)
	estimate, err := cache.Fetch(ctx, h.cache, cacheKind, key, func() (planner.TransportEstimate, error) {
		return planner.EstimateTransport(origin, input.Destination), nil
	})
	if err != nil {
		return nil, err
	}
	estimate.Origin = origin
	estimate.Destination = input.Destination

	h.logger.Debug("transport estimated", map[string]interface{}{
		"origin":      origin,
		"destination": input.Destination,
		"total":       estimate.TotalTransportEstimate,
	})
	return &Output{TransportEstimate: estimate}, nil
}
