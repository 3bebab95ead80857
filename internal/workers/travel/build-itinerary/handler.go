// internal/workers/travel/build-itinerary/handler.go
package builditinerary

import (
	"context"

	"travel-planner-workers/internal/common/camunda"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/observability"
	"travel-planner-workers/internal/common/validation"
	"travel-planner-workers/internal/planner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "build-itinerary"

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"destination": {Type: "string"},
		"days":        {Type: "integer", Maximum: validation.Float(planner.MaxTripDays)},
		// Arrays and comma-delimited strings are both accepted; anything
		// else means no attractions.
		"attractions": {},
	},
	Required: []string{"destination", "days"},
})

type Handler struct {
	config *Config
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	names := input.Attractions.Names()
	plans := planner.BuildDayPlans(names, input.Days)

	h.logger.Debug("itinerary built", map[string]interface{}{
		"destination": input.Destination,
		"days":        input.Days,
		"attractions": len(names),
	})

	return &Output{
		Itinerary: planner.RenderItinerary(input.Destination, plans, input.Days),
		DayPlans:  plans,
	}, nil
}
