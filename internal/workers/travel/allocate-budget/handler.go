// internal/workers/travel/allocate-budget/handler.go
package allocatebudget

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

const TaskType = "allocate-budget"

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"totalBudget":   {Type: "number"},
		"hotelCost":     {Type: "number"},
		"transportCost": {Type: "number"},
	},
	Required: []string{"totalBudget", "hotelCost", "transportCost"},
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
	allocation := planner.AllocateBudget(input.TotalBudget, input.HotelCost, input.TransportCost)
	if !allocation.WithinBudget {
		h.logger.Info("fixed costs exceed budget", map[string]interface{}{
			"totalBudget": input.TotalBudget,
			"fixedTotal":  allocation.FixedTotal,
		})
	}
	return &Output{BudgetAllocation: allocation}, nil
}
