// internal/workers/travel/compose-travel-plan/handler.go
package composetravelplan

import (
	"context"
	stderrors "errors"
	"time"

	"travel-planner-workers/internal/common/camunda"
	"travel-planner-workers/internal/common/errors"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/observability"
	"travel-planner-workers/internal/common/validation"
	"travel-planner-workers/internal/planner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "compose-travel-plan"

var intentKinds = []string{
	string(planner.IntentGreeting),
	string(planner.IntentIncomplete),
	string(planner.IntentComplete),
}

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"requestId": {Type: "string"},
		"intentResult": {
			Type: "object",
			Properties: map[string]validation.Property{
				"intent":         {Type: "string", Enum: intentKinds},
				"missing_fields": {Type: "array", Items: &validation.Property{Type: "string"}},
			},
			Required: []string{"intent"},
		},
		"hotelEstimate":     {Type: "object"},
		"transportEstimate": {Type: "object"},
		"budgetAllocation":  {Type: "object"},
		"itinerary":         {Type: "string"},
		"attractions":       {},
	},
	Required: []string{"intentResult"},
})

var outputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"requestId": {Type: "string", MinLength: validation.Int(1)},
		"status":    {Type: "string", Enum: []string{"success"}},
		"kind":      {Type: "string", Enum: intentKinds},
		"text":      {Type: "string", MinLength: validation.Int(1)},
	},
	Required: []string{"requestId", "status", "kind", "text", "metadata"},
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
	text := planner.ComposeReply(input.IntentResult, planner.PlanParts{
		Hotel:       input.HotelEstimate,
		Transport:   input.TransportEstimate,
		Allocation:  input.BudgetAllocation,
		Attractions: input.Attractions.Names(),
		Itinerary:   input.Itinerary,
	})

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	metadata := ResponseMetadata{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       h.config.AppVersion,
		MissingFields: input.IntentResult.MissingFields,
	}
	if input.BudgetAllocation != nil {
		within := input.BudgetAllocation.WithinBudget
		metadata.WithinBudget = &within
	}

	payload := ResponsePayload{
		RequestID: requestID,
		Status:    "success",
		Kind:      input.IntentResult.Intent,
		Text:      text,
		Metadata:  metadata,
	}

	if res := outputSchema.Validate(payload); !res.Valid {
		h.logger.Error("composed response failed validation", map[string]interface{}{
			"requestId": requestID,
			"errors":    res.GetErrorMessages(),
		})
		return nil, errors.NewTaskFailedError(errors.ErrCodePlanCompositionFailed, stderrors.New(res.Error()))
	}

	return &Output{Response: payload}, nil
}
