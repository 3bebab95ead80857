// internal/workers/travel/classify-travel-intent/models.go
package classifytravelintent

import "travel-planner-workers/internal/planner"

// Input keeps message untyped: numbers, objects and null are legal job
// variables and classify as invalid rather than failing the job.
type Input struct {
	Message interface{} `json:"message"`
}

type Output struct {
	IntentResult planner.IntentResult `json:"intentResult"`
}
