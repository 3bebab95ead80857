package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"travel-planner-workers/internal/planner"
	"travel-planner-workers/pkg/registry"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// ==========================
// Planner Commands
// ==========================

func TestClassifyCmd(t *testing.T) {
	out, err := run(t, "classify", "I", "want", "to", "visit", "Goa")
	require.NoError(t, err)
	assert.Contains(t, out, "intent: incomplete")
	assert.Contains(t, out, "missing: "+planner.MissingBudget)

	out, err = run(t, "--json", "classify", "hello")
	require.NoError(t, err)
	var result planner.IntentResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, planner.IntentGreeting, result.Intent)
}

func TestHotelCmd(t *testing.T) {
	out, err := run(t, "hotel", "--city", "Goa", "--days", "4", "--budget", "20000")
	require.NoError(t, err)
	assert.Equal(t, "mid tier @ ~4200 INR/night x 4 nights = 16800 INR\n", out)

	_, err = run(t, "hotel", "--days", "4")
	assert.Error(t, err)

	_, err = run(t, "hotel", "--city", "Goa", "--days", "9000000000000000000")
	assert.ErrorContains(t, err, "--days must be at most 365")
}

func TestTransportCmd(t *testing.T) {
	out, err := run(t, "--json", "transport", "--destination", "Goa")
	require.NoError(t, err)

	var est planner.TransportEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, planner.DefaultOrigin, est.Origin)
	assert.Equal(t, int64(15000), est.TotalTransportEstimate)
}

func TestBudgetCmd(t *testing.T) {
	out, err := run(t, "budget", "--total", "10000", "--hotel", "8000", "--transport", "6000")
	require.NoError(t, err)
	assert.Contains(t, out, "over budget")
	assert.Contains(t, out, "remaining 0.00")
}

func TestItineraryCmd(t *testing.T) {
	out, err := run(t, "itinerary", "--destination", "Goa", "--days", "2", "--attractions", "Baga Beach,Fort Aguada,Anjuna")
	require.NoError(t, err)
	assert.Contains(t, out, "## Day 1\n- Baga Beach\n- Fort Aguada")
	assert.Contains(t, out, "## Day 2\n- Anjuna")

	_, err = run(t, "itinerary", "--destination", "Goa", "--days", "2000000000")
	assert.ErrorContains(t, err, "--days must be at most 365")
}

func TestPlanCmd(t *testing.T) {
	out, err := run(t, "plan", "Plan a 4 day trip to Goa with budget 20000",
		"--destination", "Goa", "--days", "4", "--budget", "20000")
	require.NoError(t, err)
	assert.Contains(t, out, "## Estimated Costs Breakdown")

	_, err = run(t, "plan", "Plan a 4 day trip to Goa with budget 20000")
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrPlanDetailsMissing)

	_, err = run(t, "plan", "Plan a 4 day trip to Goa with budget 20000",
		"--destination", "Goa", "--days", "400")
	assert.ErrorIs(t, err, planner.ErrTripTooLong)

	out, err = run(t, "plan", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Smart Travel Planner")
}

// ==========================
// Registry Commands
// ==========================

func TestRegistryCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")

	_, err := run(t, "registry", "add", "--path", path,
		"--id", "allocate-budget", "--display-name", "Allocate Budget", "--category", "planning",
		"--endpoint", "POST /v1/budget/allocate")
	require.NoError(t, err)

	_, err = run(t, "registry", "update", "--path", path, "--id", "allocate-budget", "--field", "status", "--value", "completed")
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "allocate-budget", reg.Activities[0].TaskType)
	assert.Equal(t, "completed", reg.Activities[0].ImplementationStatus)

	out, err := run(t, "registry", "list", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "allocate-budget")
	assert.Contains(t, out, "POST /v1/budget/allocate")

	// Only one of the served task types is registered.
	out, err = run(t, "registry", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, out, "no activity for task type classify-travel-intent")
}

func TestRegistryValidate_ShippedFile(t *testing.T) {
	out, err := run(t, "registry", "validate", "--path", filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Found 6 activities")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "plannerctl dev\n", out)
}
