package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-planner-workers/internal/common/cache"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/planner"
	allocatebudget "travel-planner-workers/internal/workers/travel/allocate-budget"
	builditinerary "travel-planner-workers/internal/workers/travel/build-itinerary"
	classifytravelintent "travel-planner-workers/internal/workers/travel/classify-travel-intent"
	composetravelplan "travel-planner-workers/internal/workers/travel/compose-travel-plan"
	estimatehotelcost "travel-planner-workers/internal/workers/travel/estimate-hotel-cost"
	estimatetransportcost "travel-planner-workers/internal/workers/travel/estimate-transport-cost"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestServer(t *testing.T, checks map[string]CheckFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	timeout := 5 * time.Second
	estimates := cache.New(cache.Options{}, log)

	handlers := Handlers{
		Intent:    classifytravelintent.NewHandler(&classifytravelintent.Config{Timeout: timeout}, nil, log),
		Hotel:     estimatehotelcost.NewHandler(&estimatehotelcost.Config{Timeout: timeout}, estimates, nil, log),
		Transport: estimatetransportcost.NewHandler(&estimatetransportcost.Config{Timeout: timeout, DefaultOrigin: planner.DefaultOrigin}, estimates, nil, log),
		Budget:    allocatebudget.NewHandler(&allocatebudget.Config{Timeout: timeout}, nil, log),
		Itinerary: builditinerary.NewHandler(&builditinerary.Config{Timeout: timeout}, nil, log),
		Compose:   composetravelplan.NewHandler(&composetravelplan.Config{Timeout: timeout, AppVersion: "test"}, nil, log),
	}

	return NewServer(handlers, Options{
		AppName:         "travel-planner-workers",
		AppVersion:      "test",
		ReadinessChecks: checks,
	}, nil, log).Router()
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ==========================
// Probe Endpoints
// ==========================

func TestServer_Health(t *testing.T) {
	r := newTestServer(t, nil)

	rec := doJSON(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestServer_Ready(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		r := newTestServer(t, map[string]CheckFunc{
			"redis": func(context.Context) error { return nil },
		})
		rec := doJSON(t, r, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decode(t, rec)["status"])
	})

	t.Run("failing check", func(t *testing.T) {
		r := newTestServer(t, map[string]CheckFunc{
			"redis": func(context.Context) error { return nil },
			"zeebe": func(context.Context) error { return fmt.Errorf("connection refused") },
		})
		rec := doJSON(t, r, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := decode(t, rec)
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "ok", checks["redis"])
		assert.Equal(t, "connection refused", checks["zeebe"])
	})
}

func TestServer_RequestIDPropagated(t *testing.T) {
	r := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestServer_Metrics(t *testing.T) {
	r := newTestServer(t, nil)
	doJSON(t, r, http.MethodGet, "/health", "")

	rec := doJSON(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

// ==========================
// Task Endpoints
// ==========================

func TestServer_TaskEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		check          func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "classify greeting",
			path:           "/v1/intent",
			body:           `{"message":"hello"}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "greeting", body["intent"])
			},
		},
		{
			name:           "hotel estimate",
			path:           "/v1/estimates/hotel",
			body:           `{"city":"Goa","days":4,"budget":20000}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "mid", body["tier"])
				assert.Equal(t, float64(16800), body["total_estimated_cost"])
			},
		},
		{
			name:           "hotel missing city",
			path:           "/v1/estimates/hotel",
			body:           `{"days":4,"budget":20000}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_INPUT", body["code"])
			},
		},
		{
			name:           "transport default origin",
			path:           "/v1/estimates/transport",
			body:           `{"destination":"Goa"}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Mumbai", body["origin"])
				assert.Equal(t, float64(9000), body["flight_estimate_round_trip"])
				assert.Equal(t, float64(15000), body["total_transport_estimate"])
			},
		},
		{
			name:           "budget allocation",
			path:           "/v1/budget/allocate",
			body:           `{"totalBudget":50000,"hotelCost":16800,"transportCost":15000}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(18200), body["remaining_budget"])
				assert.Equal(t, float64(9100), body["suggested_food"])
				assert.Equal(t, true, body["within_budget"])
			},
		},
		{
			name:           "itinerary",
			path:           "/v1/itinerary",
			body:           `{"destination":"Goa","days":2,"attractions":["Baga Beach","Fort Aguada","Dudhsagar Falls"]}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Contains(t, body["itinerary"], "Day 1")
				assert.Len(t, body["dayPlans"], 2)
			},
		},
		{
			name:           "itinerary longer than a year",
			path:           "/v1/itinerary",
			body:           `{"destination":"Goa","days":2000000000,"attractions":[]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_INPUT", body["code"])
			},
		},
		{
			name:           "hotel stay longer than a year",
			path:           "/v1/estimates/hotel",
			body:           `{"city":"Goa","days":9000000000000000000,"budget":0}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "INVALID_INPUT", body["code"])
			},
		},
		{
			name:           "malformed body",
			path:           "/v1/budget/allocate",
			body:           `{"totalBudget":`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "PARSE_ERROR", body["code"])
			},
		},
	}

	r := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			tt.check(t, decode(t, rec))
		})
	}
}

// ==========================
// Plan Endpoint
// ==========================

func TestServer_Plan(t *testing.T) {
	r := newTestServer(t, nil)

	t.Run("complete message", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{
			"message": "Plan a 10 day trip to Goa with budget 59000",
			"destination": "Goa",
			"days": 10,
			"budget": 59000,
			"attractions": ["Baga Beach", "Fort Aguada"]
		}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp planResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, planner.IntentComplete, resp.Intent.Intent)
		require.NotNil(t, resp.Hotel)
		assert.Equal(t, int64(42000), resp.Hotel.TotalEstimatedCost)
		require.NotNil(t, resp.Transport)
		assert.Equal(t, int64(15000), resp.Transport.TotalTransportEstimate)
		require.NotNil(t, resp.Allocation)
		assert.True(t, resp.Allocation.WithinBudget)
		assert.Equal(t, 1000.0, resp.Allocation.SuggestedActivities)
		assert.Len(t, resp.DayPlans, 10)
		assert.Contains(t, resp.Reply, "## Estimated Costs Breakdown")
		assert.Contains(t, resp.Reply, "- Baga Beach")
		assert.NotEmpty(t, resp.RequestID)
	})

	t.Run("greeting skips pipeline", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{"message":"hi"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp planResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, planner.GreetingResponse, resp.Reply)
		assert.Nil(t, resp.Hotel)
	})

	t.Run("incomplete message asks for details", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{"message":"I want to visit Goa"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp planResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, planner.IntentIncomplete, resp.Intent.Intent)
		assert.Contains(t, resp.Reply, planner.MissingBudget)
	})

	t.Run("complete message without structured fields", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{"message":"Plan a 5 day trip to Goa with budget 30000"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "PLAN_DETAILS_MISSING", decode(t, rec)["code"])
	})

	t.Run("trip longer than a year", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{
			"message": "Plan a 5 day trip to Goa with budget 30000",
			"destination": "Goa",
			"days": 2000000000
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, rec)["code"])
	})

	t.Run("non-string message", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/v1/plan", `{"message":42}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CORS(t *testing.T) {
	r := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/v1/intent", nil)
	req.Header.Set("Origin", "https://planner.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
