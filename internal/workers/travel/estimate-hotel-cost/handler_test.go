// internal/workers/travel/estimate-hotel-cost/handler_test.go
package estimatehotelcost

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"travel-planner-workers/internal/common/cache"
	"travel-planner-workers/internal/common/errors"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/planner"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newCache(client *redis.Client, ttl time.Duration) *cache.EstimateCache {
	opts := cache.Options{TTL: ttl}
	if client != nil {
		opts.Remote = cache.NewRedisStore(client)
	}
	return cache.New(opts, logger.NewNoOpLogger())
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name              string
		input             Input
		expectedTier      planner.Tier
		expectedPerNight  int64
		expectedTotal     int64
		expectedBreakdown string
	}{
		{"goa mid", Input{"Goa", 4, 20000}, planner.TierMid, 4200, 16800, "mid tier @ ~4200 INR/night x 4 nights = 16800 INR"},
		{"mumbai luxury", Input{"Mumbai", 2, 20000}, planner.TierLuxury, 11200, 22400, ""},
		{"unknown city budget", Input{"Pune", 5, 5000}, planner.TierBudget, 1500, 7500, ""},
	}

	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			est := out.HotelEstimate
			assert.Equal(t, tt.expectedTier, est.Tier)
			assert.Equal(t, tt.expectedPerNight, est.EstimatedPerNight)
			assert.Equal(t, tt.expectedTotal, est.TotalEstimatedCost)
			assert.Equal(t, "INR", est.Currency)
			if tt.expectedBreakdown != "" {
				assert.Equal(t, tt.expectedBreakdown, est.Breakdown)
			}
		})
	}
}

func TestHandler_ExecuteVariables_Validation(t *testing.T) {
	tests := []struct {
		name         string
		variables    string
		expectedCode errors.ErrorCode
	}{
		{"missing city", `{"days":4,"budget":20000}`, errors.ErrCodeInvalidInput},
		{"empty city", `{"city":"","days":4,"budget":20000}`, errors.ErrCodeInvalidInput},
		{"fractional days", `{"city":"Goa","days":4.5,"budget":20000}`, errors.ErrCodeInvalidInput},
		{"budget as text", `{"city":"Goa","days":4,"budget":"20k"}`, errors.ErrCodeInvalidInput},
		{"days beyond a year", `{"city":"Goa","days":366,"budget":20000}`, errors.ErrCodeInvalidInput},
		{"days that would overflow the total", `{"city":"Goa","days":9000000000000000000,"budget":0}`, errors.ErrCodeInvalidInput},
		{"broken json", `{"city":"Goa"`, errors.ErrCodeParseError},
	}

	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.ExecuteVariables(context.Background(), tt.variables)
			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.expectedCode, stdErr.Code)
		})
	}
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_WritesThroughRedis(t *testing.T) {
	mr, client := setupMiniredis(t)
	h := NewHandler(createTestConfig(), newCache(client, time.Minute), nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{"Goa", 4, 20000})
	require.NoError(t, err)

	raw, err := mr.Get("travel:hotel:goa:4:20000")
	require.NoError(t, err)

	var cached planner.HotelEstimate
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, int64(16800), cached.TotalEstimatedCost)
}

func TestHandler_Execute_CacheHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	key := "travel:hotel:goa:4:20000"

	// A planted value proves the estimate was served from Redis.
	planted := planner.HotelEstimate{City: "Goa", Days: 4, Tier: planner.TierMid, TotalEstimatedCost: 1, Currency: "INR"}
	data, _ := json.Marshal(planted)
	mock.ExpectGet(key).SetVal(string(data))

	h := NewHandler(createTestConfig(), newCache(client, time.Minute), nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{"Goa", 4, 20000})

	require.NoError(t, err)
	assert.Equal(t, int64(1), out.HotelEstimate.TotalEstimatedCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RedisDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	mr.Close()

	h := NewHandler(createTestConfig(), newCache(client, time.Minute), nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{"Goa", 4, 20000})

	require.NoError(t, err)
	assert.Equal(t, int64(16800), out.HotelEstimate.TotalEstimatedCost)
}

func TestHandler_Execute_CacheHitKeepsCallerCity(t *testing.T) {
	_, client := setupMiniredis(t)
	h := NewHandler(createTestConfig(), newCache(client, time.Minute), nil, logger.NewTestLogger(t))

	first, err := h.Execute(context.Background(), &Input{"Goa", 4, 20000})
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), &Input{"  GOA ", 4, 20000})
	require.NoError(t, err)

	assert.Equal(t, "Goa", first.HotelEstimate.City)
	assert.Equal(t, "  GOA ", second.HotelEstimate.City)
	assert.Equal(t, first.HotelEstimate.TotalEstimatedCost, second.HotelEstimate.TotalEstimatedCost)
}
