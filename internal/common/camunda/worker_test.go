// internal/common/camunda/worker_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"travel-planner-workers/internal/common/errors"
	"travel-planner-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// ==========================
// Fakes
// ==========================

type fakeGateway struct {
	pb.GatewayClient
	completed []*pb.CompleteJobRequest
	failed    []*pb.FailJobRequest
	thrown    []*pb.ThrowErrorRequest
}

func (g *fakeGateway) CompleteJob(_ context.Context, req *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.completed = append(g.completed, req)
	return &pb.CompleteJobResponse{}, nil
}

func (g *fakeGateway) FailJob(_ context.Context, req *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.failed = append(g.failed, req)
	return &pb.FailJobResponse{}, nil
}

func (g *fakeGateway) ThrowError(_ context.Context, req *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.thrown = append(g.thrown, req)
	return &pb.ThrowErrorResponse{}, nil
}

func noRetry(context.Context, error) bool { return false }

type fakeJobClient struct {
	gw *fakeGateway
}

func (c fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gw, noRetry)
}

func (c fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gw, noRetry)
}

func (c fakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gw, noRetry)
}

func newJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       42,
		Type:      "estimate-hotel-cost",
		Variables: variables,
		Retries:   3,
	}}
}

func newTestRunner(t *testing.T, timeout time.Duration) (*Runner, *fakeGateway, fakeJobClient) {
	t.Helper()
	gw := &fakeGateway{}
	return NewRunner("estimate-hotel-cost", timeout, nil, logger.NewTestLogger(t)), gw, fakeJobClient{gw: gw}
}

// ==========================
// Runner.Run
// ==========================

func TestRunner_CompletesJob(t *testing.T) {
	runner, gw, client := newTestRunner(t, time.Second)

	runner.Run(client, newJob(`{"city":"Goa"}`), func(_ context.Context, variables string) (interface{}, error) {
		assert.Equal(t, `{"city":"Goa"}`, variables)
		return map[string]interface{}{"hotelEstimate": map[string]interface{}{"tier": "mid"}}, nil
	})

	require.Len(t, gw.completed, 1)
	assert.Equal(t, int64(42), gw.completed[0].JobKey)
	assert.JSONEq(t, `{"hotelEstimate":{"tier":"mid"}}`, gw.completed[0].Variables)
	assert.Empty(t, gw.failed)
	assert.Empty(t, gw.thrown)
}

func TestRunner_ReportsErrors(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectThrowCode string
		expectRetries   int32
	}{
		{
			name:            "invalid input is thrown as BPMN error",
			err:             errors.NewInvalidInputError("city is required"),
			expectThrowCode: string(errors.ErrCodeInvalidInput),
		},
		{
			name:          "cache outage fails with reduced retries",
			err:           errors.NewCacheUnavailableError(stderrors.New("connection refused")),
			expectRetries: 1,
		},
		{
			name:            "unknown error is thrown as internal",
			err:             stderrors.New("boom"),
			expectThrowCode: string(errors.ErrCodeInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, gw, client := newTestRunner(t, time.Second)

			runner.Run(client, newJob(`{}`), func(context.Context, string) (interface{}, error) {
				return nil, tt.err
			})

			assert.Empty(t, gw.completed)
			if tt.expectThrowCode != "" {
				require.Len(t, gw.thrown, 1)
				assert.Equal(t, tt.expectThrowCode, gw.thrown[0].ErrorCode)
				assert.Empty(t, gw.failed)
				return
			}
			require.Len(t, gw.failed, 1)
			assert.Equal(t, tt.expectRetries, gw.failed[0].Retries)
			assert.NotEmpty(t, gw.failed[0].ErrorMessage)
			assert.Empty(t, gw.thrown)
		})
	}
}

func TestRunner_TimeoutIsRetried(t *testing.T) {
	runner, gw, client := newTestRunner(t, 10*time.Millisecond)

	runner.Run(client, newJob(`{}`), func(ctx context.Context, _ string) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	require.Len(t, gw.failed, 1)
	assert.Equal(t, int32(1), gw.failed[0].Retries)
	assert.Contains(t, gw.failed[0].Variables, string(errors.ErrCodeTimeout))
}
