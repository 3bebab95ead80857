// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"travel-planner-workers/internal/common/config"
	"travel-planner-workers/internal/common/errors"
	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/metrics"
	"travel-planner-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// JobHandler is implemented by every task handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

const commandTimeout = 10 * time.Second

// ExecuteFunc turns raw job variables into the variables to complete with.
type ExecuteFunc func(ctx context.Context, variables string) (interface{}, error)

// Runner carries a job through timeout, tracing, metrics and the Zeebe
// complete/fail/throw commands so task handlers only implement ExecuteFunc.
type Runner struct {
	taskType string
	timeout  time.Duration
	obs      *observability.Observability
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewRunner(taskType string, timeout time.Duration, obs *observability.Observability, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		obs:      obs,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
	}
}

// Run executes one job and reports the outcome to Zeebe.
func (r *Runner) Run(client worker.JobClient, job entities.Job, execute ExecuteFunc) {
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()
	start := time.Now()

	ctx, span := r.obs.StartSpan(context.Background(), r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	execCtx, cancelExec := context.WithTimeout(ctx, r.timeout)
	output, err := execute(execCtx, job.Variables)
	cancelExec()

	// The execution deadline may have passed; report on a fresh one.
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	status := "success"
	if err != nil {
		status = "failed"
		stdErr := r.errors.HandleJobError(ctx, client, job, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
	} else if err := r.complete(ctx, client, job, output); err != nil {
		status = "failed"
		span.RecordError(err)
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(errors.ErrCodeExternalServiceError)).Inc()
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}

func (r *Runner) complete(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{"jobKey": job.Key, "error": err})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{"jobKey": job.Key, "error": err})
		return err
	}
	r.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
	return nil
}

// CamundaWorker is an open Zeebe job worker for one task type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker using the per-task settings from config.
func NewWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
