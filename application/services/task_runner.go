package services

import (
	"context"
	"errors"
	"fmt"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/domain"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	ErrRunInProgress = errors.New("a run is already active for this project")
	ErrRunNotFound   = errors.New("run not found")
)

type runEntry struct {
	snapshot atomic.Pointer[domain.PipelineRun]
	cancel   context.CancelFunc
}

type taskRunner struct {
	workerPool    outbound.TaskDispatcher
	orchestrators inbound.OrchestratorFactory
	defaultCreds  domain.Credentials
	logger        outbound.LoggerPort
	runs          sync.Map // runID -> *runEntry
	activeRuns    sync.Map // projectID -> runID
}

func NewTaskRunner(workerPool outbound.TaskDispatcher, orchestrators inbound.OrchestratorFactory,
	defaultCreds domain.Credentials, logger outbound.LoggerPort) inbound.TaskRunnerPort {
	return &taskRunner{
		workerPool:    workerPool,
		orchestrators: orchestrators,
		defaultCreds:  defaultCreds,
		logger:        logger,
	}
}

func (t *taskRunner) Submit(ctx context.Context, params inbound.SubmitRunParams) (string, error) {
	if !domain.IsValidStep(params.Step) {
		return "", fmt.Errorf("unknown pipeline step %q", params.Step)
	}

	runID := uuid.NewString()

	// At most one active run per project, enforced lock-free: losing the
	// LoadOrStore race means another run holds the slot.
	if _, loaded := t.activeRuns.LoadOrStore(params.ProjectID, runID); loaded {
		return "", ErrRunInProgress
	}

	// The run outlives the submitting request.
	runCtx, cancel := context.WithCancel(context.Background())

	entry := &runEntry{cancel: cancel}
	entry.snapshot.Store(&domain.PipelineRun{
		RunID:         runID,
		ProjectID:     params.ProjectID,
		RequestedStep: params.Step,
		State:         domain.RunPending,
	})
	t.runs.Store(runID, entry)

	err := t.workerPool.Submit(func() {
		t.execute(runCtx, entry, params)
	})
	if err != nil {
		t.logger.Error(err, "failed to submit run to worker pool")
		t.activeRuns.Delete(params.ProjectID)
		t.runs.Delete(runID)
		cancel()
		return "", err
	}

	return runID, nil
}

func (t *taskRunner) Poll(runID string) (*domain.PipelineRun, error) {
	value, ok := t.runs.Load(runID)
	if !ok {
		return nil, ErrRunNotFound
	}
	snapshot := *value.(*runEntry).snapshot.Load()
	return &snapshot, nil
}

func (t *taskRunner) Cancel(runID string) error {
	value, ok := t.runs.Load(runID)
	if !ok {
		return ErrRunNotFound
	}
	value.(*runEntry).cancel()
	return nil
}

func (t *taskRunner) execute(ctx context.Context, entry *runEntry, params inbound.SubmitRunParams) {
	defer t.activeRuns.Delete(params.ProjectID)
	defer entry.cancel()

	t.publish(entry, func(run *domain.PipelineRun) {
		run.State = domain.RunRunning
	})

	orchestrator := t.orchestrators.ForCredentials(t.defaultCreds.Merge(params.Credentials))

	progress := func(update inbound.ProgressUpdate) {
		t.publish(entry, func(run *domain.PipelineRun) {
			run.ProgressPercent = update.Percent
			run.CurrentStep = update.Step
			run.Message = update.Message
		})
	}

	var result *domain.StepResult
	var err error
	if params.Step == domain.StepAll {
		result, err = orchestrator.RunFull(ctx, params.ProjectID, progress)
	} else {
		result, err = orchestrator.RunStep(ctx, params.ProjectID, params.Step, progress)
	}

	if err != nil {
		t.logger.ErrorWithFields(err, "pipeline run failed", map[string]interface{}{
			"project_id": params.ProjectID,
			"step":       string(params.Step),
		})
		message := err.Error()
		t.publish(entry, func(run *domain.PipelineRun) {
			run.State = domain.RunFailed
			run.Message = message
		})
		return
	}

	message := result.Message
	t.publish(entry, func(run *domain.PipelineRun) {
		run.State = domain.RunSucceeded
		run.ProgressPercent = 100
		run.Message = message
	})
}

// publish replaces the run snapshot wholesale so pollers never observe a
// half-updated run. The executing goroutine is the only writer.
func (t *taskRunner) publish(entry *runEntry, mutate func(run *domain.PipelineRun)) {
	snapshot := *entry.snapshot.Load()
	mutate(&snapshot)
	entry.snapshot.Store(&snapshot)
}
