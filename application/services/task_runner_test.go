package services

import (
	"context"
	"errors"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/domain"
	"generate-video-pipeline/infrastructure/adapters"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
)

type scriptedOrchestrator struct {
	started  chan string
	release  chan struct{}
	err      error
	progress []inbound.ProgressUpdate
}

func (o *scriptedOrchestrator) run(projectID string, progress inbound.ProgressFunc) (*domain.StepResult, error) {
	if o.started != nil {
		o.started <- projectID
	}
	if o.release != nil {
		<-o.release
	}
	for _, update := range o.progress {
		if progress != nil {
			progress(update)
		}
	}
	if o.err != nil {
		return nil, o.err
	}
	return &domain.StepResult{Status: domain.ProjectCompleted, Message: "done"}, nil
}

func (o *scriptedOrchestrator) RunFull(ctx context.Context, projectID string, progress inbound.ProgressFunc) (*domain.StepResult, error) {
	return o.run(projectID, progress)
}

func (o *scriptedOrchestrator) RunStep(ctx context.Context, projectID string, step domain.StepName, progress inbound.ProgressFunc) (*domain.StepResult, error) {
	return o.run(projectID, progress)
}

func newRunner(t *testing.T, orchestrator inbound.PipelineOrchestratorPort, defaultCreds domain.Credentials) inbound.TaskRunnerPort {
	t.Helper()
	pool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("failed to create worker pool:", err)
	}
	t.Cleanup(pool.Release)

	factory := inbound.OrchestratorFactoryFunc(func(creds domain.Credentials) inbound.PipelineOrchestratorPort {
		return orchestrator
	})
	return NewTaskRunner(pool, factory, defaultCreds, adapters.NewZerologWrapper())
}

func waitTerminal(t *testing.T, runner inbound.TaskRunnerPort, runID string) *domain.PipelineRun {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		run, err := runner.Poll(runID)
		if err != nil {
			t.Fatal("poll failed:", err)
		}
		if run.State.Terminal() {
			return run
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run never reached a terminal state")
	return nil
}

func TestTaskRunnerRejectsConcurrentRunsPerProject(t *testing.T) {
	orchestrator := &scriptedOrchestrator{
		started: make(chan string, 2),
		release: make(chan struct{}),
	}
	runner := newRunner(t, orchestrator, domain.Credentials{})

	first, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: domain.StepAll})
	if err != nil {
		t.Fatal("first submission failed:", err)
	}
	<-orchestrator.started

	_, err = runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: domain.StepAll})
	if !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected the second submission to be rejected, got %v", err)
	}

	// A different project is unaffected by the busy slot.
	other, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p2", Step: domain.StepAll})
	if err != nil {
		t.Fatal("submission for another project failed:", err)
	}
	<-orchestrator.started

	close(orchestrator.release)
	waitTerminal(t, runner, first)
	waitTerminal(t, runner, other)

	// Once terminal, the project slot is free again.
	retry, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: domain.StepAll})
	if err != nil {
		t.Fatal("resubmission after completion failed:", err)
	}
	if run := waitTerminal(t, runner, retry); run.State != domain.RunSucceeded {
		t.Fatalf("expected the retry to succeed, got %q", run.State)
	}
}

func TestTaskRunnerPublishesProgressAndResult(t *testing.T) {
	orchestrator := &scriptedOrchestrator{
		progress: []inbound.ProgressUpdate{
			{Step: domain.StepImage, Percent: 20, Message: "generating image"},
		},
	}
	runner := newRunner(t, orchestrator, domain.Credentials{})

	runID, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: domain.StepAll})
	if err != nil {
		t.Fatal("submission failed:", err)
	}

	run := waitTerminal(t, runner, runID)
	if run.State != domain.RunSucceeded {
		t.Fatalf("expected a succeeded run, got %q", run.State)
	}
	if run.ProgressPercent != 100 {
		t.Fatalf("expected 100%% on success, got %d", run.ProgressPercent)
	}
	if run.CurrentStep != domain.StepImage {
		t.Fatalf("expected the last reported step to stick, got %q", run.CurrentStep)
	}
	if run.Message != "done" {
		t.Fatalf("unexpected run message: %q", run.Message)
	}
}

func TestTaskRunnerMarksFailedRuns(t *testing.T) {
	orchestrator := &scriptedOrchestrator{err: errors.New("image backend failed")}
	runner := newRunner(t, orchestrator, domain.Credentials{})

	runID, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: domain.StepImage})
	if err != nil {
		t.Fatal("submission failed:", err)
	}

	run := waitTerminal(t, runner, runID)
	if run.State != domain.RunFailed {
		t.Fatalf("expected a failed run, got %q", run.State)
	}
	if run.Message != "image backend failed" {
		t.Fatalf("unexpected failure message: %q", run.Message)
	}
}

func TestTaskRunnerRejectsUnknownStep(t *testing.T) {
	runner := newRunner(t, &scriptedOrchestrator{}, domain.Credentials{})

	if _, err := runner.Submit(context.Background(), inbound.SubmitRunParams{ProjectID: "p1", Step: "bogus"}); err == nil {
		t.Fatal("expected an unknown step to be rejected")
	}
}

func TestTaskRunnerPollUnknownRun(t *testing.T) {
	runner := newRunner(t, &scriptedOrchestrator{}, domain.Credentials{})

	if _, err := runner.Poll("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected run-not-found, got %v", err)
	}
	if err := runner.Cancel("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected run-not-found on cancel, got %v", err)
	}
}

func TestTaskRunnerMergesCredentials(t *testing.T) {
	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatal("failed to create worker pool:", err)
	}
	t.Cleanup(pool.Release)

	seen := make(chan domain.Credentials, 1)
	factory := inbound.OrchestratorFactoryFunc(func(creds domain.Credentials) inbound.PipelineOrchestratorPort {
		seen <- creds
		return &scriptedOrchestrator{}
	})
	runner := NewTaskRunner(pool, factory, domain.Credentials{OpenAIKey: "default-openai"}, adapters.NewZerologWrapper())

	runID, err := runner.Submit(context.Background(), inbound.SubmitRunParams{
		ProjectID:   "p1",
		Step:        domain.StepAll,
		Credentials: domain.Credentials{ReplicateToken: "override-replicate"},
	})
	if err != nil {
		t.Fatal("submission failed:", err)
	}
	waitTerminal(t, runner, runID)

	creds := <-seen
	if creds.OpenAIKey != "default-openai" {
		t.Fatalf("default credential lost: %+v", creds)
	}
	if creds.ReplicateToken != "override-replicate" {
		t.Fatalf("override credential lost: %+v", creds)
	}
}
