package inbound

import (
	"context"
	"generate-video-pipeline/domain"
)

type SubmitRunParams struct {
	ProjectID string
	Step      domain.StepName
	// Credentials override the process-wide defaults for this run only.
	Credentials domain.Credentials
}

type TaskRunnerPort interface {
	Submit(ctx context.Context, params SubmitRunParams) (runID string, err error)
	Poll(runID string) (*domain.PipelineRun, error)
	// Cancel is best-effort: the run stops at the next step boundary.
	Cancel(runID string) error
}
