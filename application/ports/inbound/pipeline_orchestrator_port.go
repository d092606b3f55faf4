package inbound

import (
	"context"
	"generate-video-pipeline/domain"
)

type ProgressUpdate struct {
	Step    domain.StepName
	Percent int
	Message string
}

type ProgressFunc func(update ProgressUpdate)

type PipelineOrchestratorPort interface {
	RunFull(ctx context.Context, projectID string, progress ProgressFunc) (*domain.StepResult, error)
	RunStep(ctx context.Context, projectID string, step domain.StepName, progress ProgressFunc) (*domain.StepResult, error)
}

// OrchestratorFactory binds an orchestrator to a set of effective backend
// credentials (per-user overrides merged over process defaults).
type OrchestratorFactory interface {
	ForCredentials(creds domain.Credentials) PipelineOrchestratorPort
}

type OrchestratorFactoryFunc func(creds domain.Credentials) PipelineOrchestratorPort

func (f OrchestratorFactoryFunc) ForCredentials(creds domain.Credentials) PipelineOrchestratorPort {
	return f(creds)
}
