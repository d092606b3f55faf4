package outbound

import (
	"context"
	"generate-video-pipeline/domain"
)

type ProjectStorePort interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	// Save persists the whole project in one write so status and artifact
	// refs commit together.
	Save(ctx context.Context, project *domain.Project) error
}
