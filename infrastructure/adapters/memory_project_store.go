package adapters

import (
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/domain"
	"sync"
)

// memoryProjectStore keeps projects in process memory. Used when no
// DynamoDB table is configured, typically for local development.
type memoryProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
}

func NewMemoryProjectStore() outbound.ProjectStorePort {
	return &memoryProjectStore{projects: make(map[string]*domain.Project)}
}

func (s *memoryProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s not found", id)
	}
	copied := *project
	copied.ArtifactRefs = make(map[domain.StepName]string, len(project.ArtifactRefs))
	for step, ref := range project.ArtifactRefs {
		copied.ArtifactRefs[step] = ref
	}
	return &copied, nil
}

func (s *memoryProjectStore) Save(ctx context.Context, project *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *project
	copied.ArtifactRefs = make(map[domain.StepName]string, len(project.ArtifactRefs))
	for step, ref := range project.ArtifactRefs {
		copied.ArtifactRefs[step] = ref
	}
	s.projects[project.ID] = &copied
	return nil
}
