package services

import (
	"context"
	"errors"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"generate-video-pipeline/infrastructure/adapters"
	"path/filepath"
	"testing"
)

type fakeBlobStore struct {
	saved map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{saved: make(map[string][]byte)}
}

func (s *fakeBlobStore) Save(ctx context.Context, data []byte, logicalPath string, contentType string) (string, error) {
	s.saved[logicalPath] = data
	return logicalPath, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, ref string) error {
	delete(s.saved, ref)
	return nil
}

func (s *fakeBlobStore) UrlFor(ref string) string {
	return ref
}

type stubIdeaBackend struct{}

func (s *stubIdeaBackend) Generate(ctx context.Context) (*outbound.IdeaResult, error) {
	return &outbound.IdeaResult{Idea: "a drifting island", Prompt: "an island floating in clouds"}, nil
}

type stubImageBackend struct{}

func (s *stubImageBackend) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return []byte("image"), nil
}

type stubVoiceBackend struct{}

func (s *stubVoiceBackend) Generate(ctx context.Context, idea string) (*outbound.VoiceResult, error) {
	return &outbound.VoiceResult{
		Audio:      []byte("voice"),
		SpokenText: "narration line",
		VoiceID:    domain.VoiceMale,
	}, nil
}

type stubVideoBackend struct{}

func (s *stubVideoBackend) Generate(ctx context.Context, req outbound.GenerateVideoRequest) ([]byte, error) {
	return []byte("video"), nil
}

type stubMusicBackend struct {
	err error
}

func (s *stubMusicBackend) Generate(ctx context.Context, req outbound.GenerateMusicRequest) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("music"), nil
}

type stubCompositor struct {
	lastReq outbound.ComposeRequest
}

func (s *stubCompositor) Compose(ctx context.Context, req outbound.ComposeRequest) ([]byte, error) {
	s.lastReq = req
	return []byte("final"), nil
}

func stubBackends(musicErr error) GenerationBackends {
	return GenerationBackends{
		Idea:  &stubIdeaBackend{},
		Image: &stubImageBackend{},
		Voice: &stubVoiceBackend{},
		Video: &stubVideoBackend{},
		Music: &stubMusicBackend{err: musicErr},
	}
}

func seedProject(t *testing.T, store outbound.ProjectStorePort, project *domain.Project) {
	t.Helper()
	if err := store.Save(context.Background(), project); err != nil {
		t.Fatal("failed to seed project:", err)
	}
}

func TestRunFullCompletesAllSteps(t *testing.T) {
	projects := adapters.NewMemoryProjectStore()
	seedProject(t, projects, &domain.Project{ID: "p1", Status: domain.ProjectDraft})

	orchestrator := NewPipelineOrchestrator(projects, newFakeBlobStore(), stubBackends(nil),
		&stubCompositor{}, adapters.NewZerologWrapper(), nil, 30)

	var updates []inbound.ProgressUpdate
	result, err := orchestrator.RunFull(context.Background(), "p1", func(u inbound.ProgressUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatal("full run failed:", err)
	}

	if result.Status != domain.ProjectCompleted {
		t.Fatalf("expected a completed project, got %q", result.Status)
	}
	for _, step := range []domain.StepName{domain.StepImage, domain.StepVoice, domain.StepVideo, domain.StepMusic, domain.StepFinal} {
		if result.ArtifactRefs[step] == "" {
			t.Fatalf("missing artifact ref for step %s", step)
		}
	}

	stored, err := projects.Get(context.Background(), "p1")
	if err != nil {
		t.Fatal("failed to reload project:", err)
	}
	if stored.Status != domain.ProjectCompleted {
		t.Fatalf("stored status is %q, want completed", stored.Status)
	}
	if stored.Idea == "" || stored.Prompt == "" {
		t.Fatal("idea step did not persist idea and prompt")
	}

	if len(updates) == 0 {
		t.Fatal("no progress updates reported")
	}
	if updates[0].Percent != 0 || updates[0].Step != domain.StepIdea {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	last := updates[len(updates)-1]
	if last.Percent != 100 {
		t.Fatalf("expected the final update at 100, got %d", last.Percent)
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Percent < updates[i-1].Percent {
			t.Fatalf("progress went backwards: %d after %d", updates[i].Percent, updates[i-1].Percent)
		}
	}
}

func TestRunStepVideoRequiresImage(t *testing.T) {
	projects := adapters.NewMemoryProjectStore()
	seedProject(t, projects, &domain.Project{ID: "p1", Status: domain.ProjectDraft, Prompt: "a prompt"})

	orchestrator := NewPipelineOrchestrator(projects, newFakeBlobStore(), stubBackends(nil),
		&stubCompositor{}, adapters.NewZerologWrapper(), nil, 30)

	_, err := orchestrator.RunStep(context.Background(), "p1", domain.StepVideo, nil)

	var precondition *domain.PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("expected a precondition error, got %v", err)
	}

	stored, err := projects.Get(context.Background(), "p1")
	if err != nil {
		t.Fatal("failed to reload project:", err)
	}
	if stored.Status != domain.ProjectError {
		t.Fatalf("stored status is %q, want error", stored.Status)
	}
}

func TestRunStepLeavesProjectInDraft(t *testing.T) {
	projects := adapters.NewMemoryProjectStore()
	seedProject(t, projects, &domain.Project{ID: "p1", Status: domain.ProjectDraft, Prompt: "a prompt"})

	orchestrator := NewPipelineOrchestrator(projects, newFakeBlobStore(), stubBackends(nil),
		&stubCompositor{}, adapters.NewZerologWrapper(), nil, 30)

	result, err := orchestrator.RunStep(context.Background(), "p1", domain.StepImage, nil)
	if err != nil {
		t.Fatal("image step failed:", err)
	}
	if result.Status != domain.ProjectDraft {
		t.Fatalf("a single step should leave the project in draft, got %q", result.Status)
	}
	if result.ArtifactRefs[domain.StepImage] == "" {
		t.Fatal("image ref not written")
	}
}

func TestRunStepFinalCompletesWithoutVoice(t *testing.T) {
	projects := adapters.NewMemoryProjectStore()
	project := &domain.Project{ID: "p1", Status: domain.ProjectDraft}
	project.SetArtifactRef(domain.StepVideo, "video/v.mp4")
	project.SetArtifactRef(domain.StepMusic, "music/m.mp3")
	seedProject(t, projects, project)

	compositor := &stubCompositor{}
	orchestrator := NewPipelineOrchestrator(projects, newFakeBlobStore(), stubBackends(nil),
		compositor, adapters.NewZerologWrapper(), nil, 30)

	result, err := orchestrator.RunStep(context.Background(), "p1", domain.StepFinal, nil)
	if err != nil {
		t.Fatal("final step failed:", err)
	}
	if result.Status != domain.ProjectCompleted {
		t.Fatalf("the final step should complete the project, got %q", result.Status)
	}
	if result.ArtifactRefs[domain.StepFinal] == "" {
		t.Fatal("final ref not written")
	}
	if compositor.lastReq.VoiceRef != "" {
		t.Fatalf("expected an absent voice ref, got %q", compositor.lastReq.VoiceRef)
	}
	if compositor.lastReq.DurationCapSeconds != 30 {
		t.Fatalf("unexpected duration cap: %d", compositor.lastReq.DurationCapSeconds)
	}
}

func TestRunFullFailurePreservesEarlierRefs(t *testing.T) {
	projects := adapters.NewMemoryProjectStore()
	seedProject(t, projects, &domain.Project{ID: "p1", Status: domain.ProjectDraft})

	musicErr := &domain.BackendFailureError{Backend: "music", Err: errors.New("rejected")}
	orchestrator := NewPipelineOrchestrator(projects, newFakeBlobStore(), stubBackends(musicErr),
		&stubCompositor{}, adapters.NewZerologWrapper(), nil, 30)

	result, err := orchestrator.RunFull(context.Background(), "p1", nil)
	if err == nil {
		t.Fatal("expected the music failure to surface")
	}

	if result.Status != domain.ProjectError {
		t.Fatalf("expected error status, got %q", result.Status)
	}
	for _, step := range []domain.StepName{domain.StepImage, domain.StepVoice, domain.StepVideo} {
		if result.ArtifactRefs[step] == "" {
			t.Fatalf("ref for step %s was not preserved", step)
		}
	}
	if result.ArtifactRefs[domain.StepMusic] != "" || result.ArtifactRefs[domain.StepFinal] != "" {
		t.Fatal("refs written for steps that never succeeded")
	}
}

// A project run with no backend credentials at all must still complete with
// placeholder artifacts end to end.
func TestRunFullDemoMode(t *testing.T) {
	logger := adapters.NewZerologWrapper()
	dir := t.TempDir()

	blobs := adapters.NewLocalBlobStore(&config.LocalStorageConfig{BaseDir: filepath.Join(dir, "static")}, logger)
	projects := adapters.NewMemoryProjectStore()
	seedProject(t, projects, &domain.Project{ID: "p1", Status: domain.ProjectDraft})

	openAIConfig := config.GetOpenAIConfig()
	replicateConfig := config.GetReplicateConfig()
	sonautoConfig := &config.SonautoConfig{ApiUrl: "https://api.sonauto.ai/v1", MaxPollAttempts: 1}
	pipelineConfig := &config.PipelineConfig{
		DemoFallback:       true,
		DurationCapSeconds: 30,
		MusicGain:          0.4,
		VoiceGain:          1.5,
		VoiceDelayMs:       1000,
	}
	ideaSettings := &config.IdeaSettings{
		PromptTemplatePath: filepath.Join(dir, "missing_template.txt"),
		HistoryPath:        filepath.Join(dir, "last_ideas.json"),
		MaxStoredIdeas:     6,
	}
	videoSettings := &config.VideoSettings{Duration: 2, AspectRatio: "9:16", CfgScale: 0.5}
	musicSettings := &config.MusicSettings{PromptStrength: 2.3}

	fetcher := adapters.NewContentFetcher(logger)
	history := adapters.NewFileIdeaHistory(ideaSettings.HistoryPath, ideaSettings.MaxStoredIdeas, logger)

	backends := GenerationBackends{
		Idea: adapters.NewIdeaGeneratorWithFallback(
			adapters.NewOpenAIIdeaGenerator(openAIConfig, "", ideaSettings, history, logger), logger),
		Image: adapters.NewImageGeneratorWithFallback(
			adapters.NewFluxImageGenerator(fetcher, replicateConfig, "", logger), logger),
		Voice: adapters.NewVoiceGeneratorWithFallback(
			adapters.NewOpenAIVoiceGenerator(fetcher, openAIConfig, "", logger), logger),
		Video: adapters.NewVideoGeneratorWithFallback(
			adapters.NewKlingVideoGenerator(fetcher, replicateConfig, videoSettings, blobs, "", logger),
			blobs, videoSettings.Duration, logger),
		Music: adapters.NewMusicGeneratorWithFallback(
			adapters.NewSonautoMusicGenerator(
				adapters.NewSonautoJobClient(fetcher, sonautoConfig, "", logger),
				musicSettings, "", 0, sonautoConfig.MaxPollAttempts, logger), logger),
	}

	compositor := adapters.NewCompositorWithFallback(
		adapters.NewFFmpegCompositor(blobs, pipelineConfig, logger), blobs, logger)

	orchestrator := NewPipelineOrchestrator(projects, blobs, backends, compositor,
		logger, musicSettings.Tags, pipelineConfig.DurationCapSeconds)

	result, err := orchestrator.RunFull(context.Background(), "p1", nil)
	if err != nil {
		t.Fatal("demo run failed:", err)
	}

	if result.Status != domain.ProjectCompleted {
		t.Fatalf("expected a completed demo run, got %q", result.Status)
	}
	for _, step := range []domain.StepName{domain.StepImage, domain.StepVoice, domain.StepVideo, domain.StepMusic, domain.StepFinal} {
		if result.ArtifactRefs[step] == "" {
			t.Fatalf("missing placeholder artifact for step %s", step)
		}
	}
}
