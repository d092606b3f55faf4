package services

import (
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/inbound"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/domain"
	"strings"

	"github.com/google/uuid"
)

// GenerationBackends groups the five produce capabilities the orchestrator
// drives.
type GenerationBackends struct {
	Idea  outbound.IdeaGeneratorPort
	Image outbound.ImageGeneratorPort
	Voice outbound.VoiceGeneratorPort
	Video outbound.VideoGeneratorPort
	Music outbound.MusicGeneratorPort
}

// stepStartPercent are the progress checkpoints reported at the start of
// each step of a full run.
var stepStartPercent = map[domain.StepName]int{
	domain.StepIdea:  0,
	domain.StepImage: 20,
	domain.StepVoice: 40,
	domain.StepVideo: 60,
	domain.StepMusic: 80,
	domain.StepFinal: 90,
}

type pipelineOrchestrator struct {
	projects           outbound.ProjectStorePort
	blobs              outbound.BlobStorePort
	backends           GenerationBackends
	compositor         outbound.CompositorPort
	logger             outbound.LoggerPort
	musicTags          []string
	durationCapSeconds int
}

func NewPipelineOrchestrator(projects outbound.ProjectStorePort, blobs outbound.BlobStorePort,
	backends GenerationBackends, compositor outbound.CompositorPort, logger outbound.LoggerPort,
	musicTags []string, durationCapSeconds int) inbound.PipelineOrchestratorPort {
	return &pipelineOrchestrator{
		projects:           projects,
		blobs:              blobs,
		backends:           backends,
		compositor:         compositor,
		logger:             logger,
		musicTags:          musicTags,
		durationCapSeconds: durationCapSeconds,
	}
}

func (o *pipelineOrchestrator) RunFull(ctx context.Context, projectID string, progress inbound.ProgressFunc) (*domain.StepResult, error) {
	project, err := o.projects.Get(ctx, projectID)
	if err != nil {
		o.logger.Error(err, "failed to load project")
		return nil, err
	}

	project.Status = domain.ProjectProcessing
	if err := o.projects.Save(ctx, project); err != nil {
		o.logger.Error(err, "failed to mark project as processing")
		return nil, err
	}

	for _, step := range domain.StepOrder {
		// Best-effort cancellation: runs stop at step boundaries only.
		if err := ctx.Err(); err != nil {
			return o.fail(project, step, err)
		}

		o.report(progress, step, stepStartPercent[step], fmt.Sprintf("generating %s", step))

		commitStatus := domain.ProjectProcessing
		if step == domain.StepFinal {
			commitStatus = domain.ProjectCompleted
		}
		if err := o.executeStep(ctx, project, step, commitStatus); err != nil {
			return o.fail(project, step, err)
		}
	}

	o.report(progress, domain.StepFinal, 100, "video generation completed")

	return o.result(project, "video generation completed successfully"), nil
}

func (o *pipelineOrchestrator) RunStep(ctx context.Context, projectID string, step domain.StepName, progress inbound.ProgressFunc) (*domain.StepResult, error) {
	if step == domain.StepAll {
		return o.RunFull(ctx, projectID, progress)
	}
	if !domain.IsValidStep(step) {
		return nil, fmt.Errorf("unknown pipeline step %q", step)
	}

	project, err := o.projects.Get(ctx, projectID)
	if err != nil {
		o.logger.Error(err, "failed to load project")
		return nil, err
	}

	o.report(progress, step, 0, fmt.Sprintf("generating %s", step))

	// A single step leaves the project in draft; only the final composite
	// completes it.
	commitStatus := domain.ProjectDraft
	if step == domain.StepFinal {
		commitStatus = domain.ProjectCompleted
	}
	if err := o.executeStep(ctx, project, step, commitStatus); err != nil {
		return o.fail(project, step, err)
	}

	o.report(progress, step, 100, fmt.Sprintf("%s generation completed", step))

	return o.result(project, fmt.Sprintf("%s generation completed successfully", step)), nil
}

func (o *pipelineOrchestrator) executeStep(ctx context.Context, project *domain.Project, step domain.StepName, commitStatus domain.ProjectStatus) error {
	switch step {
	case domain.StepIdea:
		return o.runIdea(ctx, project, commitStatus)
	case domain.StepImage:
		return o.runImage(ctx, project, commitStatus)
	case domain.StepVoice:
		return o.runVoice(ctx, project, commitStatus)
	case domain.StepVideo:
		return o.runVideo(ctx, project, commitStatus)
	case domain.StepMusic:
		return o.runMusic(ctx, project, commitStatus)
	case domain.StepFinal:
		return o.runFinal(ctx, project, commitStatus)
	default:
		return fmt.Errorf("unknown pipeline step %q", step)
	}
}

func (o *pipelineOrchestrator) runIdea(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	res, err := o.backends.Idea.Generate(ctx)
	if err != nil {
		o.logger.Error(err, "idea generation failed")
		return err
	}

	project.Idea = res.Idea
	project.Prompt = res.Prompt
	project.Status = status
	return o.projects.Save(ctx, project)
}

func (o *pipelineOrchestrator) runImage(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	if strings.TrimSpace(project.Prompt) == "" {
		return &domain.PreconditionError{Step: domain.StepImage, Missing: "prompt"}
	}

	data, err := o.backends.Image.Generate(ctx, project.Prompt)
	if err != nil {
		o.logger.Error(err, "image generation failed")
		return err
	}

	ref, err := o.blobs.Save(ctx, data, fmt.Sprintf("image/flux_image_%s.png", uuid.NewString()), "image/png")
	if err != nil {
		o.logger.Error(err, "failed to persist image artifact")
		return err
	}

	project.SetArtifactRef(domain.StepImage, ref)
	project.Status = status
	return o.projects.Save(ctx, project)
}

func (o *pipelineOrchestrator) runVoice(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	if strings.TrimSpace(project.Idea) == "" {
		return &domain.PreconditionError{Step: domain.StepVoice, Missing: "idea"}
	}

	res, err := o.backends.Voice.Generate(ctx, project.Idea)
	if err != nil {
		o.logger.Error(err, "voice generation failed")
		return err
	}

	ref, err := o.blobs.Save(ctx, res.Audio, fmt.Sprintf("voice/openai_voice_%s.mp3", uuid.NewString()), "audio/mpeg")
	if err != nil {
		o.logger.Error(err, "failed to persist voice artifact")
		return err
	}

	o.logger.InfoWithFields("voice dialog generated", map[string]interface{}{
		"voice":  string(res.VoiceID),
		"dialog": res.SpokenText,
	})

	project.SetArtifactRef(domain.StepVoice, ref)
	project.Status = status
	return o.projects.Save(ctx, project)
}

func (o *pipelineOrchestrator) runVideo(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	if project.ArtifactRef(domain.StepImage) == "" {
		return &domain.PreconditionError{Step: domain.StepVideo, Missing: "image artifact"}
	}
	if strings.TrimSpace(project.Prompt) == "" {
		return &domain.PreconditionError{Step: domain.StepVideo, Missing: "prompt"}
	}

	data, err := o.backends.Video.Generate(ctx, outbound.GenerateVideoRequest{
		ImageRef: project.ArtifactRef(domain.StepImage),
		Prompt:   project.Prompt,
	})
	if err != nil {
		o.logger.Error(err, "video generation failed")
		return err
	}

	ref, err := o.blobs.Save(ctx, data, fmt.Sprintf("video/kling_video_%s.mp4", uuid.NewString()), "video/mp4")
	if err != nil {
		o.logger.Error(err, "failed to persist video artifact")
		return err
	}

	project.SetArtifactRef(domain.StepVideo, ref)
	project.Status = status
	return o.projects.Save(ctx, project)
}

func (o *pipelineOrchestrator) runMusic(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	if strings.TrimSpace(project.Idea) == "" {
		return &domain.PreconditionError{Step: domain.StepMusic, Missing: "idea"}
	}

	data, err := o.backends.Music.Generate(ctx, outbound.GenerateMusicRequest{
		Idea: project.Idea,
		Tags: o.musicTags,
	})
	if err != nil {
		o.logger.Error(err, "music generation failed")
		return err
	}

	ref, err := o.blobs.Save(ctx, data, fmt.Sprintf("music/sonauto_music_%s.mp3", uuid.NewString()), "audio/mpeg")
	if err != nil {
		o.logger.Error(err, "failed to persist music artifact")
		return err
	}

	project.SetArtifactRef(domain.StepMusic, ref)
	project.Status = status
	return o.projects.Save(ctx, project)
}

func (o *pipelineOrchestrator) runFinal(ctx context.Context, project *domain.Project, status domain.ProjectStatus) error {
	if project.ArtifactRef(domain.StepVideo) == "" {
		return &domain.PreconditionError{Step: domain.StepFinal, Missing: "video artifact"}
	}
	if project.ArtifactRef(domain.StepMusic) == "" {
		return &domain.PreconditionError{Step: domain.StepFinal, Missing: "music artifact"}
	}

	// Voice is optional: the compositor mixes video and music only when the
	// voice ref is absent.
	data, err := o.compositor.Compose(ctx, outbound.ComposeRequest{
		VideoRef:           project.ArtifactRef(domain.StepVideo),
		MusicRef:           project.ArtifactRef(domain.StepMusic),
		VoiceRef:           project.ArtifactRef(domain.StepVoice),
		DurationCapSeconds: o.durationCapSeconds,
	})
	if err != nil {
		o.logger.Error(err, "final composition failed")
		return err
	}

	ref, err := o.blobs.Save(ctx, data, fmt.Sprintf("final/final_video_%s.mp4", uuid.NewString()), "video/mp4")
	if err != nil {
		o.logger.Error(err, "failed to persist final artifact")
		return err
	}

	project.SetArtifactRef(domain.StepFinal, ref)
	project.Status = status
	return o.projects.Save(ctx, project)
}

// fail marks the project errored, keeping every artifact ref written so far.
func (o *pipelineOrchestrator) fail(project *domain.Project, step domain.StepName, cause error) (*domain.StepResult, error) {
	o.logger.ErrorWithFields(cause, "pipeline step failed", map[string]interface{}{
		"project_id": project.ID,
		"step":       string(step),
	})

	project.Status = domain.ProjectError
	// The commit uses a fresh context so an error status still lands after
	// cancellation.
	if err := o.projects.Save(context.Background(), project); err != nil {
		o.logger.Error(err, "failed to mark project as errored")
	}

	result := o.result(project, cause.Error())
	return result, cause
}

func (o *pipelineOrchestrator) result(project *domain.Project, message string) *domain.StepResult {
	refs := make(map[domain.StepName]string, len(project.ArtifactRefs))
	for step, ref := range project.ArtifactRefs {
		refs[step] = ref
	}
	return &domain.StepResult{
		Status:       project.Status,
		Message:      message,
		ArtifactRefs: refs,
	}
}

func (o *pipelineOrchestrator) report(progress inbound.ProgressFunc, step domain.StepName, percent int, message string) {
	if progress == nil {
		return
	}
	progress(inbound.ProgressUpdate{
		Step:    step,
		Percent: percent,
		Message: message,
	})
}
