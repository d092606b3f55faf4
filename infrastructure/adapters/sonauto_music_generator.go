package adapters

import (
	"context"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"strings"
	"time"
)

// sonautoMusicGenerator submits a generation job and polls its status until
// terminal. The job client, poll interval and attempt ceiling are all
// injected so tests can run the loop without real delay.
type sonautoMusicGenerator struct {
	client       outbound.MusicJobClient
	settings     *config.MusicSettings
	apiKey       string
	pollInterval time.Duration
	maxAttempts  int
	logger       outbound.LoggerPort
}

func NewSonautoMusicGenerator(client outbound.MusicJobClient, settings *config.MusicSettings, apiKey string,
	pollInterval time.Duration, maxAttempts int, logger outbound.LoggerPort) outbound.MusicGeneratorPort {
	return &sonautoMusicGenerator{
		client:       client,
		settings:     settings,
		apiKey:       apiKey,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

func (g *sonautoMusicGenerator) Generate(ctx context.Context, req outbound.GenerateMusicRequest) ([]byte, error) {
	if strings.TrimSpace(req.Idea) == "" {
		return nil, &domain.EmptyInputError{Field: "idea"}
	}
	if g.apiKey == "" {
		return nil, &domain.BackendUnavailableError{Backend: "music"}
	}

	tags := req.Tags
	if len(tags) == 0 {
		tags = g.settings.Tags
	}

	taskID, err := g.client.Submit(ctx, outbound.SubmitMusicJobRequest{
		Prompt:         req.Idea,
		Tags:           tags,
		PromptStrength: g.settings.PromptStrength,
	})
	if err != nil {
		g.logger.Error(err, "failed to submit music generation job")
		return nil, &domain.BackendFailureError{Backend: "music", Err: err}
	}

	g.logger.InfoWithFields("music generation started", map[string]interface{}{
		"task_id": taskID,
	})

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		status, err := g.client.Status(ctx, taskID)
		if err != nil {
			g.logger.Error(err, "failed to check music generation status")
			return nil, &domain.BackendFailureError{Backend: "music", Err: err}
		}

		switch status {
		case outbound.MusicJobSuccess:
			data, err := g.client.Fetch(ctx, taskID)
			if err != nil {
				g.logger.Error(err, "failed to fetch generated music")
				return nil, &domain.BackendFailureError{Backend: "music", Err: err}
			}
			return data, nil
		case outbound.MusicJobFailure:
			err := fmt.Errorf("music generation job %s reported failure", taskID)
			return nil, &domain.BackendFailureError{Backend: "music", Err: err}
		}

		if err := g.wait(ctx); err != nil {
			return nil, err
		}
	}

	return nil, &domain.TimeoutError{Backend: "music", Attempts: g.maxAttempts}
}

func (g *sonautoMusicGenerator) wait(ctx context.Context) error {
	if g.pollInterval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(g.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
