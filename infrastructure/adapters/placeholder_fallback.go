package adapters

import (
	"context"
	"errors"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/domain"
	"os"
)

// The fallback decorators recover BackendUnavailableError locally by
// producing placeholder artifacts, keeping credential handling out of the
// backend bodies. Every other error kind passes through untouched.

type ideaGeneratorWithFallback struct {
	inner  outbound.IdeaGeneratorPort
	logger outbound.LoggerPort
}

// The placeholder idea is a fixed constant, so it is deliberately not
// appended to the idea history: repeating it there would only crowd the
// avoidance list once a real credential is configured.
func NewIdeaGeneratorWithFallback(inner outbound.IdeaGeneratorPort,
	logger outbound.LoggerPort) outbound.IdeaGeneratorPort {
	return &ideaGeneratorWithFallback{inner: inner, logger: logger}
}

func (g *ideaGeneratorWithFallback) Generate(ctx context.Context) (*outbound.IdeaResult, error) {
	res, err := g.inner.Generate(ctx)
	if err == nil {
		return res, nil
	}
	if !isBackendUnavailable(err) {
		return nil, err
	}

	g.logger.Warn("idea backend has no credential, using placeholder idea")
	return &outbound.IdeaResult{
		Idea:   placeholderIdea,
		Prompt: placeholderPrompt,
	}, nil
}

type imageGeneratorWithFallback struct {
	inner  outbound.ImageGeneratorPort
	logger outbound.LoggerPort
}

func NewImageGeneratorWithFallback(inner outbound.ImageGeneratorPort, logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &imageGeneratorWithFallback{inner: inner, logger: logger}
}

func (g *imageGeneratorWithFallback) Generate(ctx context.Context, prompt string) ([]byte, error) {
	data, err := g.inner.Generate(ctx, prompt)
	if err == nil {
		return data, nil
	}
	if !isBackendUnavailable(err) {
		return nil, err
	}

	g.logger.Warn("image backend has no credential, rendering placeholder image")
	return renderPlaceholderImage()
}

type voiceGeneratorWithFallback struct {
	inner  outbound.VoiceGeneratorPort
	logger outbound.LoggerPort
}

func NewVoiceGeneratorWithFallback(inner outbound.VoiceGeneratorPort, logger outbound.LoggerPort) outbound.VoiceGeneratorPort {
	return &voiceGeneratorWithFallback{inner: inner, logger: logger}
}

func (g *voiceGeneratorWithFallback) Generate(ctx context.Context, idea string) (*outbound.VoiceResult, error) {
	res, err := g.inner.Generate(ctx, idea)
	if err == nil {
		return res, nil
	}
	if !isBackendUnavailable(err) {
		return nil, err
	}

	g.logger.Warn("voice backend has no credential, using placeholder narration")
	return &outbound.VoiceResult{
		Audio:                placeholderVoiceBytes,
		SpokenText:           placeholderNarration,
		VoiceID:              domain.VoiceMale,
		DeliveryInstructions: defaultVoiceInstructions,
	}, nil
}

type videoGeneratorWithFallback struct {
	inner           outbound.VideoGeneratorPort
	blobs           outbound.BlobStorePort
	durationSeconds int
	logger          outbound.LoggerPort
}

func NewVideoGeneratorWithFallback(inner outbound.VideoGeneratorPort, blobs outbound.BlobStorePort,
	durationSeconds int, logger outbound.LoggerPort) outbound.VideoGeneratorPort {
	return &videoGeneratorWithFallback{
		inner:           inner,
		blobs:           blobs,
		durationSeconds: durationSeconds,
		logger:          logger,
	}
}

func (g *videoGeneratorWithFallback) Generate(ctx context.Context, req outbound.GenerateVideoRequest) ([]byte, error) {
	data, err := g.inner.Generate(ctx, req)
	if err == nil {
		return data, nil
	}
	if !isBackendUnavailable(err) {
		return nil, err
	}

	g.logger.Warn("video backend has no credential, synthesizing still-image video")
	data, err = synthesizeStillVideo(g.blobs.UrlFor(req.ImageRef), g.durationSeconds, g.logger)
	if err != nil {
		// No ffmpeg either; a raw placeholder keeps the chain well-formed.
		g.logger.Error(err, "still-image synthesis failed, using raw placeholder video")
		return placeholderVideoBytes, nil
	}
	return data, nil
}

type musicGeneratorWithFallback struct {
	inner  outbound.MusicGeneratorPort
	logger outbound.LoggerPort
}

func NewMusicGeneratorWithFallback(inner outbound.MusicGeneratorPort, logger outbound.LoggerPort) outbound.MusicGeneratorPort {
	return &musicGeneratorWithFallback{inner: inner, logger: logger}
}

func (g *musicGeneratorWithFallback) Generate(ctx context.Context, req outbound.GenerateMusicRequest) ([]byte, error) {
	data, err := g.inner.Generate(ctx, req)
	if err == nil {
		return data, nil
	}
	if !isBackendUnavailable(err) {
		return nil, err
	}

	g.logger.Warn("music backend has no credential, using placeholder music")
	return placeholderMusicBytes, nil
}

// compositorWithFallback degrades a failed composition to a placeholder
// final artifact. Wire it only when demo fallback is explicitly enabled; in
// production mode composition failures must surface.
type compositorWithFallback struct {
	inner  outbound.CompositorPort
	blobs  outbound.BlobStorePort
	logger outbound.LoggerPort
}

func NewCompositorWithFallback(inner outbound.CompositorPort, blobs outbound.BlobStorePort,
	logger outbound.LoggerPort) outbound.CompositorPort {
	return &compositorWithFallback{inner: inner, blobs: blobs, logger: logger}
}

func (c *compositorWithFallback) Compose(ctx context.Context, req outbound.ComposeRequest) ([]byte, error) {
	data, err := c.inner.Compose(ctx, req)
	if err == nil {
		return data, nil
	}

	var compositionErr *domain.CompositionError
	if !errors.As(err, &compositionErr) {
		return nil, err
	}

	c.logger.ErrorWithFields(err, "composition failed, substituting placeholder final video", map[string]interface{}{
		"video_ref": req.VideoRef,
	})

	// Best effort: the bare video track still makes a better final artifact
	// than synthetic bytes.
	if video, readErr := os.ReadFile(c.blobs.UrlFor(req.VideoRef)); readErr == nil {
		return video, nil
	}
	return placeholderFinalBytes, nil
}

func isBackendUnavailable(err error) bool {
	var unavailable *domain.BackendUnavailableError
	return errors.As(err, &unavailable)
}
