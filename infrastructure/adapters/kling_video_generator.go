package adapters

import (
	"context"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"strings"
)

type klingVideoGenerator struct {
	predictor       replicatePredictor
	replicateConfig *config.ReplicateConfig
	settings        *config.VideoSettings
	blobs           outbound.BlobStorePort
	token           string
}

func NewKlingVideoGenerator(contentFetcher ContentFetcher, replicateConfig *config.ReplicateConfig,
	settings *config.VideoSettings, blobs outbound.BlobStorePort, token string,
	logger outbound.LoggerPort) outbound.VideoGeneratorPort {
	return &klingVideoGenerator{
		predictor: replicatePredictor{
			fetcher: contentFetcher,
			apiUrl:  replicateConfig.ApiUrl,
			token:   token,
			logger:  logger,
		},
		replicateConfig: replicateConfig,
		settings:        settings,
		blobs:           blobs,
		token:           token,
	}
}

func (g *klingVideoGenerator) Generate(ctx context.Context, req outbound.GenerateVideoRequest) ([]byte, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &domain.EmptyInputError{Field: "prompt"}
	}
	if req.ImageRef == "" {
		return nil, &domain.EmptyInputError{Field: "image ref"}
	}
	if g.token == "" {
		return nil, &domain.BackendUnavailableError{Backend: "video"}
	}

	input := map[string]interface{}{
		"prompt":          req.Prompt,
		"negative_prompt": g.settings.NegativePrompt,
		"aspect_ratio":    g.settings.AspectRatio,
		"cfg_scale":       g.settings.CfgScale,
		"duration":        g.settings.Duration,
		"start_image":     g.blobs.UrlFor(req.ImageRef),
	}

	data, err := g.predictor.run(ctx, g.replicateConfig.VideoModel, input)
	if err != nil {
		return nil, &domain.BackendFailureError{Backend: "video", Err: err}
	}
	return data, nil
}
