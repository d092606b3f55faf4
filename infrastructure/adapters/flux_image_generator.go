package adapters

import (
	"context"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"strings"
)

const (
	imageWidth  = 768
	imageHeight = 1344
)

type fluxImageGenerator struct {
	predictor       replicatePredictor
	replicateConfig *config.ReplicateConfig
	token           string
}

func NewFluxImageGenerator(contentFetcher ContentFetcher, replicateConfig *config.ReplicateConfig, token string,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &fluxImageGenerator{
		predictor: replicatePredictor{
			fetcher: contentFetcher,
			apiUrl:  replicateConfig.ApiUrl,
			token:   token,
			logger:  logger,
		},
		replicateConfig: replicateConfig,
		token:           token,
	}
}

func (g *fluxImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &domain.EmptyInputError{Field: "prompt"}
	}
	if g.token == "" {
		return nil, &domain.BackendUnavailableError{Backend: "image"}
	}

	input := map[string]interface{}{
		"width":            imageWidth,
		"height":           imageHeight,
		"prompt":           prompt,
		"output_format":    "png",
		"aspect_ratio":     "9:16",
		"safety_tolerance": 6,
	}

	data, err := g.predictor.run(ctx, g.replicateConfig.ImageModel, input)
	if err != nil {
		return nil, &domain.BackendFailureError{Backend: "image", Err: err}
	}
	return data, nil
}
