package outbound

import "context"

type GenerateVideoRequest struct {
	// ImageRef is the blob ref of the still image the clip starts from.
	ImageRef string
	Prompt   string
}

type VideoGeneratorPort interface {
	Generate(ctx context.Context, req GenerateVideoRequest) ([]byte, error)
}
