package outbound

import (
	"context"
	"generate-video-pipeline/domain"
)

type VoiceResult struct {
	Audio                []byte
	SpokenText           string
	VoiceID              domain.VoiceID
	DeliveryInstructions string
}

type VoiceGeneratorPort interface {
	Generate(ctx context.Context, idea string) (*VoiceResult, error)
}
