package adapters

import (
	"context"
	"errors"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"testing"
)

// A blank prompt must surface as an empty input error even when the missing
// credential would otherwise make the backend unavailable.
func TestImageGeneratorRejectsBlankPrompt(t *testing.T) {
	logger := NewZerologWrapper()
	generator := NewFluxImageGenerator(NewContentFetcher(logger), config.GetReplicateConfig(), "", logger)

	_, err := generator.Generate(context.Background(), "   ")

	var empty *domain.EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("expected an empty input error, got %v", err)
	}
	if empty.Field != "prompt" {
		t.Fatalf("unexpected field in the error: %q", empty.Field)
	}
}
