package adapters

import (
	"context"
	"errors"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"testing"
)

// A blank idea errors even without a credential: empty input is checked
// before the backend availability branch.
func TestVoiceGeneratorRejectsBlankIdea(t *testing.T) {
	logger := NewZerologWrapper()
	generator := NewOpenAIVoiceGenerator(NewContentFetcher(logger), config.GetOpenAIConfig(), "", logger)

	_, err := generator.Generate(context.Background(), "   ")

	var empty *domain.EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("expected an empty input error, got %v", err)
	}
	if empty.Field != "idea" {
		t.Fatalf("unexpected field in the error: %q", empty.Field)
	}
}

func TestParseVoiceResponse(t *testing.T) {
	raw := `Voice: female
Dialog: "The sea keeps every secret it is told."
Instructions: Speak softly, almost a whisper, with a rising sense of wonder.`

	dialog := parseVoiceResponse(raw, "fallback idea")

	if dialog.VoiceID != domain.VoiceFemale {
		t.Fatalf("expected the female voice, got %q", dialog.VoiceID)
	}
	if dialog.SpokenText != "The sea keeps every secret it is told." {
		t.Fatalf("quotes not stripped from dialog: %q", dialog.SpokenText)
	}
	if dialog.DeliveryInstructions != "Speak softly, almost a whisper, with a rising sense of wonder." {
		t.Fatalf("unexpected instructions: %q", dialog.DeliveryInstructions)
	}
}

func TestParseVoiceResponseDefaults(t *testing.T) {
	dialog := parseVoiceResponse("something entirely unstructured", "the original idea")

	if dialog.VoiceID != domain.VoiceMale {
		t.Fatalf("expected the male default voice, got %q", dialog.VoiceID)
	}
	if dialog.SpokenText != "the original idea" {
		t.Fatalf("expected the idea text as dialog fallback, got %q", dialog.SpokenText)
	}
	if dialog.DeliveryInstructions != defaultVoiceInstructions {
		t.Fatalf("expected the default instructions, got %q", dialog.DeliveryInstructions)
	}
}

func TestParseVoiceResponseMultiLineInstructions(t *testing.T) {
	raw := `Voice: male
Dialog: Stone remembers what water forgets.
Instructions: Begin slowly and gravely.
Pause after the first clause.
End with quiet emphasis.`

	dialog := parseVoiceResponse(raw, "fallback idea")

	want := "Begin slowly and gravely. Pause after the first clause. End with quiet emphasis."
	if dialog.DeliveryInstructions != want {
		t.Fatalf("instructions not joined across lines: %q", dialog.DeliveryInstructions)
	}
}
