package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"net/http"
	"strings"
)

const defaultVoiceInstructions = "Speak with emotion and emphasis appropriate to the scene, maintaining a natural cadence and clear articulation."

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type speechRequest struct {
	Model        string `json:"model"`
	Voice        string `json:"voice"`
	Input        string `json:"input"`
	Instructions string `json:"instructions,omitempty"`
}

type openAIVoiceGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	openAIConfig *config.OpenAIConfig
	apiKey       string
}

func NewOpenAIVoiceGenerator(contentFetcher ContentFetcher, openAIConfig *config.OpenAIConfig, apiKey string,
	logger outbound.LoggerPort) outbound.VoiceGeneratorPort {
	return &openAIVoiceGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		openAIConfig:   openAIConfig,
		apiKey:         apiKey,
	}
}

func (g *openAIVoiceGenerator) Generate(ctx context.Context, idea string) (*outbound.VoiceResult, error) {
	// Blank input is a caller bug and surfaces even when the missing
	// credential would otherwise select the placeholder path.
	if strings.TrimSpace(idea) == "" {
		return nil, &domain.EmptyInputError{Field: "idea"}
	}
	if g.apiKey == "" {
		return nil, &domain.BackendUnavailableError{Backend: "voice"}
	}

	dialog, err := g.generateDialog(ctx, idea)
	if err != nil {
		return nil, err
	}

	audio, err := g.synthesizeSpeech(ctx, dialog)
	if err != nil {
		return nil, err
	}

	return &outbound.VoiceResult{
		Audio:                audio,
		SpokenText:           dialog.SpokenText,
		VoiceID:              dialog.VoiceID,
		DeliveryInstructions: dialog.DeliveryInstructions,
	}, nil
}

func (g *openAIVoiceGenerator) generateDialog(ctx context.Context, idea string) (*domain.VoiceDialog, error) {
	prompt := fmt.Sprintf(`Create a short, engaging single line of narration (maximum 15 words) for the following idea:

%s

Also determine whether the line would best be spoken by a male or a female voice based on the archetype of the idea, and provide detailed voice instructions describing how the line should be delivered.

Your response MUST follow this exact format:
Voice: [male or female]
Dialog: [the narration line]
Instructions: [detailed speaking instructions including tone, emotion, pacing and emphasis]`, idea)

	payload := chatCompletionRequest{
		Model: g.openAIConfig.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a creative scriptwriter for short videos."},
			{Role: "user", Content: prompt},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the dialog request body")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.openAIConfig.ChatApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the dialog HTTP request")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	rawRes, err := g.FetchContent(req)
	if err != nil {
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}

	var chatRes chatCompletionResponse
	if err := json.Unmarshal(rawRes, &chatRes); err != nil {
		g.logger.Error(err, "Failed to unmarshal the dialog response")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}
	if len(chatRes.Choices) == 0 {
		err := fmt.Errorf("dialog completion returned no choices")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}

	dialog := parseVoiceResponse(chatRes.Choices[0].Message.Content, idea)
	return &dialog, nil
}

func (g *openAIVoiceGenerator) synthesizeSpeech(ctx context.Context, dialog *domain.VoiceDialog) ([]byte, error) {
	payload := speechRequest{
		Model:        g.openAIConfig.TTSModel,
		Voice:        string(dialog.VoiceID),
		Input:        dialog.SpokenText,
		Instructions: dialog.DeliveryInstructions,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the speech request body")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.openAIConfig.TTSApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the speech HTTP request")
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	audio, err := g.FetchContent(req)
	if err != nil {
		return nil, &domain.BackendFailureError{Backend: "voice", Err: err}
	}
	return audio, nil
}

// parseVoiceResponse extracts the Voice, Dialog and Instructions fields. The
// voice register defaults to the male voice; missing dialog falls back to the
// idea text; instructions may span multiple lines until the next label.
func parseVoiceResponse(raw string, fallbackDialog string) domain.VoiceDialog {
	voice := domain.VoiceMale
	dialog := ""
	instructions := defaultVoiceInstructions

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(lower, "voice:"):
			value := strings.ToLower(strings.TrimSpace(line[strings.Index(line, ":")+1:]))
			if strings.Contains(value, "female") || strings.Contains(value, string(domain.VoiceFemale)) {
				voice = domain.VoiceFemale
			}
		case strings.HasPrefix(lower, "dialog:"):
			dialog = strings.TrimSpace(line[strings.Index(line, ":")+1:])
			dialog = strings.Trim(dialog, `"`)
		case strings.HasPrefix(lower, "instructions:"):
			parts := []string{strings.TrimSpace(line[strings.Index(line, ":")+1:])}
			for j := i + 1; j < len(lines); j++ {
				next := strings.TrimSpace(lines[j])
				nextLower := strings.ToLower(next)
				if strings.HasPrefix(nextLower, "voice:") || strings.HasPrefix(nextLower, "dialog:") {
					break
				}
				if next != "" {
					parts = append(parts, next)
				}
			}
			if joined := strings.TrimSpace(strings.Join(parts, " ")); joined != "" {
				instructions = joined
			}
		}
	}

	if dialog == "" {
		dialog = fallbackDialog
	}

	return domain.VoiceDialog{
		SpokenText:           dialog,
		VoiceID:              voice,
		DeliveryInstructions: instructions,
	}
}
