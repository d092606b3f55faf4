package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"generate-video-pipeline/domain"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/donovanhide/eventsource"
)

const doneSignal = "[DONE]"

const defaultIdeaPromptTemplate = `Generate one creative concept for a short cinematic vertical video.

Your response MUST follow this exact format:
Idea: [a one or two sentence description of the concept]
Prompt: [a detailed image generation prompt for the concept, including style, lighting and a 9:16 aspect ratio]`

type chatCompletionRequest struct {
	Stream   bool          `json:"stream"`
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type openAIIdeaGenerator struct {
	logger       outbound.LoggerPort
	openAIConfig *config.OpenAIConfig
	apiKey       string
	settings     *config.IdeaSettings
	history      IdeaHistory
}

func NewOpenAIIdeaGenerator(openAIConfig *config.OpenAIConfig, apiKey string, settings *config.IdeaSettings,
	history IdeaHistory, logger outbound.LoggerPort) outbound.IdeaGeneratorPort {
	return &openAIIdeaGenerator{
		logger:       logger,
		openAIConfig: openAIConfig,
		apiKey:       apiKey,
		settings:     settings,
		history:      history,
	}
}

func (g *openAIIdeaGenerator) Generate(ctx context.Context) (*outbound.IdeaResult, error) {
	if g.apiKey == "" {
		return nil, &domain.BackendUnavailableError{Backend: "idea"}
	}

	req, err := g.createRequest(ctx)
	if err != nil {
		g.logger.Error(err, "Failed to create HTTP request for idea stream")
		return nil, &domain.BackendFailureError{Backend: "idea", Err: err}
	}

	raw, err := g.collectStream(ctx, req)
	if err != nil {
		g.logger.Error(err, "Failed to stream idea completion")
		return nil, &domain.BackendFailureError{Backend: "idea", Err: err}
	}

	result := parseIdeaResponse(raw)
	if result.Idea == "" {
		err := fmt.Errorf("idea completion contained no usable text")
		g.logger.ErrorWithFields(err, "Empty idea response", map[string]interface{}{
			"raw": raw,
		})
		return nil, &domain.BackendFailureError{Backend: "idea", Err: err}
	}

	g.history.Append(result.Idea)

	return &result, nil
}

func (g *openAIIdeaGenerator) collectStream(ctx context.Context, req *http.Request) (string, error) {
	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-stream.Events:
			if ev.Data() == doneSignal {
				return builder.String(), nil
			}
			var chunk chatCompletionChunk
			if err := json.Unmarshal([]byte(ev.Data()), &chunk); err != nil {
				return "", err
			}
			if len(chunk.Choices) > 0 {
				builder.WriteString(chunk.Choices[0].Delta.Content)
			}
		case err := <-stream.Errors:
			if err == io.EOF {
				return builder.String(), nil
			}
			return "", err
		}
	}
}

func (g *openAIIdeaGenerator) createRequest(ctx context.Context) (*http.Request, error) {
	template, err := os.ReadFile(g.settings.PromptTemplatePath)
	if err != nil {
		g.logger.Warn("idea prompt template missing, using the built-in template")
		template = []byte(defaultIdeaPromptTemplate)
	}

	payload := chatCompletionRequest{
		Stream: true,
		Model:  g.openAIConfig.ChatModel,
		Messages: []chatMessage{
			{Role: "user", Content: buildIdeaPrompt(string(template), g.history.Recent())},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.openAIConfig.ChatApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// buildIdeaPrompt appends the avoidance context listing recently used ideas.
func buildIdeaPrompt(template string, recent []string) string {
	if len(recent) == 0 {
		return template
	}

	var builder strings.Builder
	builder.WriteString(template)
	builder.WriteString("\n\nPlease avoid generating ideas similar to these recently created ones:\n")
	for i, idea := range recent {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, idea)
	}
	return builder.String()
}

// parseIdeaResponse splits a completion into its Idea and Prompt fields. A
// missing Prompt label yields an empty prompt; markdown emphasis markers are
// stripped and whitespace collapsed.
func parseIdeaResponse(raw string) outbound.IdeaResult {
	ideaPart := raw
	promptPart := ""
	if parts := strings.SplitN(raw, "Prompt:", 2); len(parts) == 2 {
		ideaPart = parts[0]
		promptPart = parts[1]
	}

	ideaPart = strings.Replace(ideaPart, "Idea:", "", 1)

	return outbound.IdeaResult{
		Idea:   cleanGeneratedText(ideaPart),
		Prompt: cleanGeneratedText(promptPart),
	}
}

func cleanGeneratedText(text string) string {
	text = strings.ReplaceAll(text, "*", "")
	return strings.Join(strings.Fields(text), " ")
}
