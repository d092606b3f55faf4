package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"generate-video-pipeline/config"
	"net/http"
	"strings"
)

type sonautoGenerationRequest struct {
	Prompt         string   `json:"prompt"`
	Tags           []string `json:"tags,omitempty"`
	Instrumental   bool     `json:"instrumental"`
	PromptStrength float64  `json:"prompt_strength"`
	OutputFormat   string   `json:"output_format"`
}

type sonautoGenerationResponse struct {
	TaskID string `json:"task_id"`
}

type sonautoResultResponse struct {
	SongPaths []string `json:"song_paths"`
}

type sonautoJobClient struct {
	ContentFetcher
	sonautoConfig *config.SonautoConfig
	apiKey        string
	logger        outbound.LoggerPort
}

func NewSonautoJobClient(contentFetcher ContentFetcher, sonautoConfig *config.SonautoConfig, apiKey string,
	logger outbound.LoggerPort) outbound.MusicJobClient {
	return &sonautoJobClient{
		ContentFetcher: contentFetcher,
		sonautoConfig:  sonautoConfig,
		apiKey:         apiKey,
		logger:         logger,
	}
}

func (c *sonautoJobClient) Submit(ctx context.Context, req outbound.SubmitMusicJobRequest) (string, error) {
	payload := sonautoGenerationRequest{
		Prompt:         req.Prompt,
		Tags:           req.Tags,
		Instrumental:   true,
		PromptStrength: req.PromptStrength,
		OutputFormat:   "mp3",
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error(err, "Failed to marshal the generation request body")
		return "", err
	}

	httpReq, err := c.newRequest(ctx, "POST", c.sonautoConfig.ApiUrl+"/generations", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", err
	}

	rawRes, err := c.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	var genRes sonautoGenerationResponse
	if err := json.Unmarshal(rawRes, &genRes); err != nil {
		c.logger.Error(err, "Failed to unmarshal the generation response")
		return "", err
	}
	if genRes.TaskID == "" {
		return "", fmt.Errorf("generation response contained no task id")
	}

	return genRes.TaskID, nil
}

func (c *sonautoJobClient) Status(ctx context.Context, taskID string) (outbound.MusicJobStatus, error) {
	httpReq, err := c.newRequest(ctx, "GET", c.sonautoConfig.ApiUrl+"/generations/status/"+taskID, nil)
	if err != nil {
		return "", err
	}

	rawRes, err := c.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	// The status endpoint returns a bare JSON string.
	status := strings.Trim(strings.TrimSpace(string(rawRes)), `"`)
	return outbound.MusicJobStatus(status), nil
}

func (c *sonautoJobClient) Fetch(ctx context.Context, taskID string) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, "GET", c.sonautoConfig.ApiUrl+"/generations/"+taskID, nil)
	if err != nil {
		return nil, err
	}

	rawRes, err := c.FetchContent(httpReq)
	if err != nil {
		return nil, err
	}

	var result sonautoResultResponse
	if err := json.Unmarshal(rawRes, &result); err != nil {
		c.logger.Error(err, "Failed to unmarshal the generation result")
		return nil, err
	}
	if len(result.SongPaths) == 0 {
		return nil, fmt.Errorf("generation result contained no songs")
	}

	downloadReq, err := http.NewRequestWithContext(ctx, "GET", result.SongPaths[0], nil)
	if err != nil {
		c.logger.Error(err, "Failed to create the song download request")
		return nil, err
	}
	return c.FetchContent(downloadReq)
}

func (c *sonautoJobClient) newRequest(ctx context.Context, method, url string, body *bytes.Buffer) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		c.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
