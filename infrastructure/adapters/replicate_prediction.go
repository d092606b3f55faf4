package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-video-pipeline/application/ports/outbound"
	"net/http"
)

type replicatePredictionRequest struct {
	Input map[string]interface{} `json:"input"`
}

type replicatePredictionResponse struct {
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// replicatePredictor runs a model prediction synchronously (Prefer: wait)
// and downloads the produced artifact.
type replicatePredictor struct {
	fetcher ContentFetcher
	apiUrl  string
	token   string
	logger  outbound.LoggerPort
}

func (p *replicatePredictor) run(ctx context.Context, model string, input map[string]interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(replicatePredictionRequest{Input: input})
	if err != nil {
		p.logger.Error(err, "Failed to marshal the prediction request body")
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/predictions", p.apiUrl, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		p.logger.Error(err, "Failed to create the prediction HTTP request")
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	rawRes, err := p.fetcher.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var prediction replicatePredictionResponse
	if err := json.Unmarshal(rawRes, &prediction); err != nil {
		p.logger.Error(err, "Failed to unmarshal the prediction response")
		return nil, err
	}
	if prediction.Error != "" {
		return nil, fmt.Errorf("prediction rejected: %s", prediction.Error)
	}

	outputURL, err := firstOutputURL(prediction.Output)
	if err != nil {
		return nil, err
	}

	return p.download(ctx, outputURL)
}

func (p *replicatePredictor) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		p.logger.Error(err, "Failed to create the artifact download request")
		return nil, err
	}
	return p.fetcher.FetchContent(req)
}

// firstOutputURL handles both output shapes replicate models use: a single
// URL string or a list of URL strings.
func firstOutputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("prediction produced no output")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0], nil
	}

	return "", fmt.Errorf("prediction output has an unexpected shape: %s", string(raw))
}
