package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type SonautoConfig struct {
	ApiUrl          string
	PollInterval    time.Duration
	MaxPollAttempts int
}

func GetSonautoConfig() (*SonautoConfig, error) {
	apiUrl := os.Getenv("SONAUTO_API_URL")
	if apiUrl == "" {
		apiUrl = "https://api.sonauto.ai/v1"
	}

	pollSeconds := 5
	if raw := os.Getenv("SONAUTO_POLL_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SONAUTO_POLL_SECONDS: %w", err)
		}
		pollSeconds = parsed
	}

	maxAttempts := 60
	if raw := os.Getenv("SONAUTO_MAX_POLL_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SONAUTO_MAX_POLL_ATTEMPTS: %w", err)
		}
		maxAttempts = parsed
	}

	return &SonautoConfig{
		ApiUrl:          apiUrl,
		PollInterval:    time.Duration(pollSeconds) * time.Second,
		MaxPollAttempts: maxAttempts,
	}, nil
}
