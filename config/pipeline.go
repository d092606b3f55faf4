package config

import (
	"fmt"
	"os"
	"strconv"
)

type PipelineConfig struct {
	// DemoFallback lets a failed final composition degrade to a placeholder
	// artifact instead of erroring the project.
	DemoFallback       bool
	DurationCapSeconds int
	MusicGain          float64
	VoiceGain          float64
	VoiceDelayMs       int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	demoFallback := os.Getenv("PIPELINE_DEMO_FALLBACK") == "true"

	durationCap := 30
	if raw := os.Getenv("PIPELINE_DURATION_CAP_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PIPELINE_DURATION_CAP_SECONDS: %w", err)
		}
		durationCap = parsed
	}

	musicGain := 0.4
	if raw := os.Getenv("PIPELINE_MUSIC_GAIN"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PIPELINE_MUSIC_GAIN: %w", err)
		}
		musicGain = parsed
	}

	voiceGain := 1.5
	if raw := os.Getenv("PIPELINE_VOICE_GAIN"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PIPELINE_VOICE_GAIN: %w", err)
		}
		voiceGain = parsed
	}

	voiceDelayMs := 1000
	if raw := os.Getenv("PIPELINE_VOICE_DELAY_MS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PIPELINE_VOICE_DELAY_MS: %w", err)
		}
		voiceDelayMs = parsed
	}

	return &PipelineConfig{
		DemoFallback:       demoFallback,
		DurationCapSeconds: durationCap,
		MusicGain:          musicGain,
		VoiceGain:          voiceGain,
		VoiceDelayMs:       voiceDelayMs,
	}, nil
}
