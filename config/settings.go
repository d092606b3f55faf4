package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// VideoSettings is the declarative generation settings document for the
// video step.
type VideoSettings struct {
	Duration       int     `toml:"duration"`
	AspectRatio    string  `toml:"aspect_ratio"`
	CfgScale       float64 `toml:"cfg_scale"`
	NegativePrompt string  `toml:"negative_prompt"`
}

// MusicSettings is the settings document for the music step.
type MusicSettings struct {
	PromptStrength float64  `toml:"prompt_strength"`
	Tags           []string `toml:"tags"`
}

type IdeaSettings struct {
	PromptTemplatePath string
	HistoryPath        string
	MaxStoredIdeas     int
}

func defaultVideoSettings() *VideoSettings {
	return &VideoSettings{
		Duration:       10,
		AspectRatio:    "9:16",
		CfgScale:       0.5,
		NegativePrompt: "",
	}
}

func defaultMusicSettings() *MusicSettings {
	return &MusicSettings{
		PromptStrength: 2.3,
	}
}

// GetVideoSettings loads the video generation document. A missing file is
// not an error; the defaults apply.
func GetVideoSettings() (*VideoSettings, error) {
	path := os.Getenv("VIDEO_SETTINGS_PATH")
	if path == "" {
		path = "prompts/video_gen.toml"
	}

	settings := defaultVideoSettings()
	if err := loadSettingsDocument(path, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func GetMusicSettings() (*MusicSettings, error) {
	path := os.Getenv("MUSIC_SETTINGS_PATH")
	if path == "" {
		path = "prompts/music_gen.toml"
	}

	settings := defaultMusicSettings()
	if err := loadSettingsDocument(path, settings); err != nil {
		return nil, err
	}
	if settings.PromptStrength == 0 {
		settings.PromptStrength = 2.3
	}
	return settings, nil
}

func GetIdeaSettings() *IdeaSettings {
	templatePath := os.Getenv("IDEA_PROMPT_PATH")
	if templatePath == "" {
		templatePath = "prompts/idea_gen.txt"
	}
	historyPath := os.Getenv("IDEA_HISTORY_PATH")
	if historyPath == "" {
		historyPath = "last_ideas.json"
	}

	return &IdeaSettings{
		PromptTemplatePath: templatePath,
		HistoryPath:        historyPath,
		MaxStoredIdeas:     6,
	}
}

func loadSettingsDocument(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings document %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse settings document %s: %w", path, err)
	}
	return nil
}
